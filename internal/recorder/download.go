package recorder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// AudioPayload is a downloaded audio binary.
type AudioPayload struct {
	Bytes       []byte
	ContentType string
	// Filename is the backend's suggested name, empty when the response
	// carried none.
	Filename string
}

// filenamePattern extracts the suggested name from a Content-Disposition style
// header, accepting both the plain and the RFC 5987 encoded form.
var filenamePattern = regexp.MustCompile(`filename\*?=(?:UTF-8''|"?)([^";]+)`)

// DownloadAudio fetches the audio binary for a recording from the download
// host. The first response is usually a redirect to a short-lived signed URL;
// exactly one hop is followed manually.
func (c *Client) DownloadAudio(ctx context.Context, recordingID string) (*AudioPayload, error) {
	target := fmt.Sprintf("%s/download/playback/%s?authuser=%d&download=true",
		c.downloadURL, url.PathEscape(recordingID), c.cred.AccountIndex)

	resp, err := c.downloadGet(ctx, target)
	if err != nil {
		return nil, err
	}

	if isRedirect(resp.StatusCode) {
		location := resp.Header.Get("Location")
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if location == "" {
			return nil, &APIError{Status: resp.StatusCode, Snippet: "redirect without location"}
		}
		if resp, err = c.downloadGet(ctx, location); err != nil {
			return nil, err
		}
		if isRedirect(resp.StatusCode) {
			resp.Body.Close()
			return nil, &APIError{Status: resp.StatusCode, Snippet: "more than one redirect"}
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("audio download returned %d: %w", resp.StatusCode, ErrAuthExpired)
	case resp.StatusCode != http.StatusOK:
		return nil, &APIError{Status: resp.StatusCode, Snippet: snippet(data)}
	}

	return &AudioPayload{
		Bytes:       data,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    suggestedFilename(resp.Header.Get("Content-Disposition")),
	}, nil
}

// downloadGet issues a GET carrying only the cookie header; the download host
// does not take the signed Authorization header.
func (c *Client) downloadGet(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("Cookie", c.cred.CookieHeader)
	req.Header.Set("X-Goog-AuthUser", strconv.Itoa(c.cred.AccountIndex))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute download request: %w", err)
	}
	return resp, nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// suggestedFilename extracts and percent-decodes the filename from a
// Content-Disposition header value. It returns the empty string when the
// header carries no usable name.
func suggestedFilename(disposition string) string {
	match := filenamePattern.FindStringSubmatch(disposition)
	if match == nil {
		return ""
	}
	name := strings.TrimSpace(match[1])
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}
