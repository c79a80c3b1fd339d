package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"recorderctl/internal/config"
	"recorderctl/internal/logging"
	"recorderctl/internal/sapisid"
	"recorderctl/internal/session"
	"recorderctl/internal/wire"
)

// servicePath is the backend RPC prefix; the method name is appended.
const servicePath = "/$rpc/google.internal.apps.recorder.v1.RecorderService/"

const snippetLimit = 512

// Client issues authenticated RPCs against the recorder backend.
type Client struct {
	baseURL     string
	downloadURL string
	origin      string
	apiKey      string
	cred        session.Credential
	httpClient  *http.Client
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.WithComponent(logger, "recorder")
		}
	}
}

// WithClock overrides the wall clock used for request signatures and default
// pagination cursors.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a recorder client bound to the given credential.
func New(cfg *config.Config, cred session.Credential, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if cred.Empty() {
		return nil, errors.New("credential is empty")
	}

	client := &Client{
		baseURL:     strings.TrimRight(cfg.Recorder.BaseURL, "/"),
		downloadURL: strings.TrimRight(cfg.Recorder.DownloadBaseURL, "/"),
		origin:      cfg.Recorder.Origin,
		apiKey:      cfg.Recorder.APIKey,
		cred:        cred,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Recorder.RequestTimeout) * time.Second,
			// Redirects are handled manually by DownloadAudio; RPC calls
			// never redirect.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// AccountIndex returns the authuser index of the bound credential.
func (c *Client) AccountIndex() int {
	return c.cred.AccountIndex
}

// call performs one RPC: positional-array body out, decoded JSON body back.
func (c *Client) call(ctx context.Context, method string, body any) (any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+servicePath+method, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json+protobuf")
	req.Header.Set("Authorization", sapisid.Authorization(c.cred.Secret, c.origin, c.now()))
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-AuthUser", strconv.Itoa(c.cred.AccountIndex))
	req.Header.Set("Origin", c.origin)
	req.Header.Set("Cookie", c.cred.CookieHeader)

	requestStart := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute %s request: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}
	c.logger.Debug("rpc complete", logging.Args(
		logging.String("method", method),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", time.Since(requestStart)),
	)...)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s returned %d: %w", method, resp.StatusCode, ErrAuthExpired)
	case resp.StatusCode != http.StatusOK:
		return nil, &APIError{Status: resp.StatusCode, Snippet: snippet(data)}
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &ParseError{Method: method, Err: err}
	}
	return decoded, nil
}

// snippet truncates a response body for error reporting.
func snippet(data []byte) string {
	text := strings.TrimSpace(string(data))
	if len(text) > snippetLimit {
		text = text[:snippetLimit]
	}
	return text
}

// GetRecordingInfo fetches metadata for one recording by share id.
func (c *Client) GetRecordingInfo(ctx context.Context, shareID string) (*wire.Recording, error) {
	raw, err := c.call(ctx, "GetRecordingInfo", []any{shareID})
	if err != nil {
		return nil, err
	}
	recs := wire.DecodeRecordingList(raw)
	if len(recs) == 0 {
		return nil, &ParseError{Method: "GetRecordingInfo", Err: errors.New("no recording in response")}
	}
	return &recs[0], nil
}

// GetTranscript fetches and decodes the transcript for one recording.
func (c *Client) GetTranscript(ctx context.Context, shareID string) (wire.Transcript, error) {
	raw, err := c.call(ctx, "GetTranscription", []any{shareID})
	if err != nil {
		return wire.Transcript{}, err
	}
	return wire.DecodeTranscript(raw), nil
}

// GetAudioTags fetches the audio tag payload. The positional layout is not
// decoded; callers receive the raw structure.
func (c *Client) GetAudioTags(ctx context.Context, shareID string) (any, error) {
	return c.call(ctx, "GetAudioTag", []any{shareID})
}

// GetWaveform fetches the waveform payload, undecoded.
func (c *Client) GetWaveform(ctx context.Context, shareID string) (any, error) {
	return c.call(ctx, "GetWaveform", []any{shareID})
}

// GetShareList fetches the share state payload, undecoded.
func (c *Client) GetShareList(ctx context.Context, shareID string) (any, error) {
	return c.call(ctx, "GetShareList", []any{shareID})
}

// ListLabels fetches the user's labels. This is also the cheapest
// authenticated call, so the auth coordinator uses it as the liveness probe.
func (c *Client) ListLabels(ctx context.Context) ([]wire.Label, error) {
	raw, err := c.call(ctx, "ListLabels", []any{})
	if err != nil {
		return nil, err
	}
	return wire.DecodeLabels(raw), nil
}

// CheckAuth verifies the bound credential is still accepted by the backend.
func (c *Client) CheckAuth(ctx context.Context) error {
	_, err := c.ListLabels(ctx)
	return err
}
