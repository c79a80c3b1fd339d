package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// secretCookie is the session cookie the request signature is keyed on.
const secretCookie = "SAPISID"

// DevTools reads cookies from a Chrome instance started with
// --remote-debugging-port.
type DevTools struct {
	endpoint     string
	cookieDomain string
	httpClient   *http.Client
	dialer       *websocket.Dialer
}

// DevToolsOption configures a DevTools probe.
type DevToolsOption func(*DevTools)

// WithHTTPClient overrides the HTTP client used for endpoint discovery.
func WithHTTPClient(client *http.Client) DevToolsOption {
	return func(d *DevTools) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// NewDevTools builds a probe against the given debugging endpoint. Only
// cookies scoped to cookieDomain (suffix match) are forwarded.
func NewDevTools(endpoint, cookieDomain string, opts ...DevToolsOption) *DevTools {
	probe := &DevTools{
		endpoint:     strings.TrimRight(endpoint, "/"),
		cookieDomain: cookieDomain,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		dialer:       websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(probe)
	}
	return probe
}

var _ Probe = (*DevTools)(nil)

// Live reports whether the debugging endpoint answers version discovery.
func (d *DevTools) Live(ctx context.Context) bool {
	_, err := d.debuggerURL(ctx)
	return err == nil
}

// Cookies extracts the session cookies. ok is false when the browser is
// reachable but carries no session secret yet.
func (d *DevTools) Cookies(ctx context.Context) (Cookies, bool, error) {
	conn, err := d.connect(ctx)
	if err != nil {
		return Cookies{}, false, err
	}
	defer conn.Close()

	var result struct {
		Cookies []cdpCookie `json:"cookies"`
	}
	if err := conn.call(ctx, "Storage.getCookies", nil, &result); err != nil {
		return Cookies{}, false, fmt.Errorf("read browser cookies: %w", err)
	}

	scoped := filterCookies(result.Cookies, d.cookieDomain)
	secret := secretFrom(scoped)
	if secret == "" {
		return Cookies{}, false, nil
	}
	return Cookies{Secret: secret, CookieHeader: cookieHeader(scoped)}, true, nil
}

// OpenLogin opens a new tab at the login URL.
func (d *DevTools) OpenLogin(ctx context.Context, loginURL string) error {
	conn, err := d.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	params := map[string]any{"url": loginURL}
	if err := conn.call(ctx, "Target.createTarget", params, nil); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	return nil
}

// debuggerURL discovers the websocket endpoint via /json/version.
func (d *DevTools) debuggerURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"/json/version", nil)
	if err != nil {
		return "", fmt.Errorf("build version request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query devtools endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("devtools endpoint returned %d", resp.StatusCode)
	}

	var version struct {
		WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return "", fmt.Errorf("decode version response: %w", err)
	}
	if version.WebSocketDebuggerURL == "" {
		return "", errors.New("devtools endpoint reported no debugger url")
	}
	return version.WebSocketDebuggerURL, nil
}

func (d *DevTools) connect(ctx context.Context) (*cdpConn, error) {
	wsURL, err := d.debuggerURL(ctx)
	if err != nil {
		return nil, err
	}
	conn, _, err := d.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial devtools socket: %w", err)
	}
	return &cdpConn{conn: conn}, nil
}

// cdpConn is a minimal DevTools protocol connection: sequential calls,
// events interleaved with responses are skipped.
type cdpConn struct {
	conn   *websocket.Conn
	nextID int
}

func (c *cdpConn) Close() error {
	return c.conn.Close()
}

func (c *cdpConn) call(ctx context.Context, method string, params map[string]any, result any) error {
	c.nextID++
	id := c.nextID

	request := map[string]any{"id": id, "method": method}
	if params != nil {
		request["params"] = params
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		_ = c.conn.SetReadDeadline(deadline)
	}
	if err := c.conn.WriteJSON(request); err != nil {
		return fmt.Errorf("send %s: %w", method, err)
	}

	for {
		var envelope struct {
			ID     int             `json:"id"`
			Result json.RawMessage `json:"result"`
			Error  *struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := c.conn.ReadJSON(&envelope); err != nil {
			return fmt.Errorf("read %s response: %w", method, err)
		}
		if envelope.ID != id {
			// Event or stale response; keep waiting.
			continue
		}
		if envelope.Error != nil {
			return fmt.Errorf("%s failed: %s", method, envelope.Error.Message)
		}
		if result != nil && envelope.Result != nil {
			if err := json.Unmarshal(envelope.Result, result); err != nil {
				return fmt.Errorf("decode %s result: %w", method, err)
			}
		}
		return nil
	}
}

type cdpCookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
}

// filterCookies keeps cookies scoped to the given domain (suffix match, so
// ".google.com" matches both it and "recorder.google.com").
func filterCookies(cookies []cdpCookie, domain string) []cdpCookie {
	if domain == "" {
		return cookies
	}
	trimmed := strings.TrimPrefix(domain, ".")
	var out []cdpCookie
	for _, cookie := range cookies {
		cookieDomain := strings.TrimPrefix(cookie.Domain, ".")
		if cookieDomain == trimmed || strings.HasSuffix(cookieDomain, "."+trimmed) {
			out = append(out, cookie)
		}
	}
	return out
}

// cookieHeader renders cookies as a request Cookie header value.
func cookieHeader(cookies []cdpCookie) string {
	parts := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		parts = append(parts, cookie.Name+"="+cookie.Value)
	}
	return strings.Join(parts, "; ")
}

// secretFrom returns the signing secret, empty when the session is not signed
// in.
func secretFrom(cookies []cdpCookie) string {
	for _, cookie := range cookies {
		if cookie.Name == secretCookie {
			return cookie.Value
		}
	}
	return ""
}
