package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:5000/api/v1"
	defaultTimeout = 30 * time.Second
	refreshPath    = "/auth/refresh-token"
)

// ErrSessionExpired is returned when a 401 could not be recovered by
// refreshing the access token. Stored credentials have been cleared.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// StatusCode extracts the HTTP status from an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Client calls the expensync API. It attaches the stored access token,
// refreshes it once on a 401 and reports in-flight requests through
// OnLoading.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	log        *zap.Logger

	onLoading func(bool)
	onLogout  func()

	mu       sync.Mutex
	inFlight int

	refreshMu sync.Mutex
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLoading sets the callback fired with true when the first tracked
// request starts and false when the last one ends.
func WithLoading(fn func(bool)) Option {
	return func(c *Client) { c.onLoading = fn }
}

// WithLogout sets the callback fired after a failed refresh cleared the session.
func WithLogout(fn func()) Option {
	return func(c *Client) { c.onLogout = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokens == nil {
		tokens = NewMemoryStore(Credentials{})
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: tokens,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Tokens() TokenStore {
	return c.tokens
}

type requestConfig struct {
	skipLoader bool
}

type RequestOption func(*requestConfig)

// SkipLoader keeps the request out of the loading indicator.
func SkipLoader() RequestOption {
	return func(rc *requestConfig) { rc.skipLoader = true }
}

func (c *Client) startLoading() {
	c.mu.Lock()
	c.inFlight++
	first := c.inFlight == 1
	c.mu.Unlock()
	if first && c.onLoading != nil {
		c.onLoading(true)
	}
}

func (c *Client) stopLoading() {
	c.mu.Lock()
	c.inFlight--
	last := c.inFlight == 0
	c.mu.Unlock()
	if last && c.onLoading != nil {
		c.onLoading(false)
	}
}

func needsAuth(path string) bool {
	return !strings.Contains(path, "/auth/login") && !strings.Contains(path, "/auth/signup")
}

// do sends a JSON request and decodes the response into out. A *string out
// receives the raw body.
func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	if !rc.skipLoader {
		c.startLoading()
		defer c.stopLoading()
	}

	creds, err := c.tokens.Load()
	if err != nil {
		return err
	}

	status, respBody, err := c.send(ctx, method, path, payload, creds.AccessToken)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && needsAuth(path) {
		access, err := c.refresh(ctx, creds.AccessToken)
		if err != nil {
			return err
		}
		c.log.Debug("retrying request with refreshed token", zap.String("path", path))
		if status, respBody, err = c.send(ctx, method, path, payload, access); err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return newAPIError(status, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if text, ok := out.(*string); ok {
		*text = string(respBody)
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, accessToken string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" && needsAuth(path) {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// refresh exchanges the stored refresh token for a new access token. stale
// is the access token that was rejected; if another request already
// replaced it, the newer token is reused without a second refresh.
func (c *Client) refresh(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	creds, err := c.tokens.Load()
	if err != nil {
		return "", err
	}
	if creds.AccessToken != "" && creds.AccessToken != stale {
		return creds.AccessToken, nil
	}
	if creds.RefreshToken == "" {
		c.expire("no refresh token")
		return "", ErrSessionExpired
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": creds.RefreshToken})
	if err != nil {
		return "", err
	}
	status, body, err := c.send(ctx, http.MethodPost, refreshPath, payload, "")
	if err != nil {
		c.expire(err.Error())
		return "", ErrSessionExpired
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if status != http.StatusOK || json.Unmarshal(body, &resp) != nil || resp.AccessToken == "" {
		c.expire(fmt.Sprintf("refresh rejected with status %d", status))
		return "", ErrSessionExpired
	}

	creds.AccessToken = resp.AccessToken
	if err := c.tokens.Save(creds); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) expire(reason string) {
	c.log.Info("session expired", zap.String("reason", reason))
	if err := c.tokens.Clear(); err != nil {
		c.log.Warn("failed to clear credentials", zap.Error(err))
	}
	if c.onLogout != nil {
		c.onLogout()
	}
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Msg
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}
