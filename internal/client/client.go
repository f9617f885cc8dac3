// Package client is a Go client for the CineCraft REST API. It keeps the
// admin session in a TokenStore, sends it as a bearer token, and drops the
// session when the server answers 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"cinecraft/internal/utils"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 10 * time.Second
	LoginPath      = "/admin/login"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenStore
	// OnUnauthorized runs after a 401 cleared the session.
	OnUnauthorized func()
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// New returns a client with a 10s timeout; a nil store keeps the session in memory.
func New(baseURL string, tokens TokenStore) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Client{BaseURL: baseURL, HTTP: newHTTPClient(DefaultTimeout), Tokens: tokens}
}

// APIError is a non-2xx answer; Message is the server's own message.
type APIError struct {
	Status  int
	Message string
	Code    string
	Details map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.Tokens != nil {
		if s, err := c.Tokens.Load(); err == nil && s.Token != "" {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized()
	}
	return resp, nil
}

func (c *Client) unauthorized() {
	if c.Tokens != nil {
		if err := c.Tokens.Clear(); err != nil {
			utils.LogError("", "client", "clear_session", err)
		}
	}
	if c.OnUnauthorized != nil {
		c.OnUnauthorized()
		return
	}
	utils.LogEvent("", "client", "unauthorized", "session expired, redirect to "+LoginPath)
}

// readEnvelope decodes the JSON envelope and turns failures into *APIError.
func readEnvelope(resp *http.Response) (envelope, error) {
	defer resp.Body.Close()
	var env envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return env, err
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return env, fmt.Errorf("decode response: %w", err)
		}
	}
	if resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return env, &APIError{Status: resp.StatusCode, Message: msg, Code: env.Code, Details: env.Details}
	}
	return env, nil
}

// do sends a JSON request and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (string, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return "", err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return "", err
	}
	resp, err := c.send(req)
	if err != nil {
		return "", err
	}
	env, err := readEnvelope(resp)
	if err != nil {
		return "", err
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("decode data: %w", err)
		}
	}
	return env.Message, nil
}

// download fetches a binary document and the filename the server suggested.
func (c *Client) download(ctx context.Context, path string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, "", err
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode >= 300 {
		_, err := readEnvelope(resp)
		return nil, "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return data, filename, nil
}
