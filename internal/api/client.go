// Package api contains the typed REST clients for the marketplace
// backend. Every client shares one HTTP wrapper that attaches the
// bearer token, tags requests for tracing, and normalizes failures to
// the uniform client error shape. Failures surface exactly once per
// call; nothing here retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	domainerrors "github.com/DT1234273/Lockdeal/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TokenSource supplies the bearer token and reacts to its rejection.
// The durable store implements it.
type TokenSource interface {
	// Token returns the current access token, or "" when anonymous.
	Token() string
	// ClearSession drops the stored token and user after a 401.
	ClearSession() error
}

// Client is the shared HTTP wrapper under every domain API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// NewClient creates the shared HTTP wrapper.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		logger: logger,
	}
}

// errorBody is the backend's failure envelope. FastAPI-style backends
// put a string in "detail"; validation failures put a structure there,
// which callers see as the fallback message instead.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// do executes one request and decodes the response into out (when out
// is non-nil). fallback is the per-endpoint message used when the
// server did not supply a usable detail string.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, fallback string) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.WithStack(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed", slog.String("method", method), slog.String("path", path), slog.Any("error", err))

		return domainerrors.NewAPIError(0, "NETWORK_ERROR", fallback).WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainerrors.NewAPIError(0, "NETWORK_ERROR", fallback).WrapMessage("read response body")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Global 401 policy: the stored session is dead. Clear it so the
		// caller lands back on the login flow instead of looping.
		if clearErr := c.tokens.ClearSession(); clearErr != nil {
			c.logger.Warn("Failed to clear session after 401", slog.Any("error", clearErr))
		}

		return domainerrors.ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp.StatusCode, raw, fallback)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// Shape mismatch, e.g. an object where a list was promised.
			return domainerrors.ErrInvalidListPayload.WrapMessage(path)
		}

		return domainerrors.NewAPIError(resp.StatusCode, "MALFORMED_RESPONSE", fallback).WrapMessage(err.Error())
	}

	return nil
}

// decodeError turns a non-2xx response into the uniform error shape,
// preferring the server's detail string over the fallback.
func (c *Client) decodeError(status int, raw []byte, fallback string) error {
	detail := fallback

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil && s != "" {
			detail = s
		}
	}

	return domainerrors.NewAPIError(status, "API_ERROR", detail)
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any, fallback string) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out, fallback)
}

// postJSON issues a POST with a JSON body (nil for empty) and decodes
// the response into out (nil to discard).
func (c *Client) postJSON(ctx context.Context, path string, in, out any, fallback string) error {
	body, contentType, err := encodeJSON(in)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, path, body, contentType, out, fallback)
}

// putJSON issues a PUT with a JSON body and decodes the response.
func (c *Client) putJSON(ctx context.Context, path string, in, out any, fallback string) error {
	body, contentType, err := encodeJSON(in)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPut, path, body, contentType, out, fallback)
}

// deleteJSON issues a DELETE and decodes the response.
func (c *Client) deleteJSON(ctx context.Context, path string, out any, fallback string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out, fallback)
}

func encodeJSON(in any) (io.Reader, string, error) {
	if in == nil {
		return nil, "", nil
	}

	raw, err := json.Marshal(in)
	if err != nil {
		return nil, "", errors.WithStack(err)
	}

	return bytes.NewReader(raw), "application/json", nil
}
