package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"jobmatch/internal/observability"
)

const maxErrorBody = 1 << 20

// Client talks to the jobmatch API. Every request goes through the same
// outgoing and incoming interception.
type Client struct {
	cfg        atomic.Pointer[Config]
	httpClient *http.Client
	storage    Storage
	navigator  Navigator
	logger     *observability.Logger
}

func New(cfg *Config, storage Storage, navigator Navigator, logger *observability.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig("")
	}
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	c := &Client{
		httpClient: &http.Client{},
		storage:    storage,
		navigator:  navigator,
		logger:     logger,
	}
	if token, ok := storage.Get(TokenKey); ok && token != "" {
		cfg = cfg.WithHeader("Authorization", "Bearer "+token)
	}
	c.cfg.Store(cfg)
	return c
}

// Config returns the configuration the next request will use.
func (c *Client) Config() *Config {
	return c.cfg.Load()
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	cfg := c.cfg.Load()
	url := cfg.BaseURL + path

	var body io.Reader
	var payload []byte
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return c.fail(ctx, &SetupError{Method: method, URL: url, Err: fmt.Errorf("encode body: %w", err)})
		}
		payload = data
		body = bytes.NewReader(data)
	}
	return c.send(ctx, cfg, method, url, body, -1, "", payload, out)
}

// send runs one request with the snapshotted cfg. size is the body length,
// or -1 to let net/http work it out.
func (c *Client) send(ctx context.Context, cfg *Config, method, url string, body io.Reader, size int64, contentType string, payload []byte, out any) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return c.fail(ctx, &SetupError{Method: method, URL: url, Err: err})
	}
	if size >= 0 {
		req.ContentLength = size
	}
	c.intercept(ctx, req, cfg, payload)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(ctx, &NetworkError{Method: method, URL: url, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.fail(ctx, readResponseError(method, url, resp))
	}

	c.logger.Info(ctx, "API response",
		observability.Field{Key: "method", Value: method},
		observability.Field{Key: "url", Value: url},
		observability.Field{Key: "status", Value: resp.StatusCode},
	)

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return c.fail(ctx, &DecodeError{Method: method, URL: url, StatusCode: resp.StatusCode, Err: err})
	}
	return nil
}

// intercept applies the default headers and the stored bearer token.
func (c *Client) intercept(ctx context.Context, req *http.Request, cfg *Config, payload []byte) {
	for k, v := range cfg.headers {
		req.Header.Set(k, v)
	}
	if token, ok := c.storage.Get(TokenKey); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Info(ctx, "API request",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "url", Value: req.URL.String()},
	)
	if len(payload) > 0 {
		c.logger.Debug(ctx, "API request payload", observability.Field{Key: "payload", Value: string(payload)})
	}
}

func readResponseError(method, url string, resp *http.Response) *ResponseError {
	respErr := &ResponseError{Method: method, URL: url, StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return respErr
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if json.Unmarshal(data, &body) == nil {
		respErr.Code = body.Code
		respErr.Message = body.Error
		if respErr.Message == "" {
			respErr.Message = body.Message
		}
		return respErr
	}
	respErr.Message = strings.TrimSpace(string(data))
	return respErr
}

// fail applies the side effects for err and hands it back to the caller.
func (c *Client) fail(ctx context.Context, err error) error {
	var (
		respErr   *ResponseError
		netErr    *NetworkError
		setupErr  *SetupError
		decodeErr *DecodeError
	)
	switch {
	case errors.As(err, &respErr):
		fields := []observability.Field{
			{Key: "method", Value: respErr.Method},
			{Key: "url", Value: respErr.URL},
			{Key: "status", Value: respErr.StatusCode},
		}
		switch respErr.StatusCode {
		case http.StatusUnauthorized:
			c.logger.Warn(ctx, "unauthorized, clearing stored credentials", fields...)
			c.ClearAuth()
			if c.navigator != nil && !strings.Contains(c.navigator.Location(), LoginPath) {
				c.navigator.Navigate(LoginPath)
			}
		case http.StatusForbidden:
			c.logger.Warn(ctx, "access forbidden", fields...)
		case http.StatusNotFound:
			c.logger.Warn(ctx, "resource not found", fields...)
		case http.StatusInternalServerError:
			c.logger.Error(ctx, "server error", err, fields...)
		default:
			fields = append(fields, observability.Field{Key: "server_message", Value: respErr.Message})
			c.logger.Warn(ctx, "API request failed", fields...)
		}
	case errors.As(err, &netErr):
		c.logger.Error(ctx, "no response from server", netErr.Err,
			observability.Field{Key: "method", Value: netErr.Method},
			observability.Field{Key: "url", Value: netErr.URL},
		)
	case errors.As(err, &decodeErr):
		c.logger.Error(ctx, "failed to decode response body", decodeErr.Err,
			observability.Field{Key: "method", Value: decodeErr.Method},
			observability.Field{Key: "url", Value: decodeErr.URL},
			observability.Field{Key: "status", Value: decodeErr.StatusCode},
		)
	case errors.As(err, &setupErr):
		c.logger.Error(ctx, "request setup failed", setupErr.Err,
			observability.Field{Key: "method", Value: setupErr.Method},
			observability.Field{Key: "url", Value: setupErr.URL},
		)
	}
	return err
}
