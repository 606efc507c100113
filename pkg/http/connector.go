// Package http provides a reusable JSON/multipart connector for the
// external service boundary. Timeouts and retries live here; callers get a
// single logical attempt per request.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

type Connector struct {
	baseURL    string
	httpClient *http.Client
	retryOpts  []retry.Option
	logger     *zap.Logger
}

type ConnectorConfig struct {
	BaseURL   string
	Logger    *zap.Logger
	RetryOpts []retry.Option
}

func NewConnector(config *ConnectorConfig, options ...HttpOpts) *Connector {
	return &Connector{
		baseURL:    config.BaseURL,
		httpClient: newClient(options...),
		retryOpts:  config.RetryOpts,
		logger:     config.Logger,
	}
}

type RequestOpt func(*requestConfig)

type requestConfig struct {
	headers     map[string]string
	queryParams map[string]string
}

func WithHeader(key, value string) RequestOpt {
	return func(c *requestConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

func WithQueryParam(key, value string) RequestOpt {
	return func(c *requestConfig) {
		if c.queryParams == nil {
			c.queryParams = make(map[string]string)
		}
		c.queryParams[key] = value
	}
}

// DoRequest performs a JSON request against baseURL+endpoint, decoding the
// response into respBody when non-nil. Network errors and 5xx responses are
// retried per the connector's retry options; 4xx responses are not.
func (c *Connector) DoRequest(ctx context.Context, method, endpoint string, reqBody, respBody any, opts ...RequestOpt) error {
	cfg := applyRequestOpts(opts)

	var rawBody []byte
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		rawBody = jsonData
		// Attach payload to context for the logging transport
		ctx = context.WithValue(ctx, payloadContextKey{}, rawBody)
	}

	build := func() (*http.Request, error) {
		var bodyReader io.Reader
		if rawBody != nil {
			bodyReader = bytes.NewReader(rawBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.buildURL(endpoint, cfg), bodyReader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		if rawBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		for key, value := range cfg.headers {
			req.Header.Set(key, value)
		}
		return req, nil
	}

	return c.execute(ctx, build, respBody)
}

// DoMultipartRequest performs a multipart/form-data request. The body is
// rebuilt on every retry attempt.
func (c *Connector) DoMultipartRequest(ctx context.Context, method, endpoint string, prepareBody func(*multipart.Writer) error, respBody any, opts ...RequestOpt) error {
	cfg := applyRequestOpts(opts)

	build := func() (*http.Request, error) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		if err := prepareBody(writer); err != nil {
			return nil, fmt.Errorf("prepare multipart body: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("close multipart writer: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.buildURL(endpoint, cfg), body)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Accept", "application/json")
		for key, value := range cfg.headers {
			req.Header.Set(key, value)
		}
		return req, nil
	}

	return c.execute(ctx, build, respBody)
}

func (c *Connector) execute(ctx context.Context, build func() (*http.Request, error), respBody any) error {
	opts := append([]retry.Option{
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	}, c.retryOpts...)

	return retry.Do(func() error {
		req, err := build()
		if err != nil {
			return retry.Unrecoverable(err)
		}
		return c.doOnce(req, respBody)
	}, opts...)
}

func (c *Connector) doOnce(req *http.Request, respBody any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    string(bodyBytes),
		}
	}

	if respBody != nil && len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, respBody); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Connector) buildURL(endpoint string, cfg *requestConfig) string {
	u := c.baseURL + endpoint
	if len(cfg.queryParams) > 0 {
		params := url.Values{}
		for key, value := range cfg.queryParams {
			params.Set(key, value)
		}
		u += "?" + params.Encode()
	}
	return u
}

func applyRequestOpts(opts []RequestOpt) *requestConfig {
	cfg := &requestConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func isRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return false
}

// HTTPError represents a non-2xx HTTP response
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError represents a network-level error (connection, timeout, etc.)
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
