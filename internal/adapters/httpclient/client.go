// Package httpclient implements ports.Transport over net/http.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/smartmate/internal/build"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/oauth2"
)

const (
	tracerName      = "go.trai.ch/smartmate/httpclient"
	maxBodyBytes    = 4 << 20
	maxMessageBytes = 256
)

// Client sends JSON requests to the configured base URL.
type Client struct {
	baseURL string
	headers http.Header
	http    *http.Client
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient     *http.Client
	tracerProvider trace.TracerProvider
}

// WithHTTPClient sets the underlying client. Its transport is wrapped to add
// the bearer token; the client itself is not modified. A zero Timeout keeps
// the configured one.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTracerProvider sets the provider used for request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// New creates a Client for cfg.
func New(cfg domain.APIConfig, opts ...Option) (*Client, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		if err == nil {
			err = errors.New("base url must be absolute")
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "base_url", cfg.BaseURL)
	}

	hc := &http.Client{Timeout: cfg.Timeout}
	if o.httpClient != nil {
		if o.httpClient.Timeout > 0 {
			hc.Timeout = o.httpClient.Timeout
		}
		hc.Transport = o.httpClient.Transport
	}
	if cfg.Token != "" {
		hc.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}),
			Base:   hc.Transport,
		}
	}

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", domain.AppName+"/"+build.Version)
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}

	tp := o.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Client{
		baseURL: strings.TrimRight(base.String(), "/"),
		headers: headers,
		http:    hc,
		tracer:  tp.Tracer(tracerName),
	}, nil
}

// Get implements ports.Transport.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post implements ports.Transport.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put implements ports.Transport.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete implements ports.Transport.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	status, err := c.roundTrip(ctx, method, path, body, out)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.KindOf(err).String())
		return err
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, zerr.With(zerr.Wrap(err, "failed to encode request body"), "path", path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, &domain.APIError{Kind: domain.KindNetwork, Method: method, Path: path, Err: err}
	}
	req.Header = c.headers.Clone()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &domain.APIError{Kind: domain.KindNetwork, Method: method, Path: path, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, &domain.APIError{
			Kind: domain.KindNetwork, Method: method, Path: path, StatusCode: resp.StatusCode, Err: err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, statusError(method, path, resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, &domain.APIError{
			Kind: domain.KindDecode, Method: method, Path: path, StatusCode: resp.StatusCode, Message: "empty response body",
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, &domain.APIError{
			Kind: domain.KindDecode, Method: method, Path: path, StatusCode: resp.StatusCode, Err: err,
		}
	}
	return resp.StatusCode, nil
}

// errorBody is the error envelope returned by the backend.
type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func statusError(method, path string, status int, data []byte) *domain.APIError {
	apiErr := &domain.APIError{
		Kind:       domain.KindHTTPStatus,
		Method:     method,
		Path:       path,
		StatusCode: status,
	}

	switch status {
	case http.StatusNotFound:
		apiErr.Kind = domain.KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		apiErr.Kind = domain.KindValidation
	}

	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil {
		apiErr.Message = eb.Error
		if apiErr.Message == "" {
			apiErr.Message = eb.Message
		}
		apiErr.Fields = eb.Fields
	} else {
		apiErr.Message = truncate(strings.TrimSpace(string(data)), maxMessageBytes)
	}
	return apiErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
