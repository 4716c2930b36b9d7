package httpclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/smartmate/internal/adapters/httpclient"
	"go.trai.ch/smartmate/internal/core/domain"
)

type payload struct {
	Name string `json:"name"`
}

func newClient(t *testing.T, srv *httptest.Server, token string, opts ...httpclient.Option) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(domain.APIConfig{
		BaseURL: srv.URL,
		Token:   token,
		Timeout: 5 * time.Second,
		Headers: map[string]string{"X-Client": "test"},
	}, opts...)
	require.NoError(t, err)
	return c
}

func TestClient_AttachesHeadersAndToken(t *testing.T) {
	var got http.Header
	var gotBody payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"name":"ok"}`)
	}))
	defer srv.Close()

	c := newClient(t, srv, "secret")

	var out payload
	require.NoError(t, c.Post(context.Background(), "/things", payload{Name: "in"}, &out))

	assert.Equal(t, "ok", out.Name)
	assert.Equal(t, "in", gotBody.Name)
	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "test", got.Get("X-Client"))
	assert.Contains(t, got.Get("User-Agent"), "smartmate/")
}

func TestClient_NoTokenNoAuthorization(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newClient(t, srv, "")
	require.NoError(t, c.Delete(context.Background(), "/things/1"))

	assert.Empty(t, got.Get("Authorization"))
	assert.Empty(t, got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestClient_StatusNormalization(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		kind     domain.ErrorKind
		sentinel error
		message  string
		fields   map[string]string
	}{
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"error":"task not found"}`,
			kind:     domain.KindNotFound,
			sentinel: domain.ErrNotFound,
			message:  "task not found",
		},
		{
			name:     "unprocessable",
			status:   http.StatusUnprocessableEntity,
			body:     `{"error":"invalid task","fields":{"title":"cannot be blank"}}`,
			kind:     domain.KindValidation,
			sentinel: domain.ErrValidation,
			message:  "invalid task",
			fields:   map[string]string{"title": "cannot be blank"},
		},
		{
			name:     "bad request",
			status:   http.StatusBadRequest,
			body:     `{"message":"malformed json"}`,
			kind:     domain.KindValidation,
			sentinel: domain.ErrValidation,
			message:  "malformed json",
		},
		{
			name:     "server error with plain body",
			status:   http.StatusInternalServerError,
			body:     "boom\n",
			kind:     domain.KindHTTPStatus,
			sentinel: domain.ErrHTTPStatus,
			message:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := newClient(t, srv, "")
			var out payload
			err := c.Get(context.Background(), "/things", &out)

			require.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, domain.ErrHTTPStatus)

			var apiErr *domain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.fields, apiErr.Fields)
			assert.Equal(t, http.MethodGet, apiErr.Method)
			assert.Equal(t, "/things", apiErr.Path)
		})
	}
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"name": 42}`)
	}))
	defer srv.Close()

	c := newClient(t, srv, "")
	var out payload
	err := c.Get(context.Background(), "/things", &out)

	require.ErrorIs(t, err, domain.ErrDecode)
	assert.NotErrorIs(t, err, domain.ErrHTTPStatus)
}

func TestClient_EmptyBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newClient(t, srv, "")
	var out payload
	require.ErrorIs(t, c.Get(context.Background(), "/things", &out), domain.ErrDecode)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newClient(t, srv, "")
	srv.Close()

	err := c.Get(context.Background(), "/things", nil)

	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.True(t, domain.IsRetryable(err))
}

func TestClient_CanceledContextIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newClient(t, srv, "")
	err := c.Get(ctx, "/things", nil)

	require.ErrorIs(t, err, domain.ErrNetwork)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_CustomClientKeepsConfiguredTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c, err := httpclient.New(domain.APIConfig{
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	}, httpclient.WithHTTPClient(&http.Client{Transport: http.DefaultTransport}))
	require.NoError(t, err)

	start := time.Now()
	err = c.Get(context.Background(), "/slow", nil)

	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_InvalidBaseURL(t *testing.T) {
	_, err := httpclient.New(domain.APIConfig{BaseURL: "localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigInvalid.Error())
}

func TestClient_RecordsSpans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	c := newClient(t, srv, "", httpclient.WithTracerProvider(tp))
	err := c.Delete(context.Background(), "/things/9")
	require.ErrorIs(t, err, domain.ErrNotFound)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "DELETE /things/9", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "not_found", span.Status().Description)
	assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", http.StatusNotFound))
	assert.Contains(t, span.Attributes(), attribute.String("http.request.method", http.MethodDelete))
}
