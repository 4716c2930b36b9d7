package fakeapi_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smartmate/internal/adapters/fakeapi"
	"go.trai.ch/smartmate/internal/core/domain"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newServer(opts ...fakeapi.Option) *fakeapi.Server {
	n := 0
	opts = append([]fakeapi.Option{
		fakeapi.WithClock(func() time.Time { return fixedNow }),
		fakeapi.WithIDs(func() string {
			n++
			return "id-" + strconv.Itoa(n)
		}),
	}, opts...)
	return fakeapi.New(opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_TaskLifecycle(t *testing.T) {
	h := newServer().Handler()

	rec := do(t, h, http.MethodPost, "/tasks", `{"title":"Write tests","priority":"high"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, fixedNow, created.CreatedAt)

	rec = do(t, h, http.MethodPut, "/tasks/id-1", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "Write tests", updated.Title)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)

	rec = do(t, h, http.MethodGet, "/tasks/id-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/tasks/id-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/tasks/id-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"task not found"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/tasks", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestServer_Validation(t *testing.T) {
	h := newServer().Handler()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		fields []string
	}{
		{name: "missing title", method: http.MethodPost, path: "/tasks", body: `{"priority":"low"}`, status: http.StatusUnprocessableEntity, fields: []string{"title"}},
		{name: "unknown priority", method: http.MethodPost, path: "/tasks", body: `{"title":"x","priority":"urgent"}`, status: http.StatusUnprocessableEntity, fields: []string{"priority"}},
		{name: "bad email", method: http.MethodPost, path: "/users", body: `{"name":"Ada","email":"nope"}`, status: http.StatusUnprocessableEntity, fields: []string{"email"}},
		{name: "blank title patch", method: http.MethodPut, path: "/tasks/missing", body: `{"title":""}`, status: http.StatusUnprocessableEntity, fields: []string{"title"}},
		{name: "malformed json", method: http.MethodPost, path: "/tasks", body: `{`, status: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/tasks", body: `{"title":"x","priority":"low","owner":"me"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code)

			var body struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
			for _, f := range tt.fields {
				assert.Contains(t, body.Fields, f)
			}
		})
	}
}

func TestServer_Users(t *testing.T) {
	h := newServer().Handler()

	rec := do(t, h, http.MethodPost, "/users", `{"name":"Ada","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPut, "/users/id-1", `{"name":"Ada L."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/users", "")
	var users []domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Ada L.", users[0].Name)
	assert.Equal(t, "ada@example.com", users[0].Email)
}

func TestServer_Prefix(t *testing.T) {
	s := newServer(fakeapi.WithPrefix("api/v1/"))
	s.SeedTasks(domain.Task{Title: "seeded", Priority: domain.PriorityLow})
	h := s.Handler()

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/tasks/id-1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/tasks", "").Code)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- newServer().Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/tasks")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
