package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitormoschetta/go-bedrock-chat/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithLogger(t, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestServerWithLogger(t *testing.T, logger *slog.Logger) *Server {
	t.Helper()
	s := &Server{
		Config: config.Config{
			Server: config.ServerConfig{
				Host:            "127.0.0.1",
				Port:            0,
				AllowedOrigins:  []string{"*"},
				ShutdownTimeout: time.Second,
			},
		},
		logger: logger,
	}

	ok := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}
	}
	s.SetupRouter(ok("root"), ok("health"), ok("chat"))
	return s
}

func serve(s *Server, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, "root", serve(s, http.MethodGet, "/", nil).Body.String())
	assert.Equal(t, "health", serve(s, http.MethodGet, "/health", nil).Body.String())
	assert.Equal(t, "chat", serve(s, http.MethodPost, "/chat", nil).Body.String())

	assert.Equal(t, http.StatusMethodNotAllowed, serve(s, http.MethodGet, "/chat", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/api/chat", nil).Code)
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	s := newTestServer(t)
	serve(s, http.MethodPost, "/chat", nil)

	w := serve(s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `kbchat_http_requests_total{method="POST",path="/chat",status="200"}`)
}

func TestAccessLogUsesSlog(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServerWithLogger(t, slog.New(slog.NewJSONHandler(&buf, nil)))

	serve(s, http.MethodPost, "/chat", nil)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "http request", record["msg"])
	assert.Equal(t, "POST", record["method"])
	assert.Equal(t, "/chat", record["path"])
	assert.Equal(t, float64(http.StatusOK), record["status"])
	assert.NotEmpty(t, record["request_id"])
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, http.MethodPost, "/chat", http.Header{"Origin": {"http://frontend.test"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartStopsOnContextCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestLoggingTransport(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer upstream.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	resp, err := NewHTTPClient(logger).Get(upstream.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Contains(t, buf.String(), "outbound request")
	assert.Contains(t, buf.String(), "status=418")
}
