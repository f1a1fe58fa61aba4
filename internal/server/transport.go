package server

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport registra cada chamada de saída para o Bedrock
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if err != nil {
		t.Logger.Debug("outbound request failed",
			"method", req.Method, "host", req.URL.Host, "duration", time.Since(start), "err", err)
		return nil, err
	}

	t.Logger.Debug("outbound request",
		"method", req.Method, "host", req.URL.Host, "status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}

// NewHTTPClient cria o cliente HTTP usado pelo SDK da AWS
func NewHTTPClient(logger *slog.Logger) *http.Client {
	return &http.Client{
		Transport: &LoggingTransport{
			Base:   http.DefaultTransport,
			Logger: logger,
		},
	}
}
