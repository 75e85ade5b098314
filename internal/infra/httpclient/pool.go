package httpclient

import (
	"net/http"
	"time"
)

// sharedTransport is reused across all pooled clients so the generation and
// embedding clients keep warm connections to the same Ollama host instead of
// handshaking per request.
var sharedTransport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
	DisableKeepAlives:   false,
}

// NewPooledClient creates an http.Client that shares the process-wide
// connection pool.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}
