package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://gw.example.com", 15*time.Second)
//	resp, err := client.R().Get("/health")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. Every request is bounded
// by timeout; zero means no client-side limit.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().SetBaseURL(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}

// WithBearerToken sets the token sent in the Authorization header of every
// request. An empty token leaves the client unauthenticated.
func (c *HTTPClient) WithBearerToken(token string) *HTTPClient {
	if token != "" {
		c.SetAuthToken(token)
	}
	return c
}
