package httpx

import (
	"context"
	"net"
	"net/http"
	"time"
)

const UserAgent = "Mozilla/5.0 (compatible; nsetrack/1.0)"

// Client wraps http.Client with dial and header timeouts and default headers.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
}

func New(timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	}
	headers := map[string]string{
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: &headerTransport{base: transport, userAgent: UserAgent, headers: headers},
		},
		UserAgent: UserAgent,
		Headers:   headers,
	}
}

// headerTransport adds the default headers to requests that do not go
// through Client.Do, such as those finance-go makes with Client.HTTP.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	setDefaults(req, t.userAgent, t.headers)
	return t.base.RoundTrip(req)
}

func setDefaults(req *http.Request, userAgent string, headers map[string]string) {
	if userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}
	for k, v := range headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
}

// Wrap uses an existing http.Client, httptest servers in particular
func Wrap(c *http.Client) *Client {
	return &Client{HTTP: c, UserAgent: UserAgent}
}

func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	setDefaults(req, c.UserAgent, c.Headers)
	return c.HTTP.Do(req)
}
