package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
)

// Options tunes the shared HTTP client used by all backend calls.
type Options struct {
	Timeout    time.Duration // overall cap per request, applied on top of per-call deadlines
	PreferIPv4 bool
}

// NewHTTPClient builds an *http.Client with connection pooling suited for
// long-running generation calls.
func NewHTTPClient(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}

	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if opts.PreferIPv4 {
				return dialer.DialContext(ctx, "tcp4", addr)
			}
			return dialer.DialContext(ctx, network, addr)
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{Timeout: timeout, Transport: tr}
}

// Client wraps one HTTP round trip with a cancellation deadline and a typed
// error taxonomy: deadline overruns become domain.TimeoutError and everything
// that fails before a response arrives becomes domain.NetworkError.
type Client struct {
	httpClient *http.Client
}

// NewClient wraps the given *http.Client; a nil client gets pooled defaults.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(Options{})
	}
	return &Client{httpClient: httpClient}
}

// Do issues the request with the given per-call deadline. The in-flight
// request is cancelled once the deadline elapses; callers own the response
// body, and closing it releases the deadline timer.
func (c *Client) Do(req *http.Request, timeout time.Duration) (*http.Response, error) {
	op := req.Method + " " + req.URL.Host
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		cancel()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &domain.TimeoutError{Op: op, Timeout: timeout}
		}
		return nil, &domain.NetworkError{Op: op, Err: err}
	}
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
