package jet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/jet-merchant-client/internal/metrics"
)

// Request is an outgoing API call before dispatch.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Get sends a GET request. Relative URLs are resolved against the base URL;
// headers override the default JSON and auth headers.
func (c *Client) Get(ctx context.Context, url string, headers http.Header) (*Response, error) {
	return c.executeRequest(ctx, c.newRequest(http.MethodGet, url, nil, headers))
}

// Post sends payload with a POST request.
func (c *Client) Post(
	ctx context.Context,
	url string,
	payload []byte,
	headers http.Header,
) (*Response, error) {
	return c.executeRequest(ctx, c.newRequest(http.MethodPost, url, payload, headers))
}

// Put sends payload with a PUT request.
func (c *Client) Put(
	ctx context.Context,
	url string,
	payload []byte,
	headers http.Header,
) (*Response, error) {
	return c.executeRequest(ctx, c.newRequest(http.MethodPut, url, payload, headers))
}

func (c *Client) newRequest(method, url string, payload []byte, headers http.Header) *Request {
	return &Request{
		Method: method,
		URL:    c.resolveURL(url),
		Header: JSONHeaders(c.authValue()).Merge(headers).Build(),
		Body:   payload,
	}
}

// executeRequest is the gate every Get, Post and Put passes through. An
// unauthenticated session triggers at most one login per client; a failed
// login is logged and the request is still sent.
func (c *Client) executeRequest(ctx context.Context, req *Request) (*Response, error) {
	switch {
	case !c.creds.IsAuthenticated():
		if c.reauthenticate(ctx) {
			req.Header.Set("Authorization", c.authValue())
		}
	case req.Header.Get("Authorization") == "":
		// Built before a concurrent login finished.
		req.Header.Set("Authorization", c.authValue())
	}
	return c.dispatch(ctx, req)
}

// reauthenticate reports whether the session is authenticated afterwards.
func (c *Client) reauthenticate(ctx context.Context) bool {
	if c.reauthMode == ReauthWait {
		v, _, shared := c.logins.Do(loginFlightKey, func() (any, error) {
			c.guard.Lock()
			defer c.guard.Unlock()
			return c.reauthLocked(ctx), nil
		})
		if shared {
			metrics.ReauthTotal.WithLabelValues(metrics.ReauthShared).Inc()
		}
		ok, _ := v.(bool)
		return ok
	}

	if !c.guard.TryLock() {
		metrics.ReauthTotal.WithLabelValues(metrics.ReauthSkipped).Inc()
		c.logger.Debug("login already in flight, sending with current header")
		return false
	}
	defer c.guard.Unlock()
	return c.reauthLocked(ctx)
}

// dispatch sends req through the transport without the auth gate.
func (c *Client) dispatch(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader = http.NoBody
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}
	if c.userAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	requestID := httpReq.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		httpReq.Header.Set(RequestIDHeader, requestID)
	}

	c.logger.Debug("sending request",
		"request_id", requestID, "method", req.Method, "url", req.URL)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.TransportErrorsTotal.Inc()
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TransportErrorsTotal.Inc()
		return nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	out := NewResponse(resp.StatusCode, resp.Header, data)
	metrics.RequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(req.Method, out.Class().String()).Inc()

	c.logger.Debug("received response",
		"request_id", requestID, "status", out.StatusCode(), "class", out.Class().String())
	return out, nil
}
