// Package jet provides an authenticated client for the Jet merchant API.
// Every request passes through one gate that logs in on demand, so callers
// never see a separate "log in first" failure when a token expires.
package jet

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL  = "https://merchant-api.jet.com/api"
	authPath        = "/token"
	authTestPath    = "/authcheck"
	defaultTimeout  = 30 * time.Second
	loginFlightKey  = "login"
	authTestMessage = `"This message is authorized."`
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// State is the session state of a Client.
type State int

// Session states.
const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ReauthMode controls what a request does when it finds the session
// unauthenticated while another request is already logging in.
type ReauthMode int

const (
	// ReauthProceed dispatches immediately with whatever Authorization
	// header the request already carries.
	ReauthProceed ReauthMode = iota
	// ReauthWait blocks until the in-flight login finishes and shares its
	// result.
	ReauthWait
)

// ParseReauthMode converts "proceed" or "wait" to a ReauthMode. Anything
// else returns ReauthProceed.
func ParseReauthMode(s string) ReauthMode {
	if strings.EqualFold(s, "wait") {
		return ReauthWait
	}
	return ReauthProceed
}

func (m ReauthMode) String() string {
	if m == ReauthWait {
		return "wait"
	}
	return "proceed"
}

// Client is an authenticated Jet API client. It is safe for concurrent use.
type Client struct {
	creds      *Credentials
	baseURL    string
	authURL    string
	testURL    string
	client     Doer
	logger     *slog.Logger
	reauthMode ReauthMode
	userAgent  string
	nowFunc    func() time.Time

	// guard serializes the check-then-login sequence.
	guard          sync.Mutex
	authenticating atomic.Bool
	logins         singleflight.Group
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API root used to resolve relative paths.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAuthURL overrides the token exchange endpoint.
func WithAuthURL(u string) Option {
	return func(c *Client) {
		c.authURL = u
	}
}

// WithAuthTestURL overrides the live auth-test endpoint.
func WithAuthTestURL(u string) Option {
	return func(c *Client) {
		c.testURL = u
	}
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.client = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithReauthMode selects proceed or wait behavior during an in-flight login.
func WithReauthMode(m ReauthMode) Option {
	return func(c *Client) {
		c.reauthMode = m
	}
}

// WithUserAgent sets a User-Agent sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = f
	}
}

// New creates a client for the given merchant credentials. Auth endpoints
// default to paths under the base URL.
func New(username, password string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.authURL == "" {
		c.authURL = c.baseURL + authPath
	}
	if c.testURL == "" {
		c.testURL = c.baseURL + authTestPath
	}

	c.creds = NewCredentials(username, password, c.authURL, c.testURL)
	c.creds.nowFunc = c.nowFunc
	return c
}

// Credentials returns the client's credential store.
func (c *Client) Credentials() *Credentials {
	return c.creds
}

// State returns the current session state.
func (c *Client) State() State {
	if c.authenticating.Load() {
		return StateAuthenticating
	}
	if c.creds.IsAuthenticated() {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// Invalidate drops the current token. The next request logs in again.
// It waits for an in-flight login so that login cannot overwrite it.
func (c *Client) Invalidate() {
	c.guard.Lock()
	defer c.guard.Unlock()

	c.creds.ClearAuthenticationData()
	c.logger.Info("session invalidated")
}

// authValue returns the current Authorization value, or "" before login.
func (c *Client) authValue() string {
	v, err := c.creds.AuthorizationHeaderValue()
	if err != nil {
		return ""
	}
	return v
}

// resolveURL joins relative paths onto the base URL.
func (c *Client) resolveURL(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return c.baseURL + "/" + strings.TrimLeft(u, "/")
}
