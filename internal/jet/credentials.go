package jet

import (
	"fmt"
	"sync"
	"time"
)

// expiryLayouts are the timestamp forms accepted for expires_on. Fractional
// seconds are accepted by the parser even when the layout omits them.
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
}

// Credentials holds the login credentials and the current bearer token for
// a single client. Individual reads and writes are safe for concurrent use;
// the client's reauth guard serializes the check-then-login sequence.
type Credentials struct {
	username    string
	password    string
	authURL     string
	authTestURL string

	mu        sync.RWMutex
	token     string
	tokenType string
	expiry    time.Time
	nowFunc   func() time.Time
}

// NewCredentials creates an unauthenticated credential store.
func NewCredentials(username, password, authURL, authTestURL string) *Credentials {
	return &Credentials{
		username:    username,
		password:    password,
		authURL:     authURL,
		authTestURL: authTestURL,
		nowFunc:     time.Now,
	}
}

// Username returns the login user.
func (c *Credentials) Username() string { return c.username }

// Password returns the login password.
func (c *Credentials) Password() string { return c.password }

// AuthURL returns the token exchange endpoint.
func (c *Credentials) AuthURL() string { return c.authURL }

// AuthTestURL returns the live auth-test endpoint.
func (c *Credentials) AuthTestURL() string { return c.authTestURL }

// Token returns the current bearer token, or "" when unauthenticated.
func (c *Credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// TokenType returns the current token type, e.g. "Bearer".
func (c *Credentials) TokenType() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokenType
}

// Expiry returns the token expiry. The zero time means unknown.
func (c *Credentials) Expiry() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiry
}

// SetAuthenticationData replaces the token, token type and expiry in one
// step. It returns ErrMalformedAuthResponse and leaves the store untouched
// if any argument is empty or expiresOn cannot be parsed.
func (c *Credentials) SetAuthenticationData(token, tokenType, expiresOn string) error {
	if token == "" {
		return fmt.Errorf("id_token is empty: %w", ErrMalformedAuthResponse)
	}
	if tokenType == "" {
		return fmt.Errorf("token_type is empty: %w", ErrMalformedAuthResponse)
	}
	if expiresOn == "" {
		return fmt.Errorf("expires_on is empty: %w", ErrMalformedAuthResponse)
	}

	expiry, err := parseExpiry(expiresOn)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.tokenType = tokenType
	c.expiry = expiry
	return nil
}

// ClearAuthenticationData resets the token fields. Calling it more than once
// has no further effect.
func (c *Credentials) ClearAuthenticationData() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.tokenType = ""
	c.expiry = time.Time{}
}

// IsAuthenticated reports whether a token is present and, when the expiry
// is known, not yet expired.
func (c *Credentials) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == "" {
		return false
	}
	if c.expiry.IsZero() {
		return true
	}
	return c.nowFunc().Before(c.expiry)
}

// AuthorizationHeaderValue returns "<type> <token>". It is recomputed on
// every call.
func (c *Credentials) AuthorizationHeaderValue() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == "" {
		return "", ErrNotAuthenticated
	}
	return c.tokenType + " " + c.token, nil
}

func parseExpiry(s string) (time.Time, error) {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expires_on %q is not a timestamp: %w", s, ErrMalformedAuthResponse)
}
