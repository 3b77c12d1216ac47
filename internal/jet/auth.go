package jet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/donaldgifford/jet-merchant-client/internal/metrics"
)

type loginRequest struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

type loginResponse struct {
	IDToken   string `json:"id_token"`
	TokenType string `json:"token_type"`
	ExpiresOn string `json:"expires_on"`
}

// Login exchanges the username and password for a bearer token and then
// checks that the API accepts it. It returns false, with the store cleared,
// when the token exchange succeeds but the live auth test does not. Any
// failed attempt drops the previous token.
func (c *Client) Login(ctx context.Context) (bool, error) {
	c.guard.Lock()
	defer c.guard.Unlock()

	c.authenticating.Store(true)
	defer c.authenticating.Store(false)

	return c.loginLocked(ctx)
}

// loginLocked runs the login sub-protocol. Caller must hold c.guard.
func (c *Client) loginLocked(ctx context.Context) (bool, error) {
	c.logger.Info("attempting login", "user", c.creds.Username())

	payload, err := json.Marshal(loginRequest{
		User: c.creds.Username(),
		Pass: c.creds.Password(),
	})
	if err != nil {
		return false, fmt.Errorf("encoding login payload: %w", err)
	}

	resp, err := c.dispatch(ctx, &Request{
		Method: http.MethodPost,
		URL:    c.creds.AuthURL(),
		Header: JSONHeaders(c.authValue()).Build(),
		Body:   payload,
	})
	if err != nil {
		c.creds.ClearAuthenticationData()
		metrics.LoginsTotal.WithLabelValues(metrics.LoginError).Inc()
		return false, err
	}

	if !resp.IsSuccess() {
		c.creds.ClearAuthenticationData()
		metrics.LoginsTotal.WithLabelValues(metrics.LoginRejected).Inc()
		c.logger.Info("login rejected; a 400 from the token endpoint usually means bad credentials",
			"status", resp.StatusCode())
		return false, fmt.Errorf("%w: %w", ErrAuthenticationFailed, resp.Err())
	}

	if err := c.setAuthenticationDataFromLogin(resp); err != nil {
		c.creds.ClearAuthenticationData()
		metrics.LoginsTotal.WithLabelValues(metrics.LoginMalformed).Inc()
		return false, err
	}

	c.logger.Debug("token accepted, running live auth test")

	live, err := c.authTest(ctx)
	if err != nil {
		c.creds.ClearAuthenticationData()
		metrics.LoginsTotal.WithLabelValues(metrics.LoginError).Inc()
		return false, fmt.Errorf("running auth test: %w", err)
	}
	if !live {
		c.creds.ClearAuthenticationData()
		metrics.LoginsTotal.WithLabelValues(metrics.LoginTestFailed).Inc()
		c.logger.Warn("auth test rejected the new token")
		return false, nil
	}

	metrics.LoginsTotal.WithLabelValues(metrics.LoginSuccess).Inc()
	c.logger.Info("login succeeded", "expires", c.creds.Expiry())
	return true, nil
}

func (c *Client) setAuthenticationDataFromLogin(resp *Response) error {
	var lr loginResponse
	if err := resp.Decode(&lr); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedAuthResponse, err)
	}

	if err := c.creds.SetAuthenticationData(lr.IDToken, lr.TokenType, lr.ExpiresOn); err != nil {
		return fmt.Errorf(
			"authentication response is missing id_token, token_type or expires_on: %w",
			err,
		)
	}
	return nil
}

// authTest reports whether the API accepts the current token.
func (c *Client) authTest(ctx context.Context) (bool, error) {
	resp, err := c.dispatch(ctx, &Request{
		Method: http.MethodGet,
		URL:    c.creds.AuthTestURL(),
		Header: PlainHeaders(c.authValue()).Build(),
	})
	if err != nil {
		return false, err
	}
	return resp.Content() == authTestMessage, nil
}

// reauthLocked logs in unless another caller already did. Failures are
// logged and swallowed. Caller must hold c.guard.
func (c *Client) reauthLocked(ctx context.Context) bool {
	if c.creds.IsAuthenticated() {
		return true
	}

	c.authenticating.Store(true)
	defer c.authenticating.Store(false)

	ok, err := c.loginLocked(ctx)
	switch {
	case err != nil:
		metrics.ReauthTotal.WithLabelValues(metrics.ReauthFailed).Inc()
		c.logger.Error("failed to reauthenticate", "error", err,
			"malformed", errors.Is(err, ErrMalformedAuthResponse))
	case !ok:
		metrics.ReauthTotal.WithLabelValues(metrics.ReauthFailed).Inc()
		c.logger.Error("failed to reauthenticate", "error", "auth test failed")
	default:
		metrics.ReauthTotal.WithLabelValues(metrics.ReauthRefreshed).Inc()
	}
	return ok
}
