package jet

import (
	"errors"
	"fmt"
	"strings"
)

// Failure taxonomy for the authenticated request pipeline.
var (
	// ErrTransport wraps network and IO failures below the HTTP layer.
	ErrTransport = errors.New("transport error")

	// ErrAuthenticationFailed is returned when credentials are rejected or the
	// live auth test fails after a token exchange.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrMalformedAuthResponse is returned when the auth endpoint answers 2xx
	// but omits id_token, token_type or expires_on.
	ErrMalformedAuthResponse = errors.New("malformed authentication response")

	// ErrInvalidResponseBody is returned when a caller asks for the parsed
	// JSON form of a body that is not valid JSON.
	ErrInvalidResponseBody = errors.New("invalid response body")

	// ErrNotAuthenticated is returned when the Authorization header value is
	// requested before a successful login.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError describes a non-2xx response from the marketplace API. Jet error
// bodies carry an "errors" array of messages.
type APIError struct {
	StatusCode int
	Messages   []string
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf(
			"jet API error (status %d): %s",
			e.StatusCode,
			strings.Join(e.Messages, "; "),
		)
	}
	return fmt.Sprintf("jet API error (status %d): %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
