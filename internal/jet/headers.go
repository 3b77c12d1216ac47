package jet

import "net/http"

const (
	contentTypeJSON  = "application/json"
	contentTypePlain = "text/plain"
)

// RequestIDHeader carries a per-request ID. Dispatch generates one when the
// caller has not set it.
const RequestIDHeader = "X-Request-ID"

// HeaderBuilder assembles request headers around an Authorization value.
// The builder never touches the credential store; callers pass the value in.
type HeaderBuilder struct {
	header http.Header
}

// AuthHeaders returns a builder carrying only the Authorization header.
// An empty auth value leaves Authorization unset.
func AuthHeaders(auth string) *HeaderBuilder {
	b := &HeaderBuilder{header: make(http.Header)}
	if auth != "" {
		b.header.Set("Authorization", auth)
	}
	return b
}

// JSONHeaders returns a builder for JSON requests.
func JSONHeaders(auth string) *HeaderBuilder {
	return AuthHeaders(auth).
		Set("Content-Type", contentTypeJSON).
		Set("Accept", contentTypeJSON)
}

// PlainHeaders returns a builder for plain-text requests.
func PlainHeaders(auth string) *HeaderBuilder {
	return AuthHeaders(auth).Set("Accept", contentTypePlain)
}

// Set adds or replaces a header.
func (b *HeaderBuilder) Set(name, value string) *HeaderBuilder {
	b.header.Set(name, value)
	return b
}

// Merge copies every value in h over the builder's headers.
func (b *HeaderBuilder) Merge(h http.Header) *HeaderBuilder {
	for name, values := range h {
		b.header.Del(name)
		for _, v := range values {
			b.header.Add(name, v)
		}
	}
	return b
}

// Build returns a copy of the assembled headers.
func (b *HeaderBuilder) Build() http.Header {
	return b.header.Clone()
}
