package jet

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// StatusClass groups HTTP status codes.
type StatusClass int

// Status classes.
const (
	ClassOther StatusClass = iota
	ClassSuccess
	ClassClientError
	ClassServerError
)

func (s StatusClass) String() string {
	switch s {
	case ClassSuccess:
		return "success"
	case ClassClientError:
		return "client_error"
	case ClassServerError:
		return "server_error"
	default:
		return "other"
	}
}

// ClassifyStatus maps a status code to its class.
func ClassifyStatus(code int) StatusClass {
	switch {
	case code >= 200 && code <= 299:
		return ClassSuccess
	case code >= 400 && code <= 499:
		return ClassClientError
	case code >= 500 && code <= 599:
		return ClassServerError
	default:
		return ClassOther
	}
}

// Response is a transport response normalized for callers. It is immutable
// after construction; the JSON form is parsed at most once, on first use.
type Response struct {
	statusCode int
	header     http.Header
	body       []byte
	class      StatusClass

	parseOnce sync.Once
	parsed    any
	parseErr  error
}

// NewResponse wraps a raw status, header set and body. It never fails.
func NewResponse(statusCode int, header http.Header, body []byte) *Response {
	if header == nil {
		header = make(http.Header)
	}
	return &Response{
		statusCode: statusCode,
		header:     header,
		body:       body,
		class:      ClassifyStatus(statusCode),
	}
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int { return r.statusCode }

// Header returns a copy of the response headers.
func (r *Response) Header() http.Header { return r.header.Clone() }

// Class returns the status classification.
func (r *Response) Class() StatusClass { return r.class }

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool { return r.class == ClassSuccess }

// IsClientError reports a 4xx status.
func (r *Response) IsClientError() bool { return r.class == ClassClientError }

// IsServerError reports a 5xx status.
func (r *Response) IsServerError() bool { return r.class == ClassServerError }

// Bytes returns a copy of the raw body.
func (r *Response) Bytes() []byte {
	out := make([]byte, len(r.body))
	copy(out, r.body)
	return out
}

// Content returns the body as text.
func (r *Response) Content() string { return string(r.body) }

// JSON returns the parsed body. The parse result, including any error, is
// memoized.
func (r *Response) JSON() (any, error) {
	r.parseOnce.Do(func() {
		if err := json.Unmarshal(r.body, &r.parsed); err != nil {
			r.parseErr = fmt.Errorf("parsing JSON body (status %d): %w: %w",
				r.statusCode, ErrInvalidResponseBody, err)
		}
	})
	return r.parsed, r.parseErr
}

// JSONObject returns the parsed body as an object.
func (r *Response) JSONObject() (map[string]any, error) {
	v, err := r.JSON()
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("body is %T, not an object: %w", v, ErrInvalidResponseBody)
	}
	return obj, nil
}

// Decode unmarshals the body into dst.
func (r *Response) Decode(dst any) error {
	if err := json.Unmarshal(r.body, dst); err != nil {
		return fmt.Errorf("decoding body (status %d): %w: %w",
			r.statusCode, ErrInvalidResponseBody, err)
	}
	return nil
}

type errorBody struct {
	Errors []string `json:"errors"`
}

// Err returns nil for 2xx responses and an *APIError otherwise.
func (r *Response) Err() error {
	if r.IsSuccess() {
		return nil
	}
	apiErr := &APIError{StatusCode: r.statusCode, Body: string(r.body)}
	var eb errorBody
	if json.Unmarshal(r.body, &eb) == nil {
		apiErr.Messages = eb.Errors
	}
	return apiErr
}
