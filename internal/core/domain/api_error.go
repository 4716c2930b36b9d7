package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed request. The set is closed.
type ErrorKind int

// Error kinds, ordered from transport to payload.
const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindHTTPStatus
	KindNotFound
	KindValidation
	KindDecode
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError is the normalized error for every request made through the HTTP client.
// NotFound and Validation are refinements of HTTPStatus and match ErrHTTPStatus too.
type APIError struct {
	Kind       ErrorKind
	Method     string
	Path       string
	StatusCode int
	Message    string
	Fields     map[string]string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.sentinel().Error())
	if e.Method != "" {
		fmt.Fprintf(&b, " (%s %s", e.Method, e.Path)
		if e.StatusCode != 0 {
			fmt.Fprintf(&b, " -> %d", e.StatusCode)
		}
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying transport or decode error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrHTTPStatus:
		return e.Kind == KindHTTPStatus || e.Kind == KindNotFound || e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrDecode:
		return e.Kind == KindDecode
	default:
		return false
	}
}

// Retryable reports whether repeating the request could succeed.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindNetwork:
		return true
	case KindHTTPStatus:
		return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
	default:
		return false
	}
}

func (e *APIError) sentinel() error {
	switch e.Kind {
	case KindNetwork:
		return ErrNetwork
	case KindHTTPStatus:
		return ErrHTTPStatus
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindDecode:
		return ErrDecode
	default:
		return errors.New("request failed")
	}
}

// KindOf returns the kind of the first *APIError in err's chain.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsRetryable reports whether err carries a retryable *APIError.
func IsRetryable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Retryable()
}
