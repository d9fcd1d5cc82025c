package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// HeaderErrorCode is the gateway header carrying a machine-readable rejection reason.
	HeaderErrorCode = "X-Mashery-Error-Code"
	// OverQPSErrorCode is the HeaderErrorCode value sent when the key exceeded its QPS quota.
	OverQPSErrorCode = "ERR_403_DEVELOPER_OVER_QPS"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeOverQPS indicates a 403 carrying the over-QPS gateway header.
	ErrCodeOverQPS ErrorCode = iota
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeClient indicates any other 4xx.
	ErrCodeClient
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOverQPS:
		return "over_qps"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified non-2xx HTTP response.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	Retryable  bool
	// Body is the response body, may be nil.
	Body []byte
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// NewOverQPSError creates the error that drives the single over-QPS retry.
func NewOverQPSError(body []byte) *Error {
	return &Error{
		StatusCode: http.StatusForbidden,
		Code:       ErrCodeOverQPS,
		Message:    OverQPSErrorCode,
		Retryable:  true,
		Body:       body,
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes. Over-QPS detection needs the headers,
// see isOverQPSResponse.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	e := &Error{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
		Body:       body,
	}
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e.Code = ErrCodeAuth
	case statusCode == http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		e.Code = ErrCodeRateLimit
		e.Retryable = true
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeClient
	default:
		e.Code = ErrCodeServer
		e.Retryable = statusCode >= 500
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP %d", statusCode)
	}
	return e
}

// isOverQPSResponse reports whether a response is the gateway's QPS
// rejection. Every value of the header is checked.
func isOverQPSResponse(statusCode int, h http.Header) bool {
	if statusCode != http.StatusForbidden {
		return false
	}
	for _, v := range h.Values(HeaderErrorCode) {
		if v == OverQPSErrorCode {
			return true
		}
	}
	return false
}

// IsOverQPS checks if an error is an over-QPS rejection.
func IsOverQPS(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeOverQPS
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAuth
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFound
}

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeServer
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
