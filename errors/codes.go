package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Client-side configuration and request preparation errors
const (
	// ErrCodeConfiguration indicates missing credentials or an unsupported resource kind.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeEncoding indicates a request body could not be encoded.
	ErrCodeEncoding ErrorCode = "ENCODING_ERROR"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Transport errors
const (
	// ErrCodeConnectionFailed indicates no response could be obtained from the API.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeResourceRelease indicates the response could not be released after the exchange.
	ErrCodeResourceRelease ErrorCode = "RESOURCE_RELEASE_ERROR"
	// ErrCodeTimeout indicates the request or a pending retry was cancelled.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the API rejected the request for exceeding its QPS cap.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Upstream status errors
const (
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
	ErrCodeRateLimited:      true,
	ErrCodeExternalService:  true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
