package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidPath indicates a request path that escapes the document root.
	ErrKeyInvalidPath     = "error.invalid_path"
	ErrKeyEmptyBody       = "error.empty_body"
	ErrKeyPayloadTooLarge = "error.payload_too_large"
	ErrKeyInternalError   = "error.internal_error"
	ErrKeyNotFound        = "error.not_found"
	// ErrKeyNotImplemented is used for every method other than GET, HEAD and POST.
	ErrKeyNotImplemented    = "error.not_implemented"
	ErrKeySaveFailed        = "error.save_failed"
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	ErrKeyTimeout           = "error.timeout"
	// ErrKeyLogsUnavailable is returned while the access-log store is unreachable.
	ErrKeyLogsUnavailable = "error.logs_unavailable"
)

// Success message translation keys.
const (
	SuccessKeyFileSaved = "success.file_saved"
)
