package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeValidation             = "validation_failed"
	ErrCodeInvariantViolation     = "invariant_violation"
	ErrCodeIllegalStateTransition = "illegal_state_transition"
	ErrCodeQuotaExceeded          = "quota_exceeded"
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidRequest         = "invalid_request"
	ErrCodeNotFound               = "not_found"
	ErrCodeConflict               = "conflict"
	ErrCodeNotImplemented         = "not_implemented"
	ErrCodeInternal               = "internal_error"
)
