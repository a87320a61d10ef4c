package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is
// empty, a default is derived from the HTTP status.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusInternalServerError:
		return ErrCodeInternal
	case http.StatusNotImplemented:
		return ErrCodeNotImplemented
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps the domain error kinds onto HTTP statuses and stable
// error codes. Unknown errors become 500.
func writeDomainErr(w http.ResponseWriter, err error) {
	var (
		validation *domerrors.ValidationError
		invariant  *domerrors.InvariantViolationError
		illegal    *domerrors.IllegalStateTransitionError
		quota      *domerrors.QuotaExceededError
		authz      *domerrors.AuthorizationError
		notFound   *domerrors.NotFoundError
		concurrent *domerrors.ConcurrentModificationError
	)
	switch {
	case errors.As(err, &validation):
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, validation.Error())
	case errors.As(err, &invariant):
		writeErr(w, http.StatusUnprocessableEntity, ErrCodeInvariantViolation, invariant.Error())
	case errors.As(err, &illegal):
		writeErr(w, http.StatusConflict, ErrCodeIllegalStateTransition, illegal.Error())
	case errors.As(err, &quota):
		writeErr(w, http.StatusForbidden, ErrCodeQuotaExceeded, quota.Error())
	case errors.As(err, &authz):
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, authz.Error())
	case errors.As(err, &notFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, notFound.Error())
	case errors.As(err, &concurrent):
		writeErr(w, http.StatusConflict, ErrCodeConflict, concurrent.Error())
	default:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
