package auth

import (
	"errors"

	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// Client-facing messages. Decode failures and unknown subjects share one message so
// responses do not reveal which check failed.
const (
	MsgCouldNotValidate = "could not validate credentials"
	MsgInvalidScope     = "invalid scope for token"
	MsgNotAuthenticated = "not authenticated"
	MsgNotPermitted     = "operation not permitted"
)

// Failure classifications. They are wrapped by the 401/403 domain errors returned from
// this package and can be matched with errors.Is.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrWrongScope            = errors.New("token scope does not match")
	ErrSubjectMissing        = errors.New("token has no subject")
	ErrUnknownSubject        = errors.New("token subject does not match any user")
	ErrInactiveSubject       = errors.New("token subject is deactivated")
	ErrMissingBearer         = errors.New("bearer token missing")
	ErrForbidden             = errors.New("role not permitted")
)

// FailureReason returns a short label for metrics and logs.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenSignatureInvalid):
		return "invalid_signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, ErrWrongScope):
		return "wrong_scope"
	case errors.Is(err, ErrSubjectMissing):
		return "missing_subject"
	case errors.Is(err, ErrUnknownSubject):
		return "unknown_subject"
	case errors.Is(err, ErrInactiveSubject):
		return "inactive_subject"
	case errors.Is(err, ErrMissingBearer):
		return "missing_bearer"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "other"
	}
}

func unauthorized(cause error) error {
	if errors.Is(cause, ErrWrongScope) {
		return apperrors.NewUnauthorizedCause(MsgInvalidScope, cause)
	}
	return apperrors.NewUnauthorizedCause(MsgCouldNotValidate, cause)
}
