package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	SDKErrorBadInput         = "SDK_BAD_INPUT"
	SDKErrorNotAuthenticated = "SDK_NOT_AUTHENTICATED"
	SDKErrorUnauthorized     = "SDK_UNAUTHORIZED"
	SDKErrorNotFound         = "SDK_NOT_FOUND"
	SDKErrorRateLimited      = "SDK_RATE_LIMITED"
	SDKErrorTransportFailed  = "SDK_TRANSPORT_FAILED"
	SDKErrorInternal         = "SDK_INTERNAL_ERROR"
)

var (
	ErrNoCurrentSession = errors.New("core: no current session")
	ErrNoCurrentUser    = errors.New("core: no current user")
)

func validationError(field string, message string) error {
	return ensureSDKErrorEnvelope(
		goerrors.NewValidation("core: validation failed", goerrors.FieldError{
			Field:   field,
			Message: message,
		}).
			WithCode(http.StatusBadRequest).
			WithTextCode(SDKErrorBadInput).
			WithSeverity(goerrors.SeverityError),
	)
}

func notAuthenticatedError(message string) error {
	return ensureSDKErrorEnvelope(
		goerrors.Wrap(ErrNoCurrentUser, goerrors.CategoryAuth, message).
			WithCode(http.StatusUnauthorized).
			WithTextCode(SDKErrorNotAuthenticated),
	)
}

func internalError(message string) error {
	return ensureSDKErrorEnvelope(
		goerrors.New(message, goerrors.CategoryInternal).
			WithTextCode(SDKErrorInternal),
	)
}

func ensureSDKErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = sdkHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultSDKTextCode(err.Category)
	}
	return err
}

func defaultSDKTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return SDKErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return SDKErrorUnauthorized
	case goerrors.CategoryNotFound:
		return SDKErrorNotFound
	case goerrors.CategoryRateLimit:
		return SDKErrorRateLimited
	case goerrors.CategoryExternal, goerrors.CategoryOperation:
		return SDKErrorTransportFailed
	default:
		return SDKErrorInternal
	}
}

func sdkHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// IsValidationError reports whether err carries the bad-input error kind
// raised before any transport call is attempted.
func IsValidationError(err error) bool {
	return hasTextCode(err, SDKErrorBadInput)
}

// IsNotAuthenticatedError reports whether err carries the missing-session
// precondition error kind.
func IsNotAuthenticatedError(err error) bool {
	return hasTextCode(err, SDKErrorNotAuthenticated)
}

func hasTextCode(err error, textCode string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}
