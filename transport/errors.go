package transport

import (
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-social-sdk/core"
)

func transportError(
	message string,
	category goerrors.Category,
	code int,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportWrapError(
	source error,
	category goerrors.Category,
	message string,
	code int,
	metadata map[string]any,
) error {
	if source == nil {
		return transportError(message, category, code, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.SDKErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return core.SDKErrorUnauthorized
	case goerrors.CategoryNotFound:
		return core.SDKErrorNotFound
	case goerrors.CategoryRateLimit:
		return core.SDKErrorRateLimited
	case goerrors.CategoryExternal, goerrors.CategoryOperation:
		return core.SDKErrorTransportFailed
	default:
		return core.SDKErrorInternal
	}
}

func categoryForStatus(status int) goerrors.Category {
	switch {
	case status == 400:
		return goerrors.CategoryBadInput
	case status == 401:
		return goerrors.CategoryAuth
	case status == 403:
		return goerrors.CategoryAuthz
	case status == 404:
		return goerrors.CategoryNotFound
	case status == 409:
		return goerrors.CategoryConflict
	case status == 429:
		return goerrors.CategoryRateLimit
	case status >= 500:
		return goerrors.CategoryExternal
	default:
		return goerrors.CategoryOperation
	}
}
