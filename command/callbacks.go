package command

import (
	goerrors "github.com/goliatone/go-errors"
)

// RequestErrorListener receives the typed error raised by an asynchronous
// operation. Delivery is best effort: a listener that panics or ignores the
// call does not affect the operation outcome or the other listeners.
type RequestErrorListener interface {
	OnRequestError(err *goerrors.Error)
}

// RequestCallback receives the result of an asynchronous operation that
// completed successfully. The result is the operation's primary output, or
// nil for operations without one.
type RequestCallback interface {
	OnRequestFinished(result any)
}

// NotifyRequestFinished broadcasts result to every handle that implements
// RequestCallback and reports how many callbacks were notified. Handles of
// other types are skipped, a nil or empty handle list is a no-op.
func NotifyRequestFinished(handles []any, result any) int {
	if len(handles) == 0 {
		return 0
	}
	notified := 0
	for _, handle := range handles {
		callback, ok := handle.(RequestCallback)
		if !ok || callback == nil {
			continue
		}
		callback.OnRequestFinished(result)
		notified++
	}
	return notified
}

// NotifyRequestError broadcasts err to every handle that implements
// RequestErrorListener and reports how many listeners were notified. Handles
// of other types are skipped, a nil or empty handle list is a no-op.
func NotifyRequestError(handles []any, err error) int {
	if err == nil || len(handles) == 0 {
		return 0
	}
	richErr := asRichError(err)
	notified := 0
	for _, handle := range handles {
		listener, ok := handle.(RequestErrorListener)
		if !ok || listener == nil {
			continue
		}
		listener.OnRequestError(richErr)
		notified++
	}
	return notified
}

func asRichError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, err.Error())
}
