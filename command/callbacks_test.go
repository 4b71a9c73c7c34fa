package command

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type plainHandle struct{}

func TestNotifyRequestErrorSkipsNonListeners(t *testing.T) {
	listener := &capturingListener{}
	handles := []any{plainHandle{}, nil, listener, "not a listener"}

	notified := NotifyRequestError(handles, errors.New("boom"))
	if notified != 1 {
		t.Fatalf("expected exactly one notified listener, got %d", notified)
	}
	if len(listener.errors) != 1 {
		t.Fatalf("listener not invoked")
	}
}

func TestNotifyRequestErrorNoHandlesIsNoop(t *testing.T) {
	if notified := NotifyRequestError(nil, errors.New("boom")); notified != 0 {
		t.Fatalf("expected zero notifications, got %d", notified)
	}
	if notified := NotifyRequestError([]any{}, errors.New("boom")); notified != 0 {
		t.Fatalf("expected zero notifications, got %d", notified)
	}
}

func TestNotifyRequestErrorNilErrorIsNoop(t *testing.T) {
	listener := &capturingListener{}
	if notified := NotifyRequestError([]any{listener}, nil); notified != 0 {
		t.Fatalf("expected zero notifications for nil error, got %d", notified)
	}
	if len(listener.errors) != 0 {
		t.Fatalf("listener must not be invoked for nil error")
	}
}

func TestNotifyRequestErrorWrapsPlainErrors(t *testing.T) {
	listener := &capturingListener{}
	source := errors.New("plain failure")

	NotifyRequestError([]any{listener}, source)
	if len(listener.errors) != 1 {
		t.Fatalf("listener not invoked")
	}
	received := listener.errors[0]
	if received == nil {
		t.Fatalf("expected a typed error")
	}
	if !errors.Is(received, source) {
		t.Fatalf("typed error must wrap the source")
	}
}

func TestNotifyRequestErrorPreservesRichErrors(t *testing.T) {
	listener := &capturingListener{}
	rich := goerrors.New("typed failure", goerrors.CategoryAuth).WithTextCode("SDK_NOT_AUTHENTICATED")

	NotifyRequestError([]any{listener}, rich)
	if len(listener.errors) != 1 {
		t.Fatalf("listener not invoked")
	}
	if listener.errors[0].TextCode != "SDK_NOT_AUTHENTICATED" {
		t.Fatalf("rich error not preserved: %+v", listener.errors[0])
	}
}

func TestNotifyRequestFinishedSkipsNonCallbacks(t *testing.T) {
	callback := &capturingCallback{}
	handles := []any{plainHandle{}, nil, callback, "not a callback"}

	notified := NotifyRequestFinished(handles, "result")
	if notified != 1 {
		t.Fatalf("expected exactly one notified callback, got %d", notified)
	}
	if len(callback.results) != 1 || callback.results[0] != "result" {
		t.Fatalf("callback not invoked with the result: %#v", callback.results)
	}
}

func TestNotifyRequestFinishedNoHandlesIsNoop(t *testing.T) {
	if notified := NotifyRequestFinished(nil, "result"); notified != 0 {
		t.Fatalf("expected zero notifications, got %d", notified)
	}
}

func TestNotifyRequestFinishedCarriesNilResult(t *testing.T) {
	callback := &capturingCallback{}
	if notified := NotifyRequestFinished([]any{callback}, nil); notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}
	if len(callback.results) != 1 || callback.results[0] != nil {
		t.Fatalf("expected a nil result delivery: %#v", callback.results)
	}
}

func TestNotifyRequestErrorBroadcastsToAllListeners(t *testing.T) {
	first := &capturingListener{}
	second := &capturingListener{}

	notified := NotifyRequestError([]any{first, second}, errors.New("boom"))
	if notified != 2 {
		t.Fatalf("expected both listeners notified, got %d", notified)
	}
	if len(first.errors) != 1 || len(second.errors) != 1 {
		t.Fatalf("broadcast incomplete: %d, %d", len(first.errors), len(second.errors))
	}
}
