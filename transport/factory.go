package transport

import (
	"sync"

	"github.com/goliatone/go-social-sdk/core"
)

// Factory hands out the current Client and builds a replacement whenever the
// session changes. Construction failures surface through the errClient so the
// core.ClientFactory contract stays error-free; the bad configuration is
// reported on the first call instead.
type Factory struct {
	mu      sync.RWMutex
	config  ClientConfig
	session core.Session
	current core.Service
}

func NewFactory(cfg ClientConfig) *Factory {
	factory := &Factory{config: cfg}
	factory.current = factory.build(core.Session{})
	return factory
}

func (f *Factory) build(session core.Session) core.Service {
	client, err := NewClient(f.config, session)
	if err != nil {
		return errClient{err: err}
	}
	return client
}

func (f *Factory) CurrentClient() core.Service {
	if f == nil {
		return errClient{err: transportError(
			"transport: client factory is not configured",
			categoryForStatus(500),
			500,
			nil,
		)}
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

func (f *Factory) CurrentSession() core.Session {
	if f == nil {
		return core.Session{}
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.session
}

// OnSessionChanged swaps in a client bound to the new session. Clients handed
// out before the swap keep their original binding.
func (f *Factory) OnSessionChanged(session core.Session) core.Service {
	if f == nil {
		return errClient{err: transportError(
			"transport: client factory is not configured",
			categoryForStatus(500),
			500,
			nil,
		)}
	}
	next := f.build(session)
	f.mu.Lock()
	f.session = session
	f.current = next
	f.mu.Unlock()
	return next
}

var _ core.ClientFactory = (*Factory)(nil)
