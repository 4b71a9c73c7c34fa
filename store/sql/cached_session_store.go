package sqlstore

import (
	"context"
	"fmt"
	"net/url"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-social-sdk/core"
)

const sessionCacheKeyPrefix = "go-social-sdk::session::v1"

// CachedSessionStore layers a read cache over a durable session store.
// Mutations write through to the base store and invalidate the cached
// session and user entries.
type CachedSessionStore struct {
	base  *SessionStore
	cache repositorycache.CacheService
}

func NewCachedSessionStore(base *SessionStore, cacheService repositorycache.CacheService) (*CachedSessionStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base session store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: session cache service is required")
	}
	return &CachedSessionStore{base: base, cache: cacheService}, nil
}

// SessionCacheKey returns the deterministic cache key for session reads:
// go-social-sdk::session::v1::<namespace>::<kind> with the namespace
// URL-path escaped.
func SessionCacheKey(namespace string, kind string) string {
	return sessionCacheKeyPrefix + "::" + url.PathEscape(namespace) + "::" + kind
}

func (s *CachedSessionStore) sessionKey() string {
	return SessionCacheKey(s.base.Namespace(), "session")
}

func (s *CachedSessionStore) userKey() string {
	return SessionCacheKey(s.base.Namespace(), "user")
}

func (s *CachedSessionStore) Get(ctx context.Context) (core.Session, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Session{}, fmt.Errorf("sqlstore: cached session store is not configured")
	}
	return repositorycache.GetOrFetch(ctx, s.cache, s.sessionKey(), func(ctx context.Context) (core.Session, error) {
		return s.base.Get(ctx)
	})
}

func (s *CachedSessionStore) Put(ctx context.Context, session core.Session) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached session store is not configured")
	}
	if err := s.base.Put(ctx, session); err != nil {
		return err
	}
	return s.cache.Delete(ctx, s.sessionKey())
}

func (s *CachedSessionStore) Clear(ctx context.Context) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached session store is not configured")
	}
	if err := s.base.Clear(ctx); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, s.sessionKey()); err != nil {
		return err
	}
	return s.cache.Delete(ctx, s.userKey())
}

func (s *CachedSessionStore) InstallationID(ctx context.Context) (string, error) {
	if s == nil || s.base == nil {
		return "", fmt.Errorf("sqlstore: cached session store is not configured")
	}
	// Installation ids are immutable once minted, caching buys nothing over
	// the single-row read.
	return s.base.InstallationID(ctx)
}

func (s *CachedSessionStore) CurrentUser(ctx context.Context) (*core.User, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return nil, fmt.Errorf("sqlstore: cached session store is not configured")
	}
	return repositorycache.GetOrFetch(ctx, s.cache, s.userKey(), func(ctx context.Context) (*core.User, error) {
		return s.base.CurrentUser(ctx)
	})
}

func (s *CachedSessionStore) PutCurrentUser(ctx context.Context, user *core.User) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached session store is not configured")
	}
	if err := s.base.PutCurrentUser(ctx, user); err != nil {
		return err
	}
	return s.cache.Delete(ctx, s.userKey())
}

var _ core.SessionStore = (*CachedSessionStore)(nil)
