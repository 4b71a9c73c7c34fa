package sqlstore

import (
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-social-sdk/core"
)

type RepositoryFactory struct {
	db        *bun.DB
	namespace string

	sessionStore *SessionStore
}

func NewRepositoryFactory(namespace string) *RepositoryFactory {
	return &RepositoryFactory{namespace: namespace}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client, namespace string) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(namespace)
	if err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB, namespace string) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(namespace)
	if err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) error {
	if f == nil {
		return fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return err
		}
		f.db = db
	}
	if f.sessionStore != nil {
		return nil
	}
	store, err := NewSessionStore(f.db, f.namespace)
	if err != nil {
		return err
	}
	f.sessionStore = store
	return nil
}

func (f *RepositoryFactory) SessionStore() core.SessionStore {
	if f == nil {
		return nil
	}
	return f.sessionStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
