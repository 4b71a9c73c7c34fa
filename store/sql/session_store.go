package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-social-sdk/core"
)

// SessionStore is the durable core.SessionStore backed by bun. One row per
// namespace holds the session token, the installation id, and the serialized
// current-user record.
type SessionStore struct {
	db        *bun.DB
	repo      repository.Repository[*sessionRecord]
	namespace string
}

func NewSessionStore(db *bun.DB, namespace string) (*SessionStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return nil, fmt.Errorf("sqlstore: session namespace is required")
	}
	repo := repository.NewRepository[*sessionRecord](db, sessionHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid session repository wiring: %w", err)
		}
	}
	return &SessionStore{db: db, repo: repo, namespace: namespace}, nil
}

func (s *SessionStore) Namespace() string {
	if s == nil {
		return ""
	}
	return s.namespace
}

func (s *SessionStore) Get(ctx context.Context) (core.Session, error) {
	if s == nil || s.repo == nil {
		return core.Session{}, fmt.Errorf("sqlstore: session store is not configured")
	}
	record, err := s.loadRecord(ctx)
	if err != nil {
		return core.Session{}, err
	}
	if record == nil || strings.TrimSpace(record.Token) == "" {
		return core.Session{}, nil
	}
	return core.Session{
		Token:          record.Token,
		InstallationID: record.InstallationID,
	}, nil
}

func (s *SessionStore) Put(ctx context.Context, session core.Session) error {
	if s == nil || s.db == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: session store is not configured")
	}
	if strings.TrimSpace(session.Token) == "" {
		return fmt.Errorf("sqlstore: session token is required")
	}

	now := time.Now().UTC()
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.loadRecordTx(ctx, tx)
		if err != nil {
			return err
		}
		if record == nil {
			installationID := strings.TrimSpace(session.InstallationID)
			if installationID == "" {
				installationID = uuid.NewString()
			}
			_, err = s.repo.CreateTx(ctx, tx, &sessionRecord{
				ID:             uuid.NewString(),
				Namespace:      s.namespace,
				Token:          session.Token,
				InstallationID: installationID,
				CreatedAt:      now,
				UpdatedAt:      now,
			})
			return err
		}

		update := tx.NewUpdate().
			Model((*sessionRecord)(nil)).
			Set("token = ?", session.Token).
			Set("updated_at = ?", now).
			Where("namespace = ?", s.namespace)
		if strings.TrimSpace(session.InstallationID) != "" {
			update = update.Set("installation_id = ?", strings.TrimSpace(session.InstallationID))
		}
		_, err = update.Exec(ctx)
		return err
	})
}

// Clear drops the token and the current-user payload. The installation id
// column is left untouched.
func (s *SessionStore) Clear(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: session store is not configured")
	}
	_, err := s.db.NewUpdate().
		Model((*sessionRecord)(nil)).
		Set("token = ?", "").
		Set("user_payload = NULL").
		Set("updated_at = ?", time.Now().UTC()).
		Where("namespace = ?", s.namespace).
		Exec(ctx)
	return err
}

func (s *SessionStore) InstallationID(ctx context.Context) (string, error) {
	if s == nil || s.db == nil || s.repo == nil {
		return "", fmt.Errorf("sqlstore: session store is not configured")
	}
	var installationID string
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.loadRecordTx(ctx, tx)
		if err != nil {
			return err
		}
		if record != nil && strings.TrimSpace(record.InstallationID) != "" {
			installationID = record.InstallationID
			return nil
		}

		installationID = uuid.NewString()
		now := time.Now().UTC()
		if record == nil {
			_, err = s.repo.CreateTx(ctx, tx, &sessionRecord{
				ID:             uuid.NewString(),
				Namespace:      s.namespace,
				InstallationID: installationID,
				CreatedAt:      now,
				UpdatedAt:      now,
			})
			return err
		}
		_, err = tx.NewUpdate().
			Model((*sessionRecord)(nil)).
			Set("installation_id = ?", installationID).
			Set("updated_at = ?", now).
			Where("namespace = ?", s.namespace).
			Exec(ctx)
		return err
	})
	if err != nil {
		return "", err
	}
	return installationID, nil
}

func (s *SessionStore) CurrentUser(ctx context.Context) (*core.User, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: session store is not configured")
	}
	record, err := s.loadRecord(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil || len(record.UserPayload) == 0 {
		return nil, nil
	}
	user := &core.User{}
	if err := json.Unmarshal(record.UserPayload, user); err != nil {
		return nil, fmt.Errorf("sqlstore: decode current user payload: %w", err)
	}
	return user, nil
}

func (s *SessionStore) PutCurrentUser(ctx context.Context, user *core.User) error {
	if s == nil || s.db == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: session store is not configured")
	}

	var payload []byte
	if user != nil {
		encoded, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("sqlstore: encode current user payload: %w", err)
		}
		payload = encoded
	}

	now := time.Now().UTC()
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.loadRecordTx(ctx, tx)
		if err != nil {
			return err
		}
		if record == nil {
			_, err = s.repo.CreateTx(ctx, tx, &sessionRecord{
				ID:             uuid.NewString(),
				Namespace:      s.namespace,
				InstallationID: uuid.NewString(),
				UserPayload:    payload,
				CreatedAt:      now,
				UpdatedAt:      now,
			})
			return err
		}
		_, err = tx.NewUpdate().
			Model((*sessionRecord)(nil)).
			Set("user_payload = ?", payload).
			Set("updated_at = ?", now).
			Where("namespace = ?", s.namespace).
			Exec(ctx)
		return err
	})
}

func (s *SessionStore) loadRecord(ctx context.Context) (*sessionRecord, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("namespace", "=", s.namespace),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (s *SessionStore) loadRecordTx(ctx context.Context, tx bun.Tx) (*sessionRecord, error) {
	record := &sessionRecord{}
	err := tx.NewSelect().
		Model(record).
		Where("namespace = ?", s.namespace).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

var _ core.SessionStore = (*SessionStore)(nil)
