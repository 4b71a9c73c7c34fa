package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

// sessionRecord keeps one row per namespace. The session token and the
// current-user payload rotate in place; the installation id is written once
// and survives a session clear.
type sessionRecord struct {
	bun.BaseModel `bun:"table:sdk_sessions,alias:ss"`

	ID             string    `bun:"id,pk"`
	Namespace      string    `bun:"namespace,notnull,unique"`
	Token          string    `bun:"token"`
	InstallationID string    `bun:"installation_id,notnull"`
	UserPayload    []byte    `bun:"user_payload"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
