package core

import (
	"strings"
	"time"
)

type ConnectionState string

const (
	ConnectionStatePending   ConnectionState = "pending"
	ConnectionStateConfirmed ConnectionState = "confirmed"
	ConnectionStateRejected  ConnectionState = "rejected"
)

type ConnectionType string

const (
	ConnectionTypeFollow ConnectionType = "follow"
	ConnectionTypeFriend ConnectionType = "friend"
)

// Session is the opaque credential issued by the backend on login, plus the
// installation identifier minted on first use. It is replaced wholesale on
// refresh and cleared on logout; the SDK never mutates one in place.
type Session struct {
	Token          string `json:"token"`
	InstallationID string `json:"installation_id"`
}

func (s Session) IsZero() bool {
	return strings.TrimSpace(s.Token) == "" && strings.TrimSpace(s.InstallationID) == ""
}

func (s Session) Equal(other Session) bool {
	return s.Token == other.Token && s.InstallationID == other.InstallationID
}

// User is the identity record exchanged with the backend. SessionToken is
// only populated on the wire for the authenticated user after login, update,
// or refresh.
type User struct {
	ID           string    `json:"id,omitempty"`
	Username     string    `json:"user_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Password     string    `json:"password,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	About        string    `json:"about,omitempty"`
	SessionToken string    `json:"session_token,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// Connection is a directed edge between two user identities. UserFrom and
// UserTo are not wire fields on their own: the pending-connections feed
// embeds participants by ID only, and normalization attaches the resolved
// records afterwards.
type Connection struct {
	UserFromID string          `json:"user_from_id,omitempty"`
	UserToID   string          `json:"user_to_id,omitempty"`
	Type       ConnectionType  `json:"type,omitempty"`
	State      ConnectionState `json:"state,omitempty"`
	UserFrom   *User           `json:"user_from,omitempty"`
	UserTo     *User           `json:"user_to,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitzero"`
}

// ConnectionsFeed is the raw wire shape of the pending-connections endpoint.
// Any of the three sequences may arrive as wire null.
type ConnectionsFeed struct {
	Incoming []*Connection `json:"incoming"`
	Outgoing []*Connection `json:"outgoing"`
	Users    []*User       `json:"users"`
}

// ConnectionList is the normalized client-facing result. Both sequences are
// guaranteed non-nil.
type ConnectionList struct {
	Incoming []*Connection
	Outgoing []*Connection
}

// UsersFeed is the raw wire shape of the followers/followings/friends
// endpoints. The list may arrive as wire null.
type UsersFeed struct {
	Users []*User `json:"users"`
}

// Event is an activity record created against the authenticated user.
type Event struct {
	ID        string       `json:"id,omitempty"`
	Type      string       `json:"type"`
	Language  string       `json:"language,omitempty"`
	Object    *EventObject `json:"object,omitempty"`
	CreatedAt time.Time    `json:"created_at,omitzero"`
}

type EventObject struct {
	ID string `json:"id,omitempty"`
}

// LoginRequest carries exactly one of Username or Email plus the password.
type LoginRequest struct {
	Username string
	Email    string
	Password string
}
