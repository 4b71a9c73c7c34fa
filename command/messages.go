package command

import (
	"strings"
)

const (
	TypeCreateEvent    = "social.command.event.create"
	TypeRemoveEvent    = "social.command.event.remove"
	TypeFlushAnalytics = "social.command.analytics.flush"
)

type CreateEventMessage struct {
	EventType string
	ObjectID  string
	Language  string
}

func (CreateEventMessage) Type() string { return TypeCreateEvent }

func (m CreateEventMessage) Validate() error {
	if strings.TrimSpace(m.EventType) == "" {
		return commandValidationError("type", "event type is required")
	}
	return nil
}

type RemoveEventMessage struct {
	EventID string
}

func (RemoveEventMessage) Type() string { return TypeRemoveEvent }

func (m RemoveEventMessage) Validate() error {
	if strings.TrimSpace(m.EventID) == "" {
		return commandValidationError("id", "event id is required")
	}
	return nil
}

type FlushAnalyticsMessage struct{}

func (FlushAnalyticsMessage) Type() string { return TypeFlushAnalytics }

func (FlushAnalyticsMessage) Validate() error { return nil }
