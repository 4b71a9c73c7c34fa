package command

import (
	"context"

	"github.com/goliatone/go-social-sdk/core"
)

// EventService is the slice of the coordinator surface the asynchronous
// commands need.
type EventService interface {
	CreateEvent(ctx context.Context, event *core.Event) (*core.Event, error)
	RemoveEvent(ctx context.Context, id string) error
	SendAnalytics(ctx context.Context) error
}

type CreateEventCommand struct {
	service EventService
	handles []any
}

func NewCreateEventCommand(service EventService, handles ...any) *CreateEventCommand {
	return &CreateEventCommand{service: service, handles: handles}
}

// Execute validates the message before touching the transport: an invalid
// message is broadcast to the error listeners and returned without any
// endpoint call.
func (c *CreateEventCommand) Execute(ctx context.Context, msg CreateEventMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: event service is required")
	}
	if err := msg.Validate(); err != nil {
		NotifyRequestError(c.handles, err)
		return err
	}
	event := &core.Event{
		Type:     msg.EventType,
		Language: msg.Language,
	}
	if msg.ObjectID != "" {
		event.Object = &core.EventObject{ID: msg.ObjectID}
	}
	created, err := c.service.CreateEvent(ctx, event)
	if err != nil {
		NotifyRequestError(c.handles, err)
		return err
	}
	NotifyRequestFinished(c.handles, created)
	return nil
}

type RemoveEventCommand struct {
	service EventService
	handles []any
}

func NewRemoveEventCommand(service EventService, handles ...any) *RemoveEventCommand {
	return &RemoveEventCommand{service: service, handles: handles}
}

func (c *RemoveEventCommand) Execute(ctx context.Context, msg RemoveEventMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: event service is required")
	}
	if err := msg.Validate(); err != nil {
		NotifyRequestError(c.handles, err)
		return err
	}
	if err := c.service.RemoveEvent(ctx, msg.EventID); err != nil {
		NotifyRequestError(c.handles, err)
		return err
	}
	NotifyRequestFinished(c.handles, nil)
	return nil
}

type FlushAnalyticsCommand struct {
	service EventService
	handles []any
}

func NewFlushAnalyticsCommand(service EventService, handles ...any) *FlushAnalyticsCommand {
	return &FlushAnalyticsCommand{service: service, handles: handles}
}

func (c *FlushAnalyticsCommand) Execute(ctx context.Context, msg FlushAnalyticsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: event service is required")
	}
	if err := c.service.SendAnalytics(ctx); err != nil {
		NotifyRequestError(c.handles, err)
		return err
	}
	NotifyRequestFinished(c.handles, nil)
	return nil
}
