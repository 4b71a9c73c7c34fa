package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[CreateEventMessage]    = (*CreateEventCommand)(nil)
	_ gocmd.Commander[RemoveEventMessage]    = (*RemoveEventCommand)(nil)
	_ gocmd.Commander[FlushAnalyticsMessage] = (*FlushAnalyticsCommand)(nil)
)
