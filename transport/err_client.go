package transport

import (
	"context"

	"github.com/goliatone/go-social-sdk/core"
)

// errClient satisfies the endpoint contract for a factory whose configuration
// could not produce a working client. Every call returns the construction
// error.
type errClient struct {
	err error
}

func (c errClient) Login(context.Context, core.LoginRequest) (*core.User, error) {
	return nil, c.err
}

func (c errClient) Logout(context.Context) error {
	return c.err
}

func (c errClient) CreateUser(context.Context, *core.User) (*core.User, error) {
	return nil, c.err
}

func (c errClient) UpdateCurrentUser(context.Context, *core.User) (*core.User, error) {
	return nil, c.err
}

func (c errClient) RefreshCurrentUser(context.Context) (*core.User, error) {
	return nil, c.err
}

func (c errClient) DeleteCurrentUser(context.Context) error {
	return c.err
}

func (c errClient) RetrieveUser(context.Context, string) (*core.User, error) {
	return nil, c.err
}

func (c errClient) RetrieveFollowings(context.Context) (*core.UsersFeed, error) {
	return nil, c.err
}

func (c errClient) RetrieveFollowers(context.Context) (*core.UsersFeed, error) {
	return nil, c.err
}

func (c errClient) RetrieveFriends(context.Context) (*core.UsersFeed, error) {
	return nil, c.err
}

func (c errClient) CreateConnection(context.Context, *core.Connection) (*core.Connection, error) {
	return nil, c.err
}

func (c errClient) RetrievePendingConnections(context.Context) (*core.ConnectionsFeed, error) {
	return nil, c.err
}

func (c errClient) CreateEvent(context.Context, *core.Event) (*core.Event, error) {
	return nil, c.err
}

func (c errClient) RemoveEvent(context.Context, string) error {
	return c.err
}

func (c errClient) SendAnalytics(context.Context) error {
	return c.err
}

var _ core.Service = errClient{}
