package core

// NormalizeConnectionsFeed reshapes a raw pending-connections feed into a
// ConnectionList with resolved participant references. A nil feed and a feed
// with all three sequences absent normalize identically to empty
// collections. Resolution is best effort: a from/to ID with no match in the
// feed's user set leaves the reference unset, which is data rather than an
// error. Input order is preserved; duplicate user IDs resolve last-write-wins.
func NormalizeConnectionsFeed(feed *ConnectionsFeed) ConnectionList {
	if feed == nil {
		return ConnectionList{
			Incoming: []*Connection{},
			Outgoing: []*Connection{},
		}
	}

	lookup := make(map[string]*User, len(feed.Users))
	for _, user := range feed.Users {
		if user == nil {
			continue
		}
		lookup[user.ID] = user
	}

	incoming := make([]*Connection, 0, len(feed.Incoming))
	for _, connection := range feed.Incoming {
		if connection == nil {
			continue
		}
		if user, ok := lookup[connection.UserFromID]; ok {
			connection.UserFrom = user
		}
		incoming = append(incoming, connection)
	}

	outgoing := make([]*Connection, 0, len(feed.Outgoing))
	for _, connection := range feed.Outgoing {
		if connection == nil {
			continue
		}
		if user, ok := lookup[connection.UserToID]; ok {
			connection.UserTo = user
		}
		outgoing = append(outgoing, connection)
	}

	return ConnectionList{Incoming: incoming, Outgoing: outgoing}
}

// ExtractUsers applies the list-extraction rule for followers, followings,
// and friends feeds: an absent feed or an absent user list yields an empty
// sequence, never nil; otherwise the sequence is returned verbatim.
func ExtractUsers(feed *UsersFeed) []*User {
	if feed == nil || feed.Users == nil {
		return []*User{}
	}
	return feed.Users
}
