package inbox

import (
	"time"

	"cabinet/internal/domain/message"
)

// Conversation is one row of the inbox list.
type Conversation struct {
	Key       string
	Kind      message.Kind
	Name      string
	PeerID    string
	MemberIDs []string
	LatestAt  time.Time
	Unread    int64
}

func (c *Conversation) clone() Conversation {
	out := *c
	if c.MemberIDs != nil {
		out.MemberIDs = append([]string(nil), c.MemberIDs...)
	}
	return out
}
