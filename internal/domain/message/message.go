package message

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxBodyLength bounds a message body, counted in characters.
const MaxBodyLength = 5000

type Message struct {
	id        string
	cabinetID string
	senderID  string
	target    Target
	body      string
	createdAt time.Time
}

// NewMessage creates a message authored now.
func NewMessage(cabinetID, senderID string, target Target, body string) (*Message, error) {
	if cabinetID == "" {
		return nil, fmt.Errorf("cabinet ID is required")
	}
	if senderID == "" {
		return nil, fmt.Errorf("sender ID is required")
	}
	if err := target.validate(); err != nil {
		return nil, err
	}
	if target.kind == KindDirect && target.id == senderID {
		return nil, fmt.Errorf("cannot send a direct message to yourself")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return nil, fmt.Errorf("message body exceeds maximum length of %d characters", MaxBodyLength)
	}

	return &Message{
		id:        uuid.NewString(),
		cabinetID: cabinetID,
		senderID:  senderID,
		target:    target,
		body:      body,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructMessage rebuilds a stored message.
func ReconstructMessage(id, cabinetID, senderID string, target Target, body string, createdAt time.Time) (*Message, error) {
	if id == "" {
		return nil, fmt.Errorf("message ID is required")
	}
	if err := target.validate(); err != nil {
		return nil, err
	}
	return &Message{
		id:        id,
		cabinetID: cabinetID,
		senderID:  senderID,
		target:    target,
		body:      body,
		createdAt: createdAt,
	}, nil
}

func (m *Message) ID() string           { return m.id }
func (m *Message) CabinetID() string    { return m.cabinetID }
func (m *Message) SenderID() string     { return m.senderID }
func (m *Message) Target() Target       { return m.target }
func (m *Message) Body() string         { return m.body }
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// KeyFor returns the conversation this message belongs to for viewerID.
func (m *Message) KeyFor(viewerID string) (ConversationKey, bool) {
	return KeyFor(m.senderID, m.target, viewerID)
}

// VisibleTo reports whether viewerID may receive this message. Group
// membership is resolved by the caller.
func (m *Message) VisibleTo(viewerID string, isGroupMember bool) bool {
	switch m.target.kind {
	case KindBroadcast:
		return true
	case KindDirect:
		return viewerID == m.senderID || viewerID == m.target.id
	case KindGroup:
		return isGroupMember
	default:
		return false
	}
}
