// Package message models cabinet chat messages and the conversation they belong to.
package message

import (
	"fmt"
)

// Kind enumerates the three conversation shapes a message can belong to.
type Kind int

const (
	KindBroadcast Kind = iota + 1
	KindDirect
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindBroadcast:
		return "broadcast"
	case KindDirect:
		return "direct"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Target is where a stored message was addressed. Exactly one variant is set:
// the whole cabinet, one recipient, or one group conversation.
type Target struct {
	kind Kind
	id   string
}

// Broadcast targets every active member of the cabinet.
func Broadcast() Target {
	return Target{kind: KindBroadcast}
}

// Direct targets a single recipient.
func Direct(recipientID string) Target {
	return Target{kind: KindDirect, id: recipientID}
}

// Group targets a group conversation.
func Group(conversationID string) Target {
	return Target{kind: KindGroup, id: conversationID}
}

func (t Target) Kind() Kind {
	return t.kind
}

// RecipientID is set only for direct targets.
func (t Target) RecipientID() string {
	if t.kind != KindDirect {
		return ""
	}
	return t.id
}

// ConversationID is set only for group targets.
func (t Target) ConversationID() string {
	if t.kind != KindGroup {
		return ""
	}
	return t.id
}

func (t Target) IsZero() bool {
	return t.kind == 0
}

func (t Target) validate() error {
	switch t.kind {
	case KindBroadcast:
		return nil
	case KindDirect, KindGroup:
		if t.id == "" {
			return fmt.Errorf("%s target requires an ID", t.kind)
		}
		return nil
	default:
		return fmt.Errorf("message target is not set")
	}
}

// TargetFromColumns maps the nullable recipient/conversation column pair to a Target.
// A row with both columns set is rejected.
func TargetFromColumns(recipientID, conversationID *string) (Target, error) {
	hasRecipient := recipientID != nil && *recipientID != ""
	hasConversation := conversationID != nil && *conversationID != ""

	switch {
	case hasRecipient && hasConversation:
		return Target{}, fmt.Errorf("message cannot have both recipient %q and conversation %q", *recipientID, *conversationID)
	case hasRecipient:
		return Direct(*recipientID), nil
	case hasConversation:
		return Group(*conversationID), nil
	default:
		return Broadcast(), nil
	}
}

// Columns is the inverse of TargetFromColumns.
func (t Target) Columns() (recipientID, conversationID *string) {
	switch t.kind {
	case KindDirect:
		id := t.id
		return &id, nil
	case KindGroup:
		id := t.id
		return nil, &id
	default:
		return nil, nil
	}
}
