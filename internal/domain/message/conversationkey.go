package message

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// GeneralKey identifies the cabinet-wide broadcast conversation.
	GeneralKey = "general"
	// GeneralDisplayName is the label of the broadcast conversation.
	GeneralDisplayName = "Salon général"

	directKeyPrefix = "direct-"
)

// ConversationKey identifies a conversation from one viewer's point of view:
// "general", "direct-<peer user id>" or a group conversation ID.
type ConversationKey struct {
	kind Kind
	id   string
}

func GeneralConversation() ConversationKey {
	return ConversationKey{kind: KindBroadcast}
}

func DirectConversation(peerID string) ConversationKey {
	return ConversationKey{kind: KindDirect, id: peerID}
}

func GroupConversation(conversationID string) ConversationKey {
	return ConversationKey{kind: KindGroup, id: conversationID}
}

// ParseConversationKey parses the string form produced by String. Group keys
// must be conversation UUIDs.
func ParseConversationKey(raw string) (ConversationKey, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return ConversationKey{}, fmt.Errorf("conversation key is empty")
	case raw == GeneralKey:
		return GeneralConversation(), nil
	case strings.HasPrefix(raw, directKeyPrefix):
		peer := strings.TrimPrefix(raw, directKeyPrefix)
		if peer == "" {
			return ConversationKey{}, fmt.Errorf("direct conversation key %q has no peer", raw)
		}
		return DirectConversation(peer), nil
	default:
		if _, err := uuid.Parse(raw); err != nil {
			return ConversationKey{}, fmt.Errorf("conversation key %q is not a group id", raw)
		}
		return GroupConversation(raw), nil
	}
}

func (k ConversationKey) String() string {
	switch k.kind {
	case KindBroadcast:
		return GeneralKey
	case KindDirect:
		return directKeyPrefix + k.id
	case KindGroup:
		return k.id
	default:
		return ""
	}
}

func (k ConversationKey) Kind() Kind {
	return k.kind
}

// PeerID is the other participant of a direct conversation.
func (k ConversationKey) PeerID() string {
	if k.kind != KindDirect {
		return ""
	}
	return k.id
}

// ConversationID is the stored group conversation ID.
func (k ConversationKey) ConversationID() string {
	if k.kind != KindGroup {
		return ""
	}
	return k.id
}

func (k ConversationKey) IsZero() bool {
	return k.kind == 0
}

// Target returns where a message sent into this conversation is addressed.
func (k ConversationKey) Target() Target {
	return Target{kind: k.kind, id: k.id}
}

// Includes applies the conversation identity rule: broadcast holds messages with
// no recipient and no conversation, direct holds messages exchanged between the
// viewer and the peer in either direction, group holds messages of that conversation.
func (k ConversationKey) Includes(senderID string, target Target, viewerID string) bool {
	if target.kind != k.kind {
		return false
	}
	switch k.kind {
	case KindBroadcast:
		return true
	case KindDirect:
		return (senderID == viewerID && target.id == k.id) ||
			(senderID == k.id && target.id == viewerID)
	case KindGroup:
		return target.id == k.id
	default:
		return false
	}
}

// KeyFor returns the conversation a message belongs to for the viewer. The
// second result is false for direct messages the viewer is not part of.
func KeyFor(senderID string, target Target, viewerID string) (ConversationKey, bool) {
	switch target.kind {
	case KindBroadcast:
		return GeneralConversation(), true
	case KindGroup:
		return GroupConversation(target.id), true
	case KindDirect:
		switch viewerID {
		case senderID:
			return DirectConversation(target.id), true
		case target.id:
			return DirectConversation(senderID), true
		}
	}
	return ConversationKey{}, false
}
