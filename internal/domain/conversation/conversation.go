// Package conversation models named group conversations inside a cabinet.
package conversation

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"cabinet/internal/shared/utils/setutil"
)

const maxNameLength = 100

// Conversation is a group conversation. Its member list always contains the creator.
type Conversation struct {
	id        string
	cabinetID string
	name      string
	createdBy string
	memberIDs *setutil.StringSet
	createdAt time.Time
	mu        sync.RWMutex
}

// NewConversation creates a group conversation. The creator is added to the
// members and at least one other member is required.
func NewConversation(cabinetID, name, creatorID string, memberIDs []string) (*Conversation, error) {
	if cabinetID == "" {
		return nil, fmt.Errorf("cabinet ID is required")
	}
	if creatorID == "" {
		return nil, fmt.Errorf("creator ID is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("conversation name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, fmt.Errorf("conversation name exceeds maximum length of %d characters", maxNameLength)
	}

	members := setutil.NewStringSet(memberIDs...)
	members.Remove(creatorID)
	if members.Len() == 0 {
		return nil, fmt.Errorf("a group conversation needs at least one other member")
	}
	members.Add(creatorID)

	return &Conversation{
		id:        uuid.NewString(),
		cabinetID: cabinetID,
		name:      name,
		createdBy: creatorID,
		memberIDs: members,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructConversation rebuilds a stored conversation.
func ReconstructConversation(id, cabinetID, name, createdBy string, memberIDs []string, createdAt time.Time) (*Conversation, error) {
	if id == "" {
		return nil, fmt.Errorf("conversation ID is required")
	}
	return &Conversation{
		id:        id,
		cabinetID: cabinetID,
		name:      name,
		createdBy: createdBy,
		memberIDs: setutil.NewStringSet(memberIDs...),
		createdAt: createdAt,
	}, nil
}

func (c *Conversation) ID() string           { return c.id }
func (c *Conversation) CabinetID() string    { return c.cabinetID }
func (c *Conversation) Name() string         { return c.name }
func (c *Conversation) CreatedBy() string    { return c.createdBy }
func (c *Conversation) CreatedAt() time.Time { return c.createdAt }

// MemberIDs returns the members in a stable order.
func (c *Conversation) MemberIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memberIDs.Sorted()
}

func (c *Conversation) HasMember(userID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memberIDs.Contains(userID)
}

func (c *Conversation) IsCreator(userID string) bool {
	return c.createdBy == userID
}
