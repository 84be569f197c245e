package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/shared/errors"
)

// conversationAccess resolves a conversation key for the caller and enforces
// who may read or post in it.
type conversationAccess struct {
	memberRepo       cabinet.MemberRepository
	conversationRepo conversation.Repository
}

// resolve returns the group for group keys and nil otherwise. requireActivePeer
// additionally checks that a direct peer is still an active member.
func (a *conversationAccess) resolve(ctx context.Context, cabinetID, userID, rawKey string, requireActivePeer bool) (message.ConversationKey, *conversation.Conversation, error) {
	key, err := message.ParseConversationKey(rawKey)
	if err != nil {
		return message.ConversationKey{}, nil, errors.NewValidationError("invalid conversation", err.Error())
	}

	switch key.Kind() {
	case message.KindDirect:
		if key.PeerID() == userID {
			return key, nil, errors.NewValidationError("cannot open a direct conversation with yourself")
		}
		if requireActivePeer {
			peer, err := a.memberRepo.FindActive(ctx, cabinetID, key.PeerID())
			if err != nil {
				return key, nil, fmt.Errorf("failed to load peer: %w", err)
			}
			if peer == nil {
				return key, nil, errors.NewNotFoundError("member not found")
			}
		}
		return key, nil, nil

	case message.KindGroup:
		group, err := a.conversationRepo.GetByID(ctx, cabinetID, key.ConversationID())
		if err != nil {
			return key, nil, fmt.Errorf("failed to load conversation: %w", err)
		}
		if group == nil {
			return key, nil, errors.NewNotFoundError("conversation not found")
		}
		if !group.HasMember(userID) {
			return key, nil, errors.NewForbiddenError("not a member of this conversation")
		}
		return key, group, nil

	default:
		return key, nil, nil
	}
}
