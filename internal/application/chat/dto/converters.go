package dto

import (
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/shared/mapper"
)

func ToMemberResponse(m *cabinet.Member) *MemberResponse {
	resp := &MemberResponse{
		UserID:       m.UserID(),
		FirstName:    m.FirstName(),
		LastName:     m.LastName(),
		DisplayName:  m.DisplayName(),
		Email:        m.Email(),
		Role:         m.Role(),
		ContactLabel: m.ContactLabel(),
	}
	if p := m.Profile(); p != nil {
		resp.PhotoURL = p.PhotoURL
	}
	return resp
}

func ToMemberResponses(members []*cabinet.Member) []*MemberResponse {
	return mapper.MapSlice(members, ToMemberResponse)
}

func ToConversationResponse(c *conversation.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:        c.ID(),
		Name:      c.Name(),
		CreatedBy: c.CreatedBy(),
		MemberIDs: c.MemberIDs(),
		CreatedAt: c.CreatedAt(),
	}
}

func ToConversationResponses(conversations []*conversation.Conversation) []*ConversationResponse {
	return mapper.MapSlice(conversations, ToConversationResponse)
}

// ToMessageResponse renders m as seen by viewerID.
func ToMessageResponse(m *message.Message, viewerID string) *MessageResponse {
	recipientID, conversationID := m.Target().Columns()
	resp := &MessageResponse{
		ID:             m.ID(),
		CabinetID:      m.CabinetID(),
		SenderID:       m.SenderID(),
		RecipientID:    recipientID,
		ConversationID: conversationID,
		Message:        m.Body(),
		CreatedAt:      m.CreatedAt(),
	}
	if key, ok := m.KeyFor(viewerID); ok {
		resp.Conversation = key.String()
	}
	return resp
}

func ToMessageResponses(messages []*message.Message, viewerID string) []*MessageResponse {
	return mapper.MapSlice(messages, func(m *message.Message) *MessageResponse {
		return ToMessageResponse(m, viewerID)
	})
}

func ToSummaryResponse(key message.ConversationKey, s *message.Summary) *SummaryResponse {
	return &SummaryResponse{
		Conversation: key.String(),
		HasMessages:  s.HasMessages,
		LatestAt:     s.LatestAt,
		Unread:       s.Unread,
	}
}
