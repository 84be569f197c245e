package mappers

import (
	"fmt"

	"cabinet/internal/domain/conversation"
	"cabinet/internal/infrastructure/persistence/models"
)

type ConversationMapper interface {
	ToEntity(model *models.CabinetConversationModel) (*conversation.Conversation, error)
	ToModel(entity *conversation.Conversation) *models.CabinetConversationModel
	ToEntities(models []*models.CabinetConversationModel) ([]*conversation.Conversation, error)
}

type ConversationMapperImpl struct{}

func NewConversationMapper() ConversationMapper {
	return &ConversationMapperImpl{}
}

func (m *ConversationMapperImpl) ToEntity(model *models.CabinetConversationModel) (*conversation.Conversation, error) {
	if model == nil {
		return nil, nil
	}

	memberIDs := make([]string, 0, len(model.Members))
	for _, member := range model.Members {
		memberIDs = append(memberIDs, member.UserID)
	}

	entity, err := conversation.ReconstructConversation(
		model.ID,
		model.CabinetID,
		model.Name,
		model.CreatedBy,
		memberIDs,
		model.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct conversation entity: %w", err)
	}
	return entity, nil
}

// ToModel includes the member rows so a single Create persists both tables.
func (m *ConversationMapperImpl) ToModel(entity *conversation.Conversation) *models.CabinetConversationModel {
	if entity == nil {
		return nil
	}

	memberIDs := entity.MemberIDs()
	members := make([]models.CabinetConversationMemberModel, 0, len(memberIDs))
	for _, userID := range memberIDs {
		members = append(members, models.CabinetConversationMemberModel{
			ConversationID: entity.ID(),
			UserID:         userID,
		})
	}

	return &models.CabinetConversationModel{
		ID:        entity.ID(),
		CabinetID: entity.CabinetID(),
		Name:      entity.Name(),
		CreatedBy: entity.CreatedBy(),
		Members:   members,
		CreatedAt: entity.CreatedAt(),
	}
}

func (m *ConversationMapperImpl) ToEntities(rows []*models.CabinetConversationModel) ([]*conversation.Conversation, error) {
	return mapRows(rows, m.ToEntity, func(r *models.CabinetConversationModel) string { return r.ID })
}
