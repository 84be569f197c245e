package mappers

import (
	"fmt"

	"cabinet/internal/domain/message"
	"cabinet/internal/infrastructure/persistence/models"
)

type MessageMapper interface {
	ToEntity(model *models.CabinetMessageModel) (*message.Message, error)
	ToModel(entity *message.Message) *models.CabinetMessageModel
	ToEntities(models []*models.CabinetMessageModel) ([]*message.Message, error)
}

type MessageMapperImpl struct{}

func NewMessageMapper() MessageMapper {
	return &MessageMapperImpl{}
}

// ToEntity rejects rows whose recipient and conversation columns are both set.
func (m *MessageMapperImpl) ToEntity(model *models.CabinetMessageModel) (*message.Message, error) {
	if model == nil {
		return nil, nil
	}

	target, err := message.TargetFromColumns(model.RecipientID, model.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("invalid target on message %s: %w", model.ID, err)
	}

	entity, err := message.ReconstructMessage(
		model.ID,
		model.CabinetID,
		model.SenderID,
		target,
		model.Message,
		model.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct message entity: %w", err)
	}
	return entity, nil
}

func (m *MessageMapperImpl) ToModel(entity *message.Message) *models.CabinetMessageModel {
	if entity == nil {
		return nil
	}

	recipientID, conversationID := entity.Target().Columns()
	return &models.CabinetMessageModel{
		ID:             entity.ID(),
		CabinetID:      entity.CabinetID(),
		SenderID:       entity.SenderID(),
		RecipientID:    recipientID,
		ConversationID: conversationID,
		Message:        entity.Body(),
		CreatedAt:      entity.CreatedAt(),
	}
}

func (m *MessageMapperImpl) ToEntities(rows []*models.CabinetMessageModel) ([]*message.Message, error) {
	return mapRows(rows, m.ToEntity, func(r *models.CabinetMessageModel) string { return r.ID })
}
