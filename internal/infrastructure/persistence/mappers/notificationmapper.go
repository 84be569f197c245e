package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	"cabinet/internal/infrastructure/persistence/models"
)

type NotificationMapper interface {
	ToEntity(model *models.CabinetNotificationModel) (*notification.Notification, error)
	ToModel(entity *notification.Notification) (*models.CabinetNotificationModel, error)
	ToEntities(models []*models.CabinetNotificationModel) ([]*notification.Notification, error)
	ToModels(entities []*notification.Notification) ([]*models.CabinetNotificationModel, error)
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (m *NotificationMapperImpl) ToEntity(model *models.CabinetNotificationModel) (*notification.Notification, error) {
	if model == nil {
		return nil, nil
	}

	notificationType, err := vo.NewNotificationType(model.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification type: %w", err)
	}

	var payload map[string]any
	if len(model.Payload) > 0 && string(model.Payload) != "null" {
		if err := json.Unmarshal(model.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode notification payload: %w", err)
		}
	}

	entity, err := notification.ReconstructNotification(
		model.ID,
		model.CabinetID,
		model.RecipientID,
		deref(model.ActorID),
		notificationType,
		model.Title,
		model.Message,
		deref(model.ReferenceID),
		model.IsRead,
		payload,
		model.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct notification entity: %w", err)
	}
	return entity, nil
}

func (m *NotificationMapperImpl) ToModel(entity *notification.Notification) (*models.CabinetNotificationModel, error) {
	if entity == nil {
		return nil, nil
	}

	var payload datatypes.JSON
	if entity.Payload() != nil {
		raw, err := json.Marshal(entity.Payload())
		if err != nil {
			return nil, fmt.Errorf("failed to encode notification payload: %w", err)
		}
		payload = datatypes.JSON(raw)
	}

	return &models.CabinetNotificationModel{
		ID:          entity.ID(),
		CabinetID:   entity.CabinetID(),
		RecipientID: entity.RecipientID(),
		ActorID:     ptrOrNil(entity.ActorID()),
		Title:       entity.Title(),
		Message:     entity.Message(),
		Type:        entity.NotificationType().String(),
		ReferenceID: ptrOrNil(entity.ReferenceID()),
		IsRead:      entity.IsRead(),
		Payload:     payload,
		CreatedAt:   entity.CreatedAt(),
	}, nil
}

func (m *NotificationMapperImpl) ToEntities(rows []*models.CabinetNotificationModel) ([]*notification.Notification, error) {
	return mapRows(rows, m.ToEntity, func(r *models.CabinetNotificationModel) string { return r.ID })
}

func (m *NotificationMapperImpl) ToModels(entities []*notification.Notification) ([]*models.CabinetNotificationModel, error) {
	out := make([]*models.CabinetNotificationModel, 0, len(entities))
	for _, entity := range entities {
		model, err := m.ToModel(entity)
		if err != nil {
			return nil, fmt.Errorf("failed to map notification %s: %w", entity.ID(), err)
		}
		if model != nil {
			out = append(out, model)
		}
	}
	return out, nil
}
