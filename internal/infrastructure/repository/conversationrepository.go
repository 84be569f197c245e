package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cabinet/internal/domain/conversation"
	"cabinet/internal/infrastructure/persistence/mappers"
	"cabinet/internal/infrastructure/persistence/models"
	shareddb "cabinet/internal/shared/db"
	"cabinet/internal/shared/errors"
	"cabinet/internal/shared/logger"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ConversationMapper
	logger logger.Interface
}

func NewConversationRepository(db *gorm.DB, log logger.Interface) conversation.Repository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mappers.NewConversationMapper(),
		logger: log,
	}
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, c *conversation.Conversation) error {
	model := r.mapper.ToModel(c)
	if err := shareddb.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create conversation", "cabinet_id", c.CabinetID(), "error", err)
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

func (r *ConversationRepositoryImpl) GetByID(ctx context.Context, cabinetID, id string) (*conversation.Conversation, error) {
	var rows []*models.CabinetConversationModel
	err := shareddb.GetTxFromContext(ctx, r.db).
		Scopes(shareddb.InCabinet(cabinetID)).
		Where("id = ?", id).
		Preload("Members").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return r.mapper.ToEntity(rows[0])
}

func (r *ConversationRepositoryImpl) ListByMember(ctx context.Context, cabinetID, userID string) ([]*conversation.Conversation, error) {
	tx := shareddb.GetTxFromContext(ctx, r.db)

	memberOf := tx.Model(&models.CabinetConversationMemberModel{}).
		Select("conversation_id").
		Where("user_id = ?", userID)

	var rows []*models.CabinetConversationModel
	err := tx.Scopes(shareddb.InCabinet(cabinetID)).
		Where("id IN (?)", memberOf).
		Preload("Members").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list conversations", "cabinet_id", cabinetID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

func (r *ConversationRepositoryImpl) Delete(ctx context.Context, cabinetID, id string) error {
	tx := shareddb.GetTxFromContext(ctx, r.db)

	if err := tx.Where("conversation_id = ?", id).Delete(&models.CabinetConversationMemberModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete conversation members: %w", err)
	}

	result := tx.Scopes(shareddb.InCabinet(cabinetID)).Where("id = ?", id).Delete(&models.CabinetConversationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete conversation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("conversation not found")
	}
	return nil
}
