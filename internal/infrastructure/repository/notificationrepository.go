package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	"cabinet/internal/infrastructure/persistence/mappers"
	"cabinet/internal/infrastructure/persistence/models"
	shareddb "cabinet/internal/shared/db"
	"cabinet/internal/shared/errors"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/mapper"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
	logger logger.Interface
}

func NewNotificationRepository(db *gorm.DB, log logger.Interface) notification.Repository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mappers.NewNotificationMapper(),
		logger: log,
	}
}

func (r *NotificationRepositoryImpl) recipientQuery(ctx context.Context, cabinetID, recipientID string) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db).
		Model(&models.CabinetNotificationModel{}).
		Scopes(shareddb.InCabinet(cabinetID), shareddb.ForRecipient(recipientID))
}

func (r *NotificationRepositoryImpl) BulkCreate(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	rows, err := r.mapper.ToModels(notifications)
	if err != nil {
		return fmt.Errorf("failed to map notifications: %w", err)
	}

	if err := shareddb.GetTxFromContext(ctx, r.db).CreateInBatches(rows, 100).Error; err != nil {
		r.logger.Errorw("failed to create notifications", "count", len(rows), "error", err)
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) GetByID(ctx context.Context, cabinetID, recipientID, id string) (*notification.Notification, error) {
	var rows []*models.CabinetNotificationModel
	if err := r.recipientQuery(ctx, cabinetID, recipientID).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return r.mapper.ToEntity(rows[0])
}

func (r *NotificationRepositoryImpl) ListByRecipient(ctx context.Context, cabinetID, recipientID string, unreadOnly bool) ([]*notification.Notification, error) {
	query := r.recipientQuery(ctx, cabinetID, recipientID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var rows []*models.CabinetNotificationModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list notifications", "cabinet_id", cabinetID, "recipient_id", recipientID, "error", err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

func (r *NotificationRepositoryImpl) CountUnreadByType(ctx context.Context, cabinetID, recipientID string) (map[vo.NotificationType]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := r.recipientQuery(ctx, cabinetID, recipientID).
		Select("type, COUNT(*) AS count").
		Where("is_read = ?", false).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	counts := make(map[vo.NotificationType]int64, len(rows))
	for _, row := range rows {
		counts[vo.NotificationType(row.Type)] = row.Count
	}
	return counts, nil
}

func (r *NotificationRepositoryImpl) MarkReadByTypes(ctx context.Context, cabinetID, recipientID string, types []vo.NotificationType) (int64, error) {
	if len(types) == 0 {
		return 0, nil
	}

	result := r.recipientQuery(ctx, cabinetID, recipientID).
		Where("is_read = ?", false).
		Where("type IN ?", mapper.MapSlice(types, vo.NotificationType.String)).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, cabinetID, recipientID, id string) error {
	existing, err := r.GetByID(ctx, cabinetID, recipientID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.NewNotFoundError("notification not found")
	}
	if existing.IsRead() {
		return nil
	}

	if err := r.recipientQuery(ctx, cabinetID, recipientID).Where("id = ?", id).Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, cabinetID, recipientID string) (int64, error) {
	result := r.recipientQuery(ctx, cabinetID, recipientID).
		Where("is_read = ?", false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark all notifications as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepositoryImpl) DeleteRead(ctx context.Context, cabinetID, recipientID string) (int64, error) {
	result := shareddb.GetTxFromContext(ctx, r.db).
		Scopes(shareddb.InCabinet(cabinetID), shareddb.ForRecipient(recipientID)).
		Where("is_read = ?", true).
		Delete(&models.CabinetNotificationModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete read notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}
