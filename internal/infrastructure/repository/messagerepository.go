package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cabinet/internal/domain/message"
	"cabinet/internal/infrastructure/persistence/mappers"
	"cabinet/internal/infrastructure/persistence/models"
	shareddb "cabinet/internal/shared/db"
	"cabinet/internal/shared/logger"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MessageMapper
	logger logger.Interface
}

func NewMessageRepository(db *gorm.DB, log logger.Interface) message.Repository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mappers.NewMessageMapper(),
		logger: log,
	}
}

// inConversation applies the conversation identity rule for viewerID.
func inConversation(key message.ConversationKey, viewerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch key.Kind() {
		case message.KindBroadcast:
			return db.Where("recipient_id IS NULL AND conversation_id IS NULL")
		case message.KindDirect:
			peerID := key.PeerID()
			return db.Where("conversation_id IS NULL").
				Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?))",
					viewerID, peerID, peerID, viewerID)
		case message.KindGroup:
			return db.Where("conversation_id = ?", key.ConversationID())
		default:
			return db.Where("1 = 0")
		}
	}
}

func (r *MessageRepositoryImpl) conversationQuery(ctx context.Context, cabinetID string, key message.ConversationKey, viewerID string) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db).
		Model(&models.CabinetMessageModel{}).
		Scopes(shareddb.InCabinet(cabinetID), inConversation(key, viewerID))
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, m *message.Message) error {
	if err := shareddb.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(m)).Error; err != nil {
		r.logger.Errorw("failed to create message", "cabinet_id", m.CabinetID(), "error", err)
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *MessageRepositoryImpl) ListByConversation(ctx context.Context, cabinetID string, key message.ConversationKey, viewerID string) ([]*message.Message, error) {
	var rows []*models.CabinetMessageModel
	err := r.conversationQuery(ctx, cabinetID, key, viewerID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list messages", "cabinet_id", cabinetID, "conversation", key.String(), "error", err)
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

func (r *MessageRepositoryImpl) Summarize(ctx context.Context, cabinetID string, key message.ConversationKey, viewerID string, since *time.Time) (*message.Summary, error) {
	var latest []*models.CabinetMessageModel
	err := r.conversationQuery(ctx, cabinetID, key, viewerID).
		Select("id", "created_at").
		Order("created_at DESC").
		Limit(1).
		Find(&latest).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load latest message: %w", err)
	}

	summary := &message.Summary{}
	if len(latest) == 0 {
		return summary, nil
	}
	latestAt := latest[0].CreatedAt.UTC()
	summary.HasMessages = true
	summary.LatestAt = &latestAt

	unread := r.conversationQuery(ctx, cabinetID, key, viewerID).Where("sender_id <> ?", viewerID)
	if since != nil {
		unread = unread.Where("created_at > ?", since.UTC())
	}
	if err := unread.Count(&summary.Unread).Error; err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return summary, nil
}

func (r *MessageRepositoryImpl) DeleteByConversation(ctx context.Context, cabinetID, conversationID string) error {
	err := shareddb.GetTxFromContext(ctx, r.db).
		Scopes(shareddb.InCabinet(cabinetID)).
		Where("conversation_id = ?", conversationID).
		Delete(&models.CabinetMessageModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete conversation messages: %w", err)
	}
	return nil
}
