package usecases

import (
	"context"
	"fmt"

	"cabinet/internal/application/chat/dto"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	"cabinet/internal/shared/errors"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/services/mention"
	"cabinet/internal/shared/utils/logutil"
)

const (
	messageNotificationTitle   = "Nouveau message"
	messageNotificationPreview = 140
)

type SendMessageUseCase struct {
	messageRepo      message.Repository
	notificationRepo notification.Repository
	memberRepo       cabinet.MemberRepository
	access           conversationAccess
	mentions         mention.Service
	publisher        RealtimePublisher
	tx               TransactionRunner
	notifyOnMessage  bool
	logger           logger.Interface
}

func NewSendMessageUseCase(
	messageRepo message.Repository,
	notificationRepo notification.Repository,
	memberRepo cabinet.MemberRepository,
	conversationRepo conversation.Repository,
	mentions mention.Service,
	publisher RealtimePublisher,
	tx TransactionRunner,
	notifyOnMessage bool,
	logger logger.Interface,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		memberRepo:       memberRepo,
		access:           conversationAccess{memberRepo: memberRepo, conversationRepo: conversationRepo},
		mentions:         mentions,
		publisher:        publisher,
		tx:               tx,
		notifyOnMessage:  notifyOnMessage,
		logger:           logger,
	}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, cabinetID, senderID, rawKey string, req dto.SendMessageRequest) (*dto.MessageResponse, error) {
	key, group, err := uc.access.resolve(ctx, cabinetID, senderID, rawKey, true)
	if err != nil {
		return nil, err
	}

	m, err := message.NewMessage(cabinetID, senderID, key.Target(), req.Message)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var audience []string
	if group != nil {
		audience = group.MemberIDs()
	}

	var notifications []*notification.Notification
	if uc.notifyOnMessage {
		notifications, err = uc.buildNotifications(ctx, m, audience)
		if err != nil {
			return nil, err
		}
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.messageRepo.Create(txCtx, m); err != nil {
			return err
		}
		return uc.notificationRepo.BulkCreate(txCtx, notifications)
	})
	if err != nil {
		uc.logger.Errorw("failed to send message", "cabinet_id", cabinetID, "conversation", key.String(), "error", err)
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	uc.publisher.MessageInserted(ctx, m, audience)
	for _, n := range notifications {
		uc.publisher.NotificationChanged(ctx, cabinetID, proto.NotificationData{
			Event:       proto.NotificationInsert,
			RecipientID: n.RecipientID(),
			ID:          n.ID(),
			Type:        n.NotificationType().String(),
		})
	}

	uc.logger.Infow("message sent",
		"cabinet_id", cabinetID,
		"message_id", m.ID(),
		"kind", m.Target().Kind().String(),
		"notifications", len(notifications),
	)
	resp := dto.ToMessageResponse(m, senderID)
	resp.RenderedHTML = uc.mentions.RenderHTML(resp.Message)
	return resp, nil
}

// buildNotifications creates one cabinet_message notification per recipient:
// the peer, the other group members, or every other active member.
func (uc *SendMessageUseCase) buildNotifications(ctx context.Context, m *message.Message, audience []string) ([]*notification.Notification, error) {
	members, err := uc.memberRepo.ListActive(ctx, m.CabinetID())
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	senderName := cabinet.UnknownDisplayName
	active := make(map[string]bool, len(members))
	for _, member := range members {
		active[member.UserID()] = true
		if member.UserID() == m.SenderID() {
			senderName = member.DisplayName()
		}
	}

	var recipients []string
	switch m.Target().Kind() {
	case message.KindDirect:
		recipients = []string{m.Target().RecipientID()}
	case message.KindGroup:
		recipients = audience
	default:
		for _, member := range members {
			recipients = append(recipients, member.UserID())
		}
	}

	preview := senderName + " : " + logutil.Truncate(uc.mentions.RenderPlain(m.Body()), messageNotificationPreview)

	notifications := make([]*notification.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		if recipientID == m.SenderID() || !active[recipientID] {
			continue
		}
		key, _ := m.KeyFor(recipientID)
		n, err := notification.NewNotification(
			m.CabinetID(),
			recipientID,
			m.SenderID(),
			vo.NotificationTypeMessage,
			messageNotificationTitle,
			preview,
			m.ID(),
			map[string]any{
				"conversation": key.String(),
				"message_id":   m.ID(),
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build message notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}
