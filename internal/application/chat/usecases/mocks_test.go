package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
)

const (
	testCabinetID = "c0000000-0000-0000-0000-000000000001"
	aliceID       = "a0000000-0000-0000-0000-000000000001"
	bobID         = "b0000000-0000-0000-0000-000000000002"
	carolID       = "c0000000-0000-0000-0000-0000000000c3"

	groupID        = "6f1c0a52-3b8e-4d7a-9c21-5e0f3a7b9d11"
	missingGroupID = "6f1c0a52-3b8e-4d7a-9c21-5e0f3a7b9404"
)

func newMember(userID, first, last, role string) *cabinet.Member {
	m, err := cabinet.ReconstructMember("m-"+userID, testCabinetID, userID, role, cabinet.MemberStatusActive,
		first+"@example.com", &cabinet.Profile{FirstName: first, LastName: last})
	if err != nil {
		panic(err)
	}
	return m
}

func activeMembers() []*cabinet.Member {
	return []*cabinet.Member{
		newMember(aliceID, "Alice", "Martin", "owner"),
		newMember(bobID, "Bob", "Durand", "member"),
		newMember(carolID, "Carol", "Petit", "member"),
	}
}

type mockMemberRepository struct {
	mock.Mock
}

func (m *mockMemberRepository) ListActive(ctx context.Context, cabinetID string) ([]*cabinet.Member, error) {
	args := m.Called(ctx, cabinetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cabinet.Member), args.Error(1)
}

func (m *mockMemberRepository) FindActive(ctx context.Context, cabinetID, userID string) (*cabinet.Member, error) {
	args := m.Called(ctx, cabinetID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cabinet.Member), args.Error(1)
}

type mockConversationRepository struct {
	mock.Mock
}

func (m *mockConversationRepository) Create(ctx context.Context, c *conversation.Conversation) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockConversationRepository) GetByID(ctx context.Context, cabinetID, id string) (*conversation.Conversation, error) {
	args := m.Called(ctx, cabinetID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversation.Conversation), args.Error(1)
}

func (m *mockConversationRepository) ListByMember(ctx context.Context, cabinetID, userID string) ([]*conversation.Conversation, error) {
	args := m.Called(ctx, cabinetID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*conversation.Conversation), args.Error(1)
}

func (m *mockConversationRepository) Delete(ctx context.Context, cabinetID, id string) error {
	return m.Called(ctx, cabinetID, id).Error(0)
}

type mockMessageRepository struct {
	mock.Mock
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *message.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMessageRepository) ListByConversation(ctx context.Context, cabinetID string, key message.ConversationKey, viewerID string) ([]*message.Message, error) {
	args := m.Called(ctx, cabinetID, key, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*message.Message), args.Error(1)
}

func (m *mockMessageRepository) Summarize(ctx context.Context, cabinetID string, key message.ConversationKey, viewerID string, since *time.Time) (*message.Summary, error) {
	args := m.Called(ctx, cabinetID, key, viewerID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*message.Summary), args.Error(1)
}

func (m *mockMessageRepository) DeleteByConversation(ctx context.Context, cabinetID, conversationID string) error {
	return m.Called(ctx, cabinetID, conversationID).Error(0)
}

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) BulkCreate(ctx context.Context, notifications []*notification.Notification) error {
	return m.Called(ctx, notifications).Error(0)
}

func (m *mockNotificationRepository) GetByID(ctx context.Context, cabinetID, recipientID, id string) (*notification.Notification, error) {
	args := m.Called(ctx, cabinetID, recipientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *mockNotificationRepository) ListByRecipient(ctx context.Context, cabinetID, recipientID string, unreadOnly bool) ([]*notification.Notification, error) {
	args := m.Called(ctx, cabinetID, recipientID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *mockNotificationRepository) CountUnreadByType(ctx context.Context, cabinetID, recipientID string) (map[vo.NotificationType]int64, error) {
	args := m.Called(ctx, cabinetID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[vo.NotificationType]int64), args.Error(1)
}

func (m *mockNotificationRepository) MarkReadByTypes(ctx context.Context, cabinetID, recipientID string, types []vo.NotificationType) (int64, error) {
	args := m.Called(ctx, cabinetID, recipientID, types)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, cabinetID, recipientID, id string) error {
	return m.Called(ctx, cabinetID, recipientID, id).Error(0)
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, cabinetID, recipientID string) (int64, error) {
	args := m.Called(ctx, cabinetID, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepository) DeleteRead(ctx context.Context, cabinetID, recipientID string) (int64, error) {
	args := m.Called(ctx, cabinetID, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPolicy struct {
	mock.Mock
}

func (m *mockPolicy) Enforce(role, resource, action string) (bool, error) {
	args := m.Called(role, resource, action)
	return args.Bool(0), args.Error(1)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	messages      []*message.Message
	audiences     [][]string
	notifications []proto.NotificationData
}

func (p *recordingPublisher) MessageInserted(_ context.Context, m *message.Message, audience []string) {
	p.messages = append(p.messages, m)
	p.audiences = append(p.audiences, audience)
}

func (p *recordingPublisher) NotificationChanged(_ context.Context, _ string, change proto.NotificationData) {
	p.notifications = append(p.notifications, change)
}

// inlineTx runs the unit of work without a database.
type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
