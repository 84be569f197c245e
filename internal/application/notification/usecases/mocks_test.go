package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
)

const (
	testCabinetID = "c0000000-0000-0000-0000-000000000001"
	aliceID       = "a0000000-0000-0000-0000-000000000001"
	bobID         = "b0000000-0000-0000-0000-000000000002"
	carolID       = "c0000000-0000-0000-0000-0000000000c3"
)

func newMember(userID, first, last, role string) *cabinet.Member {
	m, err := cabinet.ReconstructMember("m-"+userID, testCabinetID, userID, role, cabinet.MemberStatusActive,
		"", &cabinet.Profile{FirstName: first, LastName: last})
	if err != nil {
		panic(err)
	}
	return m
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

type mockPolicy struct {
	mock.Mock
}

func (m *mockPolicy) Enforce(role, resource, action string) (bool, error) {
	args := m.Called(role, resource, action)
	return args.Bool(0), args.Error(1)
}

type recordingPublisher struct {
	changes []proto.NotificationData
}

func (p *recordingPublisher) NotificationChanged(_ context.Context, _ string, change proto.NotificationData) {
	p.changes = append(p.changes, change)
}
