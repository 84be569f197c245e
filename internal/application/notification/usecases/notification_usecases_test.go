package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	"cabinet/internal/shared/errors"
	proto "cabinet/internal/shared/hubprotocol/cabinet"
	"cabinet/internal/shared/logger"
)

func TestGetBadgesUseCase_FoldsTypesIntoTabs(t *testing.T) {
	repo := new(mockNotificationRepository)
	repo.On("CountUnreadByType", mock.Anything, testCabinetID, aliceID).Return(map[vo.NotificationType]int64{
		vo.NotificationTypeDocument: 2,
		vo.NotificationTypeContrat:  1,
		vo.NotificationTypeMessage:  4,
		vo.NotificationTypeClient:   1,
	}, nil)

	resp, err := NewGetBadgesUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), testCabinetID, aliceID)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"documents": 3, "dossiers": 0, "clients": 5}, resp.Tabs)
	assert.Equal(t, int64(8), resp.Total)
}

func TestMarkTabReadUseCase(t *testing.T) {
	t.Run("marks the bucket types in one batch", func(t *testing.T) {
		repo := new(mockNotificationRepository)
		pub := &recordingPublisher{}
		repo.On("MarkReadByTypes", mock.Anything, testCabinetID, aliceID,
			[]vo.NotificationType{vo.NotificationTypeDocument, vo.NotificationTypeContrat}).Return(int64(3), nil)

		resp, err := NewMarkTabReadUseCase(repo, pub, logger.NewNopLogger()).Execute(context.Background(), testCabinetID, aliceID, "documents")
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Updated)
		require.Len(t, pub.changes, 1)
		assert.Equal(t, proto.NotificationUpdate, pub.changes[0].Event)
		assert.Equal(t, aliceID, pub.changes[0].RecipientID)
	})

	t.Run("nothing unread publishes nothing", func(t *testing.T) {
		repo := new(mockNotificationRepository)
		pub := &recordingPublisher{}
		repo.On("MarkReadByTypes", mock.Anything, testCabinetID, aliceID, mock.Anything).Return(int64(0), nil)

		_, err := NewMarkTabReadUseCase(repo, pub, logger.NewNopLogger()).Execute(context.Background(), testCabinetID, aliceID, "dossiers")
		require.NoError(t, err)
		assert.Empty(t, pub.changes)
	})

	t.Run("unknown tab", func(t *testing.T) {
		repo := new(mockNotificationRepository)
		_, err := NewMarkTabReadUseCase(repo, &recordingPublisher{}, logger.NewNopLogger()).Execute(context.Background(), testCabinetID, aliceID, "messages")
		assert.True(t, errors.IsValidationError(err))
		repo.AssertNotCalled(t, "MarkReadByTypes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMarkReadUseCase(t *testing.T) {
	unread, err := notification.ReconstructNotification("n-1", testCabinetID, aliceID, bobID, vo.NotificationTypeDossier,
		"Nouveau dossier partagé", "", "d-1", false, nil, time.Now())
	require.NoError(t, err)
	read, err := notification.ReconstructNotification("n-2", testCabinetID, aliceID, bobID, vo.NotificationTypeDossier,
		"Nouveau dossier partagé", "", "d-1", true, nil, time.Now())
	require.NoError(t, err)

	repo := new(mockNotificationRepository)
	repo.On("GetByID", mock.Anything, testCabinetID, aliceID, "n-1").Return(unread, nil)
	repo.On("GetByID", mock.Anything, testCabinetID, aliceID, "n-2").Return(read, nil)
	repo.On("GetByID", mock.Anything, testCabinetID, aliceID, "n-3").Return(nil, nil)
	repo.On("MarkRead", mock.Anything, testCabinetID, aliceID, "n-1").Return(nil)
	pub := &recordingPublisher{}
	uc := NewMarkReadUseCase(repo, pub, logger.NewNopLogger())

	require.NoError(t, uc.Execute(context.Background(), testCabinetID, aliceID, "n-1"))
	require.NoError(t, uc.Execute(context.Background(), testCabinetID, aliceID, "n-2"))
	assert.True(t, errors.IsNotFoundError(uc.Execute(context.Background(), testCabinetID, aliceID, "n-3")))

	repo.AssertNumberOfCalls(t, "MarkRead", 1)
	require.Len(t, pub.changes, 1)
	assert.Equal(t, "n-1", pub.changes[0].ID)
}

func TestMarkAllReadUseCase(t *testing.T) {
	repo := new(mockNotificationRepository)
	repo.On("MarkAllRead", mock.Anything, testCabinetID, aliceID).Return(int64(5), nil)
	pub := &recordingPublisher{}

	resp, err := NewMarkAllReadUseCase(repo, pub, logger.NewNopLogger()).Execute(context.Background(), testCabinetID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Updated)
	require.Len(t, pub.changes, 1)
	assert.Equal(t, int64(5), pub.changes[0].Count)
}

func TestDeleteReadUseCase(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed bool
	}{
		{"allowed role", "owner", true},
		{"denied role", "member", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockNotificationRepository)
			policy := new(mockPolicy)
			pub := &recordingPublisher{}
			actor := newMember(aliceID, "Alice", "Martin", tt.role)

			policy.On("Enforce", tt.role, cabinet.ResourceNotification, cabinet.ActionPurge).Return(tt.allowed, nil)
			repo.On("DeleteRead", mock.Anything, testCabinetID, aliceID).Return(int64(2), nil)

			resp, err := NewDeleteReadUseCase(repo, policy, pub, logger.NewNopLogger()).Execute(context.Background(), actor)
			if !tt.allowed {
				assert.True(t, errors.IsForbiddenError(err))
				repo.AssertNotCalled(t, "DeleteRead", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(2), resp.Deleted)
			require.Len(t, pub.changes, 1)
			assert.Equal(t, proto.NotificationDelete, pub.changes[0].Event)
		})
	}
}

func TestShareResourceUseCase(t *testing.T) {
	repo := new(mockNotificationRepository)
	members := new(mockMemberRepository)
	pub := &recordingPublisher{}
	actor := newMember(aliceID, "Alice", "Martin", "owner")

	members.On("ListActive", mock.Anything, testCabinetID).Return([]*cabinet.Member{
		actor,
		newMember(bobID, "Bob", "Durand", "member"),
		newMember(carolID, "Carol", "Petit", "member"),
	}, nil)
	var created []*notification.Notification
	repo.On("BulkCreate", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).([]*notification.Notification)
	}).Return(nil)

	uc := NewShareResourceUseCase(repo, members, pub, logger.NewNopLogger())
	resp, err := uc.Execute(context.Background(), actor, dto.ShareResourceRequest{
		Kind:        "contrat",
		ReferenceID: "ct-9",
		Name:        "Bail commercial",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Recipients)

	require.Len(t, created, 2)
	for _, n := range created {
		assert.NotEqual(t, aliceID, n.RecipientID())
		assert.Equal(t, vo.NotificationTypeContrat, n.NotificationType())
		assert.Equal(t, "Nouveau contrat partagé", n.Title())
		assert.Equal(t, "Alice Martin a partagé « Bail commercial »", n.Message())
		tab, ok := n.Tab()
		require.True(t, ok)
		assert.Equal(t, vo.TabDocuments, tab)
	}
	assert.Len(t, pub.changes, 2)
}

func TestShareResourceUseCase_InvalidKind(t *testing.T) {
	uc := NewShareResourceUseCase(new(mockNotificationRepository), new(mockMemberRepository), &recordingPublisher{}, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), newMember(aliceID, "Alice", "Martin", "owner"), dto.ShareResourceRequest{Kind: "photo", ReferenceID: "x", Name: "x"})
	assert.True(t, errors.IsValidationError(err))
}
