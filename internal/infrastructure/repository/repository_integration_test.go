package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cabinet/internal/domain/conversation"
	"cabinet/internal/domain/message"
	"cabinet/internal/domain/notification"
	vo "cabinet/internal/domain/notification/valueobjects"
	"cabinet/internal/infrastructure/persistence/models"
	shareddb "cabinet/internal/shared/db"
	"cabinet/internal/shared/errors"
	"cabinet/internal/shared/logger"
)

const (
	cabinetID  = "c0000000-0000-0000-0000-000000000001"
	otherCab   = "c0000000-0000-0000-0000-000000000002"
	alice      = "a0000000-0000-0000-0000-000000000001"
	bob        = "b0000000-0000-0000-0000-000000000002"
	carol      = "c0000000-0000-0000-0000-0000000000c3"
	dave       = "d0000000-0000-0000-0000-0000000000d4"
	inactiveID = "e0000000-0000-0000-0000-0000000000e5"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedMembers(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	members := []models.CabinetMemberModel{
		{ID: "m1", CabinetID: cabinetID, UserID: alice, RoleCabinet: "owner", Status: "active", Email: "alice@example.com", CreatedAt: base},
		{ID: "m2", CabinetID: cabinetID, UserID: bob, RoleCabinet: "member", Status: "active", Email: "bob@example.com", CreatedAt: base.Add(time.Minute)},
		{ID: "m3", CabinetID: cabinetID, UserID: carol, RoleCabinet: "member", Status: "active", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "m4", CabinetID: cabinetID, UserID: inactiveID, RoleCabinet: "member", Status: "invited", CreatedAt: base.Add(3 * time.Minute)},
		{ID: "m5", CabinetID: otherCab, UserID: dave, RoleCabinet: "member", Status: "active", CreatedAt: base},
	}
	require.NoError(t, db.Create(&members).Error)

	profiles := []models.ProfileModel{
		{ID: alice, FirstName: "Alice", LastName: "Martin"},
		{ID: bob, FirstName: "Bob", LastName: "Durand"},
	}
	require.NoError(t, db.Create(&profiles).Error)
}

func insertMessage(t *testing.T, db *gorm.DB, id, cab, sender string, target message.Target, at time.Time) {
	t.Helper()
	recipientID, conversationID := target.Columns()
	require.NoError(t, db.Create(&models.CabinetMessageModel{
		ID:             id,
		CabinetID:      cab,
		SenderID:       sender,
		RecipientID:    recipientID,
		ConversationID: conversationID,
		Message:        "msg " + id,
		CreatedAt:      at,
	}).Error)
}

// =====================================================================
// Members
// =====================================================================

func TestCabinetMemberRepository_ListActive(t *testing.T) {
	db := setupTestDB(t)
	seedMembers(t, db)
	repo := NewCabinetMemberRepository(db, logger.NewNopLogger())
	ctx := context.Background()

	members, err := repo.ListActive(ctx, cabinetID)
	require.NoError(t, err)
	require.Len(t, members, 3)

	assert.Equal(t, alice, members[0].UserID())
	assert.Equal(t, "Alice Martin", members[0].DisplayName())
	assert.Equal(t, "owner", members[0].Role())
	assert.Equal(t, "Inconnu", members[2].DisplayName())
	assert.Equal(t, "Membre du cabinet", members[2].ContactLabel())
}

func TestCabinetMemberRepository_FindActive(t *testing.T) {
	db := setupTestDB(t)
	seedMembers(t, db)
	repo := NewCabinetMemberRepository(db, logger.NewNopLogger())
	ctx := context.Background()

	member, err := repo.FindActive(ctx, cabinetID, bob)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "bob@example.com", member.Email())

	member, err = repo.FindActive(ctx, cabinetID, inactiveID)
	require.NoError(t, err)
	assert.Nil(t, member)

	member, err = repo.FindActive(ctx, cabinetID, dave)
	require.NoError(t, err)
	assert.Nil(t, member)
}

// =====================================================================
// Conversations & messages
// =====================================================================

func TestConversationRepository_CreateListDelete(t *testing.T) {
	db := setupTestDB(t)
	log := logger.NewNopLogger()
	convRepo := NewConversationRepository(db, log)
	msgRepo := NewMessageRepository(db, log)
	tm := shareddb.NewTransactionManager(db)
	ctx := context.Background()

	group, err := conversation.NewConversation(cabinetID, "Dossier Dupont", alice, []string{bob})
	require.NoError(t, err)
	require.NoError(t, convRepo.Create(ctx, group))

	forBob, err := convRepo.ListByMember(ctx, cabinetID, bob)
	require.NoError(t, err)
	require.Len(t, forBob, 1)
	assert.Equal(t, []string{alice, bob}, forBob[0].MemberIDs())

	forCarol, err := convRepo.ListByMember(ctx, cabinetID, carol)
	require.NoError(t, err)
	assert.Empty(t, forCarol)

	at := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	insertMessage(t, db, "g-1", cabinetID, alice, message.Group(group.ID()), at)

	err = tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := msgRepo.DeleteByConversation(txCtx, cabinetID, group.ID()); err != nil {
			return err
		}
		return convRepo.Delete(txCtx, cabinetID, group.ID())
	})
	require.NoError(t, err)

	found, err := convRepo.GetByID(ctx, cabinetID, group.ID())
	require.NoError(t, err)
	assert.Nil(t, found)

	msgs, err := msgRepo.ListByConversation(ctx, cabinetID, message.GroupConversation(group.ID()), alice)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	err = convRepo.Delete(ctx, cabinetID, group.ID())
	assert.True(t, errors.IsNotFoundError(err))
}

func TestMessageRepository_ConversationScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db, logger.NewNopLogger())
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	insertMessage(t, db, "b-1", cabinetID, bob, message.Broadcast(), base)
	insertMessage(t, db, "d-1", cabinetID, alice, message.Direct(bob), base.Add(1*time.Minute))
	insertMessage(t, db, "d-2", cabinetID, bob, message.Direct(alice), base.Add(2*time.Minute))
	insertMessage(t, db, "d-3", cabinetID, bob, message.Direct(carol), base.Add(3*time.Minute))
	insertMessage(t, db, "g-1", cabinetID, carol, message.Group("g1"), base.Add(4*time.Minute))
	insertMessage(t, db, "x-1", otherCab, dave, message.Broadcast(), base.Add(5*time.Minute))

	general, err := repo.ListByConversation(ctx, cabinetID, message.GeneralConversation(), alice)
	require.NoError(t, err)
	require.Len(t, general, 1)
	assert.Equal(t, "b-1", general[0].ID())

	direct, err := repo.ListByConversation(ctx, cabinetID, message.DirectConversation(bob), alice)
	require.NoError(t, err)
	require.Len(t, direct, 2)
	assert.Equal(t, "d-1", direct[0].ID())
	assert.Equal(t, "d-2", direct[1].ID())

	carolView, err := repo.ListByConversation(ctx, cabinetID, message.DirectConversation(alice), carol)
	require.NoError(t, err)
	assert.Empty(t, carolView)
}

func TestMessageRepository_Summarize(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db, logger.NewNopLogger())
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	insertMessage(t, db, "d-1", cabinetID, bob, message.Direct(alice), base)
	insertMessage(t, db, "d-2", cabinetID, alice, message.Direct(bob), base.Add(1*time.Minute))
	insertMessage(t, db, "d-3", cabinetID, bob, message.Direct(alice), base.Add(2*time.Minute))

	key := message.DirectConversation(bob)

	t.Run("no marker counts every incoming message", func(t *testing.T) {
		s, err := repo.Summarize(ctx, cabinetID, key, alice, nil)
		require.NoError(t, err)
		assert.True(t, s.HasMessages)
		require.NotNil(t, s.LatestAt)
		assert.True(t, base.Add(2*time.Minute).Equal(*s.LatestAt))
		assert.Equal(t, int64(2), s.Unread)
	})

	t.Run("marker counts strictly newer", func(t *testing.T) {
		since := base
		s, err := repo.Summarize(ctx, cabinetID, key, alice, &since)
		require.NoError(t, err)
		assert.Equal(t, int64(1), s.Unread)
	})

	t.Run("empty conversation", func(t *testing.T) {
		s, err := repo.Summarize(ctx, cabinetID, message.DirectConversation(carol), alice, nil)
		require.NoError(t, err)
		assert.False(t, s.HasMessages)
		assert.Nil(t, s.LatestAt)
		assert.Zero(t, s.Unread)
	})
}

func TestMessageRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db, logger.NewNopLogger())
	ctx := context.Background()

	m, err := message.NewMessage(cabinetID, alice, message.Broadcast(), "Bonjour à tous")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, m))

	msgs, err := repo.ListByConversation(ctx, cabinetID, message.GeneralConversation(), bob)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Bonjour à tous", msgs[0].Body())
}

// =====================================================================
// Notifications
// =====================================================================

func newNotification(t *testing.T, recipient string, nt vo.NotificationType) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(cabinetID, recipient, alice, nt, "title", "body", "ref", map[string]any{"k": "v"})
	require.NoError(t, err)
	return n
}

func TestNotificationRepository_BadgesAndTabs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.BulkCreate(ctx, []*notification.Notification{
		newNotification(t, bob, vo.NotificationTypeDocument),
		newNotification(t, bob, vo.NotificationTypeContrat),
		newNotification(t, bob, vo.NotificationTypeMessage),
		newNotification(t, bob, vo.NotificationTypeDossier),
		newNotification(t, carol, vo.NotificationTypeDocument),
	}))

	counts, err := repo.CountUnreadByType(ctx, cabinetID, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[vo.NotificationTypeDocument])
	assert.Equal(t, int64(1), counts[vo.NotificationTypeContrat])
	assert.Equal(t, int64(1), counts[vo.NotificationTypeMessage])

	affected, err := repo.MarkReadByTypes(ctx, cabinetID, bob, vo.TabDocuments.Types())
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	unread, err := repo.ListByRecipient(ctx, cabinetID, bob, true)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	carolUnread, err := repo.ListByRecipient(ctx, cabinetID, carol, true)
	require.NoError(t, err)
	assert.Len(t, carolUnread, 1, "other recipients are untouched")
	assert.Equal(t, "v", carolUnread[0].Payload()["k"])
}

func TestNotificationRepository_MarkAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db, logger.NewNopLogger())
	ctx := context.Background()

	first := newNotification(t, bob, vo.NotificationTypeClient)
	second := newNotification(t, bob, vo.NotificationTypeDossier)
	require.NoError(t, repo.BulkCreate(ctx, []*notification.Notification{first, second}))

	require.NoError(t, repo.MarkRead(ctx, cabinetID, bob, first.ID()))
	require.NoError(t, repo.MarkRead(ctx, cabinetID, bob, first.ID()))

	err := repo.MarkRead(ctx, cabinetID, carol, first.ID())
	assert.True(t, errors.IsNotFoundError(err))

	deleted, err := repo.DeleteRead(ctx, cabinetID, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	affected, err := repo.MarkAllRead(ctx, cabinetID, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	all, err := repo.ListByRecipient(ctx, cabinetID, bob, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsRead())
}
