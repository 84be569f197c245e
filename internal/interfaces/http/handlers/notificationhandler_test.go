package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appDto "cabinet/internal/application/notification/dto"
	"cabinet/internal/domain/cabinet"
	"cabinet/internal/interfaces/http/handlers/testutil"
	"cabinet/internal/shared/errors"
)

// =====================================================================
// Mock notification service
// =====================================================================

type mockNotificationService struct {
	listNotificationsFn func(ctx context.Context, cabinetID, recipientID string, req appDto.ListNotificationsRequest) ([]*appDto.NotificationResponse, error)
	getBadgesFn         func(ctx context.Context, cabinetID, recipientID string) (*appDto.BadgesResponse, error)
	markTabReadFn       func(ctx context.Context, cabinetID, recipientID, tab string) (*appDto.MarkReadResponse, error)
	markReadFn          func(ctx context.Context, cabinetID, recipientID, id string) error
	markAllReadFn       func(ctx context.Context, cabinetID, recipientID string) (*appDto.MarkReadResponse, error)
	deleteReadFn        func(ctx context.Context, actor *cabinet.Member) (*appDto.DeleteReadResponse, error)
	shareResourceFn     func(ctx context.Context, actor *cabinet.Member, req appDto.ShareResourceRequest) (*appDto.ShareResourceResponse, error)
}

func (m *mockNotificationService) ListNotifications(ctx context.Context, cabinetID, recipientID string, req appDto.ListNotificationsRequest) ([]*appDto.NotificationResponse, error) {
	if m.listNotificationsFn != nil {
		return m.listNotificationsFn(ctx, cabinetID, recipientID, req)
	}
	return nil, nil
}

func (m *mockNotificationService) GetBadges(ctx context.Context, cabinetID, recipientID string) (*appDto.BadgesResponse, error) {
	if m.getBadgesFn != nil {
		return m.getBadgesFn(ctx, cabinetID, recipientID)
	}
	return nil, nil
}

func (m *mockNotificationService) MarkTabRead(ctx context.Context, cabinetID, recipientID, tab string) (*appDto.MarkReadResponse, error) {
	if m.markTabReadFn != nil {
		return m.markTabReadFn(ctx, cabinetID, recipientID, tab)
	}
	return nil, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, cabinetID, recipientID, id string) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, cabinetID, recipientID, id)
	}
	return nil
}

func (m *mockNotificationService) MarkAllRead(ctx context.Context, cabinetID, recipientID string) (*appDto.MarkReadResponse, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, cabinetID, recipientID)
	}
	return nil, nil
}

func (m *mockNotificationService) DeleteRead(ctx context.Context, actor *cabinet.Member) (*appDto.DeleteReadResponse, error) {
	if m.deleteReadFn != nil {
		return m.deleteReadFn(ctx, actor)
	}
	return nil, nil
}

func (m *mockNotificationService) ShareResource(ctx context.Context, actor *cabinet.Member, req appDto.ShareResourceRequest) (*appDto.ShareResourceResponse, error) {
	if m.shareResourceFn != nil {
		return m.shareResourceFn(ctx, actor, req)
	}
	return nil, nil
}

// =====================================================================
// Test helpers
// =====================================================================

const (
	testCabinetID = "0b6f4b8e-5d0e-4a51-9b43-2c1f0f7f4a10"
	testAliceID   = "5d3c1c1e-8d51-4cf3-9a52-1f1b2b8f6a01"
	testBobID     = "7a9e2f44-3b6c-4d8e-a1f2-9c0d1e2f3a02"
)

func newTestNotificationHandler(svc notificationService) *NotificationHandler {
	return NewNotificationHandler(svc, testutil.NewMockLogger())
}

// =====================================================================
// TestNotificationHandler_ListNotifications
// =====================================================================

func TestNotificationHandler_ListNotifications_UnreadFilter(t *testing.T) {
	var got appDto.ListNotificationsRequest
	mockSvc := &mockNotificationService{
		listNotificationsFn: func(ctx context.Context, cabinetID, recipientID string, req appDto.ListNotificationsRequest) ([]*appDto.NotificationResponse, error) {
			assert.Equal(t, testCabinetID, cabinetID)
			assert.Equal(t, testAliceID, recipientID)
			got = req
			return []*appDto.NotificationResponse{{ID: "n-1", Type: "document"}}, nil
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))
	testutil.SetQueryParams(c, map[string]string{"unread": "true"})

	handler.ListNotifications(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, got.UnreadOnly)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var items []appDto.NotificationResponse
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "n-1", items[0].ID)
}

func TestNotificationHandler_ListNotifications_InvalidUnreadFlag(t *testing.T) {
	handler := newTestNotificationHandler(&mockNotificationService{})

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))
	testutil.SetQueryParams(c, map[string]string{"unread": "maybe"})

	handler.ListNotifications(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_ListNotifications_NoMembership(t *testing.T) {
	handler := newTestNotificationHandler(&mockNotificationService{})

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetAuthContext(c, testAliceID)

	handler.ListNotifications(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestNotificationHandler_ListNotifications_ServiceError(t *testing.T) {
	mockSvc := &mockNotificationService{
		listNotificationsFn: func(ctx context.Context, cabinetID, recipientID string, req appDto.ListNotificationsRequest) ([]*appDto.NotificationResponse, error) {
			return nil, stderrors.New("database error")
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))

	handler.ListNotifications(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal_error", resp.Error.Type)
}

// =====================================================================
// TestNotificationHandler_Badges
// =====================================================================

func TestNotificationHandler_GetBadges_Success(t *testing.T) {
	mockSvc := &mockNotificationService{
		getBadgesFn: func(ctx context.Context, cabinetID, recipientID string) (*appDto.BadgesResponse, error) {
			return &appDto.BadgesResponse{
				Tabs:  map[string]int64{"documents": 2, "dossiers": 0, "clients": 1},
				Total: 3,
			}, nil
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/badges", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))

	handler.GetBadges(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var badges appDto.BadgesResponse
	require.NoError(t, json.Unmarshal(resp.Data, &badges))
	assert.Equal(t, int64(3), badges.Total)
	assert.Equal(t, int64(2), badges.Tabs["documents"])
}

func TestNotificationHandler_MarkTabRead_PassesTab(t *testing.T) {
	var gotTab string
	mockSvc := &mockNotificationService{
		markTabReadFn: func(ctx context.Context, cabinetID, recipientID, tab string) (*appDto.MarkReadResponse, error) {
			gotTab = tab
			return &appDto.MarkReadResponse{Updated: 4}, nil
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/tabs/clients/read", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))
	testutil.SetURLParam(c, "tab", "clients")

	handler.MarkTabRead(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clients", gotTab)
}

func TestNotificationHandler_MarkTabRead_UnknownTab(t *testing.T) {
	mockSvc := &mockNotificationService{
		markTabReadFn: func(ctx context.Context, cabinetID, recipientID, tab string) (*appDto.MarkReadResponse, error) {
			return nil, errors.NewValidationError("unknown notification tab", tab)
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/tabs/archives/read", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))
	testutil.SetURLParam(c, "tab", "archives")

	handler.MarkTabRead(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// TestNotificationHandler_MarkRead
// =====================================================================

func TestNotificationHandler_MarkRead_Success(t *testing.T) {
	const notificationID = "3f2a1b0c-9d8e-4f7a-b6c5-d4e3f2a1b0c9"
	var gotID string
	mockSvc := &mockNotificationService{
		markReadFn: func(ctx context.Context, cabinetID, recipientID, id string) error {
			gotID = id
			return nil
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/"+notificationID+"/read", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))
	testutil.SetURLParam(c, "id", notificationID)

	handler.MarkRead(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, notificationID, gotID)
}

func TestNotificationHandler_MarkRead_InvalidID(t *testing.T) {
	called := false
	mockSvc := &mockNotificationService{
		markReadFn: func(ctx context.Context, cabinetID, recipientID, id string) error {
			called = true
			return nil
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/abc/read", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))
	testutil.SetURLParam(c, "id", "abc")

	handler.MarkRead(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestNotificationHandler_MarkRead_NotFound(t *testing.T) {
	mockSvc := &mockNotificationService{
		markReadFn: func(ctx context.Context, cabinetID, recipientID, id string) error {
			return errors.NewNotFoundError("notification not found")
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/x/read", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))
	testutil.SetURLParam(c, "id", "3f2a1b0c-9d8e-4f7a-b6c5-d4e3f2a1b0c9")

	handler.MarkRead(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationHandler_MarkAllRead_Success(t *testing.T) {
	mockSvc := &mockNotificationService{
		markAllReadFn: func(ctx context.Context, cabinetID, recipientID string) (*appDto.MarkReadResponse, error) {
			return &appDto.MarkReadResponse{Updated: 7}, nil
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/read", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))

	handler.MarkAllRead(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var result appDto.MarkReadResponse
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, int64(7), result.Updated)
}

// =====================================================================
// TestNotificationHandler_DeleteRead
// =====================================================================

func TestNotificationHandler_DeleteRead_PassesActor(t *testing.T) {
	var actor *cabinet.Member
	mockSvc := &mockNotificationService{
		deleteReadFn: func(ctx context.Context, a *cabinet.Member) (*appDto.DeleteReadResponse, error) {
			actor = a
			return &appDto.DeleteReadResponse{Deleted: 2}, nil
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodDelete, "/notifications/read", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "admin"))

	handler.DeleteRead(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, actor)
	assert.Equal(t, "admin", actor.Role())
}

func TestNotificationHandler_DeleteRead_Forbidden(t *testing.T) {
	mockSvc := &mockNotificationService{
		deleteReadFn: func(ctx context.Context, a *cabinet.Member) (*appDto.DeleteReadResponse, error) {
			return nil, errors.NewForbiddenError("your role cannot delete notifications")
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	c, w := testutil.NewTestContext(http.MethodDelete, "/notifications/read", nil)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "guest"))

	handler.DeleteRead(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// TestNotificationHandler_ShareResource
// =====================================================================

func TestNotificationHandler_ShareResource_Success(t *testing.T) {
	var got appDto.ShareResourceRequest
	mockSvc := &mockNotificationService{
		shareResourceFn: func(ctx context.Context, actor *cabinet.Member, req appDto.ShareResourceRequest) (*appDto.ShareResourceResponse, error) {
			got = req
			return &appDto.ShareResourceResponse{Recipients: 3}, nil
		},
	}
	handler := newTestNotificationHandler(mockSvc)

	body := map[string]string{"kind": "dossier", "reference_id": "D-2024-17", "name": "Succession Martin"}
	c, w := testutil.NewTestContext(http.MethodPost, "/shares", body)
	testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))

	handler.ShareResource(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "dossier", got.Kind)
	assert.Equal(t, "Succession Martin", got.Name)
}

func TestNotificationHandler_ShareResource_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "unknown kind", body: map[string]string{"kind": "facture", "reference_id": "F-1", "name": "Facture"}},
		{name: "missing name", body: map[string]string{"kind": "document", "reference_id": "DOC-1"}},
		{name: "missing reference", body: map[string]string{"kind": "client", "name": "Durand SA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mockSvc := &mockNotificationService{
				shareResourceFn: func(ctx context.Context, actor *cabinet.Member, req appDto.ShareResourceRequest) (*appDto.ShareResourceResponse, error) {
					called = true
					return nil, nil
				},
			}
			handler := newTestNotificationHandler(mockSvc)

			c, w := testutil.NewTestContext(http.MethodPost, "/shares", tt.body)
			testutil.SetMemberContext(c, testutil.NewMember(testCabinetID, testAliceID, "member"))

			handler.ShareResource(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, called)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, "validation_error", resp.Error.Type)
		})
	}
}
