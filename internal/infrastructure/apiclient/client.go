// Package apiclient talks to the cabinet server on behalf of the inbox.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	chatdto "cabinet/internal/application/chat/dto"
	"cabinet/internal/application/inbox"
	notificationdto "cabinet/internal/application/notification/dto"
	"cabinet/internal/shared/errors"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/utils"
)

const userAgent = "cabinet-inbox/1.0"

// envelope mirrors the server's response wrapper.
type envelope[T any] struct {
	Success bool             `json:"success"`
	Data    T                `json:"data"`
	Error   *utils.ErrorInfo `json:"error,omitempty"`
	Message string           `json:"message,omitempty"`
}

var (
	_ inbox.Backend    = (*Client)(nil)
	_ inbox.Subscriber = (*Client)(nil)
)

type Client struct {
	baseURL    string
	token      string
	httpClient *resty.Client
	logger     logger.Interface
}

func NewClient(baseURL, token string, timeout time.Duration, log logger.Interface) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetAuthToken(token).
		SetTimeout(timeout)

	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		logger:     log,
	}
}

// do sends the request and unwraps the envelope into result.
func do[T any](ctx context.Context, c *Client, method, path string, build func(*resty.Request)) (T, error) {
	var zero T
	var ok envelope[T]
	var failed envelope[T]

	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(&ok).
		SetError(&failed)
	if build != nil {
		build(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return zero, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	if resp.IsError() {
		return zero, toAppError(resp.StatusCode(), failed.Error, resp.String())
	}
	if !ok.Success {
		return zero, toAppError(resp.StatusCode(), ok.Error, "unsuccessful response")
	}
	return ok.Data, nil
}

// toAppError rebuilds the server's typed error so callers can branch on it.
func toAppError(status int, info *utils.ErrorInfo, fallback string) error {
	if info == nil {
		return &errors.AppError{
			Type:    errors.ErrorTypeInternal,
			Message: fmt.Sprintf("unexpected response (%d): %s", status, fallback),
			Code:    status,
		}
	}
	return &errors.AppError{
		Type:    errors.ErrorType(info.Type),
		Message: info.Message,
		Code:    status,
		Details: info.Details,
	}
}

func (c *Client) Me(ctx context.Context) (*chatdto.MeResponse, error) {
	return do[*chatdto.MeResponse](ctx, c, http.MethodGet, "/api/me", nil)
}

func (c *Client) ListMembers(ctx context.Context, cabinetID string) ([]*chatdto.MemberResponse, error) {
	return do[[]*chatdto.MemberResponse](ctx, c, http.MethodGet, "/api/cabinets/{cabinet_id}/members", func(r *resty.Request) {
		r.SetPathParam("cabinet_id", cabinetID)
	})
}

func (c *Client) ListConversations(ctx context.Context, cabinetID string) ([]*chatdto.ConversationResponse, error) {
	return do[[]*chatdto.ConversationResponse](ctx, c, http.MethodGet, "/api/cabinets/{cabinet_id}/conversations", func(r *resty.Request) {
		r.SetPathParam("cabinet_id", cabinetID)
	})
}

func (c *Client) CreateConversation(ctx context.Context, cabinetID string, req chatdto.CreateConversationRequest) (*chatdto.ConversationResponse, error) {
	return do[*chatdto.ConversationResponse](ctx, c, http.MethodPost, "/api/cabinets/{cabinet_id}/conversations", func(r *resty.Request) {
		r.SetPathParam("cabinet_id", cabinetID).SetBody(req)
	})
}

func (c *Client) ListMessages(ctx context.Context, cabinetID, key string) ([]*chatdto.MessageResponse, error) {
	return do[[]*chatdto.MessageResponse](ctx, c, http.MethodGet, "/api/cabinets/{cabinet_id}/conversations/{key}/messages", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"cabinet_id": cabinetID, "key": key})
	})
}

func (c *Client) ConversationSummary(ctx context.Context, cabinetID, key string, since *time.Time) (*chatdto.SummaryResponse, error) {
	return do[*chatdto.SummaryResponse](ctx, c, http.MethodGet, "/api/cabinets/{cabinet_id}/conversations/{key}/summary", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"cabinet_id": cabinetID, "key": key})
		if since != nil {
			r.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
		}
	})
}

func (c *Client) SendMessage(ctx context.Context, cabinetID, key, text string) (*chatdto.MessageResponse, error) {
	return do[*chatdto.MessageResponse](ctx, c, http.MethodPost, "/api/cabinets/{cabinet_id}/conversations/{key}/messages", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"cabinet_id": cabinetID, "key": key}).
			SetHeader("Content-Type", "application/json").
			SetBody(chatdto.SendMessageRequest{Message: text})
	})
}

func (c *Client) ListNotifications(ctx context.Context, cabinetID string, unreadOnly bool) ([]*notificationdto.NotificationResponse, error) {
	return do[[]*notificationdto.NotificationResponse](ctx, c, http.MethodGet, "/api/cabinets/{cabinet_id}/notifications", func(r *resty.Request) {
		r.SetPathParam("cabinet_id", cabinetID)
		if unreadOnly {
			r.SetQueryParam("unread", "true")
		}
	})
}

func (c *Client) NotificationBadges(ctx context.Context, cabinetID string) (*notificationdto.BadgesResponse, error) {
	return do[*notificationdto.BadgesResponse](ctx, c, http.MethodGet, "/api/cabinets/{cabinet_id}/notifications/badges", func(r *resty.Request) {
		r.SetPathParam("cabinet_id", cabinetID)
	})
}

func (c *Client) MarkTabRead(ctx context.Context, cabinetID, tab string) (*notificationdto.MarkReadResponse, error) {
	return do[*notificationdto.MarkReadResponse](ctx, c, http.MethodPatch, "/api/cabinets/{cabinet_id}/notifications/tabs/{tab}/read", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"cabinet_id": cabinetID, "tab": tab})
	})
}
