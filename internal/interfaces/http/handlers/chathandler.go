package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabinet/internal/application/chat/dto"
	"cabinet/internal/shared/errors"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/utils"
)

type ChatHandler struct {
	service chatService
	logger  logger.Interface
}

func NewChatHandler(service chatService, logger logger.Interface) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// Me returns the identity carried by the bearer token.
func (h *ChatHandler) Me(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", &dto.MeResponse{
		UserID: userID,
		Email:  c.GetString("email"),
	})
}

func (h *ChatHandler) ListMembers(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListMembers(c.Request.Context(), member.CabinetID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListConversations(c.Request.Context(), member.CabinetID(), member.UserID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ChatHandler) CreateConversation(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create conversation", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.CreateConversation(c.Request.Context(), member.CabinetID(), member.UserID(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Conversation created successfully")
}

func (h *ChatHandler) DeleteConversation(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	conversationID, err := utils.ParseUUIDParam(c, "key", "conversation")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteConversation(c.Request.Context(), member, conversationID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListMessages(c.Request.Context(), member.CabinetID(), member.UserID(), c.Param("key"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for send message", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.SendMessage(c.Request.Context(), member.CabinetID(), member.UserID(), c.Param("key"), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message sent")
}

// GetConversationSummary accepts an optional RFC 3339 "since" query. Without
// it every message from others counts as unread.
func (h *ChatHandler) GetConversationSummary(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid since timestamp", "expected RFC 3339"))
			return
		}
		since = &parsed
	}

	result, err := h.service.GetConversationSummary(c.Request.Context(), member.CabinetID(), member.UserID(), c.Param("key"), since)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
