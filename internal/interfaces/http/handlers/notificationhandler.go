package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinet/internal/application/notification/dto"
	"cabinet/internal/shared/errors"
	"cabinet/internal/shared/logger"
	"cabinet/internal/shared/utils"
)

type NotificationHandler struct {
	service notificationService
	logger  logger.Interface
}

func NewNotificationHandler(service notificationService, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger,
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}

	result, err := h.service.ListNotifications(c.Request.Context(), member.CabinetID(), member.UserID(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *NotificationHandler) GetBadges(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetBadges(c.Request.Context(), member.CabinetID(), member.UserID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// MarkTabRead clears the badge of the tab being opened.
func (h *NotificationHandler) MarkTabRead(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.MarkTabRead(c.Request.Context(), member.CabinetID(), member.UserID(), c.Param("tab"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	notificationID, err := utils.ParseUUIDParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), member.CabinetID(), member.UserID(), notificationID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.MarkAllRead(c.Request.Context(), member.CabinetID(), member.UserID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All notifications marked as read", result)
}

func (h *NotificationHandler) DeleteRead(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.DeleteRead(c.Request.Context(), member)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Read notifications deleted", result)
}

// ShareResource notifies every other active member about a shared document,
// dossier, contract or client.
func (h *NotificationHandler) ShareResource(c *gin.Context) {
	member, err := utils.GetCabinetMember(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ShareResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for share resource", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ShareResource(c.Request.Context(), member, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Resource shared")
}
