// internal/handlers/notification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/karyadesa/karya-desa-backend/internal/services"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	role, _ := utils.GetUserRoleFromContext(c)

	notifications, err := h.notificationService.List(c.Request.Context(), userID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, notifications)
}

// POST /notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.NotificationRequest
	if !bindJSON(c, &req) {
		return
	}

	notification, err := h.notificationService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, notification)
}

// POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := parseID(c, notificationNotFound())
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
