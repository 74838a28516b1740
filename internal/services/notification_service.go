// internal/services/notification_service.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

// NotificationListLimit caps how many notifications a user sees at once.
const NotificationListLimit = 15

type NotificationService struct {
	notifications repository.NotificationRepository
	now           func() time.Time
}

type NotificationRequest struct {
	Title        string                  `json:"title" validate:"required,min=3"`
	Message      string                  `json:"message" validate:"required,min=5"`
	Type         models.NotificationType `json:"type" validate:"required,oneof=system order announcement"`
	TargetRole   *models.UserRole        `json:"targetRole" validate:"omitnil,oneof=villager msme admin"`
	TargetUserID *uuid.UUID              `json:"targetUserId"`
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		now:           time.Now,
	}
}

// List returns what userID may see: notifications addressed to them, to
// their role, or to everyone.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, role models.UserRole) ([]models.Notification, error) {
	notifications, err := s.notifications.ListVisible(ctx, userID, role, NotificationListLimit)
	if err != nil {
		return nil, apperrors.Internal("failed to list notifications", err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *NotificationService) Create(ctx context.Context, authorID uuid.UUID, req *NotificationRequest) (*models.Notification, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		Title:        req.Title,
		Message:      req.Message,
		Type:         req.Type,
		AuthorID:     &authorID,
		TargetRole:   req.TargetRole,
		TargetUserID: req.TargetUserID,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, apperrors.Internal("failed to create notification", err)
	}

	logrus.WithFields(logrus.Fields{
		"notification_id": notification.ID,
		"type":            notification.Type,
		"target_role":     req.TargetRole,
		"target_user_id":  req.TargetUserID,
	}).Info("Notification created")

	return notification, nil
}

// Notify sends a system-generated notification to a single user.
func (s *NotificationService) Notify(ctx context.Context, authorID *uuid.UUID, userID uuid.UUID, notificationType models.NotificationType, title, message string) error {
	return s.notifications.Create(ctx, &models.Notification{
		Title:        title,
		Message:      message,
		Type:         notificationType,
		AuthorID:     authorID,
		TargetUserID: &userID,
	})
}

// MarkRead only affects notifications addressed to userID; anything else is
// silently left alone.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	if err := s.notifications.MarkRead(ctx, notificationID, userID, s.now()); err != nil {
		return apperrors.Internal("failed to mark notification read", err)
	}
	return nil
}
