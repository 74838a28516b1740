package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var (
	_ repository.NotificationRepository = (*notificationRepository)(nil)
	_ repository.AuditLogRepository     = (*auditLogRepository)(nil)
)

type notificationRepository struct {
	db *gorm.DB
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return translate(r.db.WithContext(ctx).Create(notification).Error)
}

func (r *notificationRepository) ListVisible(ctx context.Context, userID uuid.UUID, role models.UserRole, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("target_user_id = ?", userID).
		Or("target_user_id IS NULL AND target_role = ?", role).
		Or("target_user_id IS NULL AND target_role IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, translate(err)
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND target_user_id = ?", id, userID).
		Updates(map[string]interface{}{"read": true, "read_at": at}).Error
	return translate(err)
}

func (r *notificationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Count(&total).Error
	return total, translate(err)
}

type auditLogRepository struct {
	db *gorm.DB
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}
