package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var (
	_ repository.NotificationRepository = (*notificationRepository)(nil)
	_ repository.AuditLogRepository     = (*auditLogRepository)(nil)
)

type notificationRepository struct {
	db *database
}

func (r *notificationRepository) Create(_ context.Context, notification *models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	seq := r.db.stamp(&notification.BaseModel)
	r.db.notifications[notification.ID] = &row[models.Notification]{value: *notification, seq: seq, created: notification.CreatedAt}
	return nil
}

func (r *notificationRepository) ListVisible(_ context.Context, userID uuid.UUID, role models.UserRole, limit int) ([]models.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return firstN(newestFirst(r.db.notifications, func(n *models.Notification) bool {
		if n.TargetUserID != nil {
			return *n.TargetUserID == userID
		}
		return n.TargetRole == nil || *n.TargetRole == role
	}), limit), nil
}

func (r *notificationRepository) MarkRead(_ context.Context, id, userID uuid.UUID, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.notifications[id]
	if !ok || existing.value.TargetUserID == nil || *existing.value.TargetUserID != userID {
		return nil
	}
	readAt := at
	existing.value.Read = true
	existing.value.ReadAt = &readAt
	return nil
}

func (r *notificationRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return count(r.db.notifications, nil), nil
}

type auditLogRepository struct {
	db *database
}

func (r *auditLogRepository) Create(_ context.Context, entry *models.AuditLog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.stamp(&entry.BaseModel)
	if r.db.auditRetention < 1 {
		return nil
	}

	if len(r.db.auditLogs) >= r.db.auditRetention {
		drop := len(r.db.auditLogs) - r.db.auditRetention + 1
		r.db.auditLogs = append(r.db.auditLogs[:0], r.db.auditLogs[drop:]...)
	}
	r.db.auditLogs = append(r.db.auditLogs, *entry)
	return nil
}
