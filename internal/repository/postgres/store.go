// Package postgres implements the repository ports on gorm and PostgreSQL.
package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

func NewStore(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Users:         &userRepository{db: db},
		MsmeProfiles:  &msmeProfileRepository{db: db},
		Products:      &productRepository{db: db},
		Orders:        &orderRepository{db: db},
		News:          &newsRepository{db: db},
		Tourism:       &tourismRepository{db: db},
		Notifications: &notificationRepository{db: db},
		AuditLogs:     &auditLogRepository{db: db},
	}
}

// translate maps gorm errors onto the repository sentinels. Duplicate keys
// are only recognised when the connection has TranslateError enabled.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}

// affected reports ErrNotFound for writes that matched no row.
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
