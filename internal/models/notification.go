// internal/models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a broadcast when both TargetRole and TargetUserID are nil.
type Notification struct {
	BaseModel
	Title        string           `json:"title" gorm:"size:200;not null"`
	Message      string           `json:"message" gorm:"type:text;not null"`
	Type         NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	AuthorID     *uuid.UUID       `json:"authorId,omitempty" gorm:"type:uuid"`
	TargetRole   *UserRole        `json:"targetRole,omitempty" gorm:"type:varchar(20);index"`
	TargetUserID *uuid.UUID       `json:"targetUserId,omitempty" gorm:"type:uuid;index"`
	Read         bool             `json:"read" gorm:"not null;default:false"`
	ReadAt       *time.Time       `json:"readAt,omitempty"`
}
