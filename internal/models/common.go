// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. Rows are hard-deleted, so there is no
// DeletedAt column.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate assigns the id client-side so the same model works with
// stores that have no gen_random_uuid().
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type UserRole string

const (
	UserRoleVillager UserRole = "villager"
	UserRoleMsme     UserRole = "msme"
	UserRoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleVillager, UserRoleMsme, UserRoleAdmin:
		return true
	}
	return false
}

type MsmeStatus string

const (
	MsmeStatusPending  MsmeStatus = "pending"
	MsmeStatusApproved MsmeStatus = "approved"
	MsmeStatusRejected MsmeStatus = "rejected"
)

func (s MsmeStatus) Valid() bool {
	switch s {
	case MsmeStatusPending, MsmeStatusApproved, MsmeStatusRejected:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted:
		return true
	}
	return false
}

type NewsType string

const (
	NewsTypeEvent        NewsType = "event"
	NewsTypeBusiness     NewsType = "business"
	NewsTypeAnnouncement NewsType = "announcement"
)

type NotificationType string

const (
	NotificationTypeSystem       NotificationType = "system"
	NotificationTypeOrder        NotificationType = "order"
	NotificationTypeAnnouncement NotificationType = "announcement"
)
