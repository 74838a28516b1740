// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	BaseModel
	CustomerName  string      `json:"customerName" gorm:"size:120;not null"`
	CustomerEmail string      `json:"customerEmail" gorm:"size:255;not null"`
	Status        OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Total         float64     `json:"total" gorm:"not null"`
	UserID        *uuid.UUID  `json:"-" gorm:"type:uuid;index"`

	// Relationships
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"-" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
