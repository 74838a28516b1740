// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:120;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Price       float64    `json:"price" gorm:"not null"`
	Stock       int        `json:"stock" gorm:"not null;default:0"`
	Category    string     `json:"category" gorm:"size:80;not null;index"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty" gorm:"type:uuid;index"`
}
