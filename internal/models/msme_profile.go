// internal/models/msme_profile.go
package models

import (
	"github.com/google/uuid"
)

type MsmeProfile struct {
	BaseModel
	UserID      uuid.UUID  `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	StoreName   string     `json:"storeName" gorm:"size:120;not null"`
	Category    string     `json:"category" gorm:"size:80;not null;index"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Location    string     `json:"location" gorm:"size:120;not null"`
	DistanceKm  float64    `json:"distanceKm" gorm:"not null;default:0"`
	Rating      float64    `json:"rating" gorm:"not null;default:0"`
	Status      MsmeStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	// Relationships
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
