// internal/models/community.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type NewsItem struct {
	BaseModel
	Title       string     `json:"title" gorm:"size:200;not null"`
	Summary     string     `json:"summary" gorm:"type:text;not null"`
	Type        NewsType   `json:"type" gorm:"type:varchar(20);not null;index"`
	PublishedAt time.Time  `json:"publishedAt" gorm:"not null;index"`
	CreatedByID *uuid.UUID `json:"-" gorm:"type:uuid"`
}

type TourismSpot struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	ImageURL    string     `json:"imageUrl" gorm:"size:1024;not null"`
	Location    string     `json:"location" gorm:"size:120;not null"`
	CreatedByID *uuid.UUID `json:"-" gorm:"type:uuid"`
}
