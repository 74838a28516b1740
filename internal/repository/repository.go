// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/karyadesa/karya-desa-backend/internal/models"
)

var (
	// ErrNotFound is returned when a lookup, update or delete matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key (user email, profile user) is taken.
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

// PendingProfile is a verification request joined with its owner's name.
type PendingProfile struct {
	Profile   models.MsmeProfile
	OwnerName string
}

type CategoryCount struct {
	Category string
	Count    int64
}

type MsmeProfileFilter struct {
	Status *models.MsmeStatus
	Offset int
	Limit  int
}

type MsmeProfileRepository interface {
	Create(ctx context.Context, profile *models.MsmeProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.MsmeProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.MsmeProfile, error)
	// UpsertByUserID writes the editable fields of profile. A missing row is
	// created with profile.Status; an existing row keeps its status and rating.
	UpsertByUserID(ctx context.Context, profile *models.MsmeProfile) (*models.MsmeProfile, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MsmeStatus) (*models.MsmeProfile, error)
	CountByStatus(ctx context.Context, status models.MsmeStatus) (int64, error)
	ListPendingWithOwner(ctx context.Context, limit int) ([]PendingProfile, error)
	CategoryBreakdown(ctx context.Context, status models.MsmeStatus) ([]CategoryCount, error)
	ListNearest(ctx context.Context, status models.MsmeStatus, limit int) ([]models.MsmeProfile, error)
	List(ctx context.Context, filter MsmeProfileFilter) ([]models.MsmeProfile, int64, error)
	CreatedSince(ctx context.Context, status models.MsmeStatus, since time.Time) ([]time.Time, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type SalesSummary struct {
	TotalRevenue float64
	OrdersCount  int64
	LastOrderAt  *time.Time
}

type OrderRepository interface {
	// CreateWithItems persists the order and all of its items atomically.
	CreateWithItems(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	Count(ctx context.Context) (int64, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
	SalesSummary(ctx context.Context) (*SalesSummary, error)
}

type NewsRepository interface {
	Create(ctx context.Context, item *models.NewsItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListLatest(ctx context.Context, limit int) ([]models.NewsItem, error)
	CountByType(ctx context.Context, newsType models.NewsType) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type TourismRepository interface {
	Create(ctx context.Context, spot *models.TourismSpot) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListLatest(ctx context.Context, limit int) ([]models.TourismSpot, error)
	Count(ctx context.Context) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	// ListVisible returns notifications addressed to the user, to the user's
	// role without a user target, or to everyone.
	ListVisible(ctx context.Context, userID uuid.UUID, role models.UserRole, limit int) ([]models.Notification, error)
	// MarkRead only touches a notification whose target user is userID.
	MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error
	Count(ctx context.Context) (int64, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// Store groups the repositories a process needs. Both the gorm and the
// in-memory adapters build one.
type Store struct {
	Users         UserRepository
	MsmeProfiles  MsmeProfileRepository
	Products      ProductRepository
	Orders        OrderRepository
	News          NewsRepository
	Tourism       TourismRepository
	Notifications NotificationRepository
	AuditLogs     AuditLogRepository
}
