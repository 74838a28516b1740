package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/karyadesa/karya-desa-backend/internal/database"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var _ repository.OrderRepository = (*orderRepository)(nil)

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) CreateWithItems(ctx context.Context, order *models.Order) error {
	items := order.Items

	err := database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})

	order.Items = items
	return translate(err)
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, translate(err)
}

func (r *orderRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, translate(err)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if err := affected(result); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, translate(err)
}

func (r *orderRepository) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	return times, translate(err)
}

func (r *orderRepository) SalesSummary(ctx context.Context) (*repository.SalesSummary, error) {
	var totals struct {
		Revenue float64
		Orders  int64
		Last    *time.Time
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS orders, MAX(created_at) AS last").
		Scan(&totals).Error
	if err != nil {
		return nil, translate(err)
	}

	return &repository.SalesSummary{
		TotalRevenue: totals.Revenue,
		OrdersCount:  totals.Orders,
		LastOrderAt:  totals.Last,
	}, nil
}
