package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var _ repository.OrderRepository = (*orderRepository)(nil)

type orderRepository struct {
	db *database
}

func (r *orderRepository) CreateWithItems(_ context.Context, order *models.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	seq := r.db.stamp(&order.BaseModel)
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	r.db.orders[order.ID] = &row[models.Order]{value: cloneOrder(*order), seq: seq, created: order.CreatedAt}
	return nil
}

func (r *orderRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	existing, ok := r.db.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	order := cloneOrder(existing.value)
	return &order, nil
}

func (r *orderRepository) List(_ context.Context) ([]models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return cloneOrders(newestFirst(r.db.orders, nil)), nil
}

func (r *orderRepository) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return cloneOrders(newestFirst(r.db.orders, func(o *models.Order) bool {
		return o.UserID != nil && *o.UserID == ownerID
	})), nil
}

func (r *orderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	existing.value.Status = status
	existing.value.UpdatedAt = r.db.now()

	order := cloneOrder(existing.value)
	return &order, nil
}

func (r *orderRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return count(r.db.orders, nil), nil
}

func (r *orderRepository) CreatedSince(_ context.Context, since time.Time) ([]time.Time, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return createdSince(r.db.orders, since, nil), nil
}

func (r *orderRepository) SalesSummary(_ context.Context) (*repository.SalesSummary, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	summary := &repository.SalesSummary{}
	for _, existing := range r.db.orders {
		summary.TotalRevenue += existing.value.Total
		summary.OrdersCount++
		if summary.LastOrderAt == nil || existing.created.After(*summary.LastOrderAt) {
			last := existing.created
			summary.LastOrderAt = &last
		}
	}
	return summary, nil
}

func cloneOrder(o models.Order) models.Order {
	if o.UserID != nil {
		owner := *o.UserID
		o.UserID = &owner
	}
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}

func cloneOrders(list []models.Order) []models.Order {
	for i := range list {
		list[i] = cloneOrder(list[i])
	}
	return list
}
