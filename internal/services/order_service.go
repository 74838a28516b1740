// internal/services/order_service.go
package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

type OrderService struct {
	products      repository.ProductRepository
	orders        repository.OrderRepository
	tracer        trace.Tracer
	ordersCreated metric.Int64Counter
}

type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type CreateOrderRequest struct {
	CustomerName  string              `json:"customerName" validate:"required,min=2"`
	CustomerEmail string              `json:"customerEmail" validate:"required,email"`
	Items         []OrderItemRequest  `json:"items" validate:"required,min=1,dive"`
	Status        *models.OrderStatus `json:"status" validate:"omitnil,oneof=pending processing completed"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository) *OrderService {
	meter := otel.Meter(instrumentationName)
	created, err := meter.Int64Counter("orders.created", metric.WithDescription("Number of orders placed"))
	if err != nil {
		logrus.WithError(err).Warn("Failed to create orders counter")
	}

	return &OrderService{
		products:      products,
		orders:        orders,
		tracer:        otel.Tracer(instrumentationName),
		ordersCreated: created,
	}
}

func orderNotFound() *apperrors.Error {
	return apperrors.NotFound("Order not found").WithKey(i18n.KeyOrderNotFound)
}

// CreateOrder prices every line from the catalogue as it is now and stores
// the order with its items in one write. Stock is not adjusted.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest, actingUserID *uuid.UUID) (*models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder", trace.WithAttributes(attribute.Int("order.items", len(req.Items))))
	defer span.End()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Collect unique ids in request order so missing ones are reported stably.
	var (
		ids  []uuid.UUID
		seen = map[uuid.UUID]bool{}
	)
	for _, item := range req.Items {
		id := uuid.MustParse(item.ProductID)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "product lookup failed")
		return nil, apperrors.Internal("failed to load products", err)
	}

	prices := make(map[uuid.UUID]float64, len(products))
	for _, product := range products {
		prices[product.ID] = product.Price
	}

	var missing []string
	for _, id := range ids {
		if _, ok := prices[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		list := strings.Join(missing, ", ")
		return nil, apperrors.Validation("Product(s) not found: "+list).WithKey(i18n.KeyOrderProductsMissing, list)
	}

	order := &models.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Status:        models.OrderStatusPending,
		UserID:        actingUserID,
		Items:         make([]models.OrderItem, 0, len(req.Items)),
	}
	if req.Status != nil {
		order.Status = *req.Status
	}

	for _, item := range req.Items {
		id := uuid.MustParse(item.ProductID)
		order.Total += prices[id] * float64(item.Quantity)
		order.Items = append(order.Items, models.OrderItem{ProductID: id, Quantity: item.Quantity})
	}

	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order insert failed")
		return nil, apperrors.Internal("failed to create order", err)
	}

	if s.ordersCreated != nil {
		s.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(order.Status))))
	}
	span.SetAttributes(attribute.String("order.id", order.ID.String()))

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total,
		"items":    len(order.Items),
	}).Info("Order created")

	return order, nil
}

// ListOrders returns every order newest first, or only ownerID's orders.
func (s *OrderService) ListOrders(ctx context.Context, ownerID *uuid.UUID) ([]models.Order, error) {
	var (
		orders []models.Order
		err    error
	)
	if ownerID != nil {
		orders, err = s.orders.FindByOwner(ctx, *ownerID)
	} else {
		orders, err = s.orders.List(ctx)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to list orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// UpdateOrderStatus accepts any transition between known statuses. Orders
// that are missing or belong to someone else are both reported as not found.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, ownerID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("Invalid order status").WithKey(i18n.KeyOrderInvalidStatus)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, orderNotFound(), "failed to load order")
	}
	if order.UserID == nil || *order.UserID != ownerID {
		return nil, orderNotFound()
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, notFoundOr(err, orderNotFound(), "failed to update order")
	}

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   status,
	}).Info("Order status updated")

	return updated, nil
}
