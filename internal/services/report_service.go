// internal/services/report_service.go
package services

import (
	"context"
	"time"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

type ReportService struct {
	orders repository.OrderRepository
}

type SalesSummary struct {
	TotalRevenue float64    `json:"totalRevenue"`
	OrdersCount  int64      `json:"ordersCount"`
	LastOrderAt  *time.Time `json:"lastOrderAt"`
}

func NewReportService(orders repository.OrderRepository) *ReportService {
	return &ReportService{orders: orders}
}

func (s *ReportService) SalesSummary(ctx context.Context) (*SalesSummary, error) {
	summary, err := s.orders.SalesSummary(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to summarise sales", err)
	}

	return &SalesSummary{
		TotalRevenue: summary.TotalRevenue,
		OrdersCount:  summary.OrdersCount,
		LastOrderAt:  summary.LastOrderAt,
	}, nil
}
