package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository/memory"
)

func TestNotificationVisibilityByRole(t *testing.T) {
	service := NewNotificationService(memory.NewStore().Notifications)
	ctx := context.Background()
	admin := uuid.New()
	villager := uuid.New()

	requests := []*NotificationRequest{
		{Title: "Village meeting", Message: "Everyone is welcome", Type: models.NotificationTypeAnnouncement},
		{Title: "MSME training", Message: "Bookkeeping workshop", Type: models.NotificationTypeSystem, TargetRole: ptr(models.UserRoleMsme)},
		{Title: "Your parcel", Message: "Ready for pickup", Type: models.NotificationTypeOrder, TargetUserID: &villager},
	}
	for _, req := range requests {
		_, err := service.Create(ctx, admin, req)
		require.NoError(t, err)
	}

	visible, err := service.List(ctx, villager, models.UserRoleVillager)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, "Your parcel", visible[0].Title)
	assert.Equal(t, "Village meeting", visible[1].Title)

	msme, err := service.List(ctx, uuid.New(), models.UserRoleMsme)
	require.NoError(t, err)
	assert.Len(t, msme, 2)
}

func TestNotificationListIsCapped(t *testing.T) {
	service := NewNotificationService(memory.NewStore().Notifications)
	ctx := context.Background()

	for i := 0; i < NotificationListLimit+5; i++ {
		_, err := service.Create(ctx, uuid.New(), &NotificationRequest{
			Title: "Broadcast", Message: "Hello village", Type: models.NotificationTypeSystem,
		})
		require.NoError(t, err)
	}

	visible, err := service.List(ctx, uuid.New(), models.UserRoleVillager)
	require.NoError(t, err)
	assert.Len(t, visible, NotificationListLimit)
}

func TestNotificationValidation(t *testing.T) {
	service := NewNotificationService(memory.NewStore().Notifications)

	_, err := service.Create(context.Background(), uuid.New(), &NotificationRequest{
		Title: "Hi", Message: "Hey", Type: "spam", TargetRole: ptr(models.UserRole("mayor")),
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestMarkReadOnlyAffectsOwnNotifications(t *testing.T) {
	service := NewNotificationService(memory.NewStore().Notifications)
	ctx := context.Background()
	userID := uuid.New()

	mine, err := service.Create(ctx, uuid.New(), &NotificationRequest{
		Title: "Your order", Message: "Order shipped", Type: models.NotificationTypeOrder, TargetUserID: &userID,
	})
	require.NoError(t, err)
	broadcast, err := service.Create(ctx, uuid.New(), &NotificationRequest{
		Title: "Broadcast", Message: "Hello village", Type: models.NotificationTypeSystem,
	})
	require.NoError(t, err)

	require.NoError(t, service.MarkRead(ctx, mine.ID, userID))
	require.NoError(t, service.MarkRead(ctx, broadcast.ID, userID))
	require.NoError(t, service.MarkRead(ctx, uuid.New(), userID))

	visible, err := service.List(ctx, userID, models.UserRoleVillager)
	require.NoError(t, err)
	for _, n := range visible {
		if n.ID == mine.ID {
			assert.True(t, n.Read)
		} else {
			assert.False(t, n.Read)
		}
	}
}

func TestSalesSummary(t *testing.T) {
	store := memory.NewStore()
	service := NewReportService(store.Orders)
	ctx := context.Background()

	empty, err := service.SalesSummary(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalRevenue)
	assert.Zero(t, empty.OrdersCount)
	assert.Nil(t, empty.LastOrderAt)

	last := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i, total := range []float64{12.5, 20} {
		order := &models.Order{CustomerName: "Budi", CustomerEmail: "budi@example.com", Total: total}
		order.CreatedAt = last.AddDate(0, 0, -i)
		require.NoError(t, store.Orders.CreateWithItems(ctx, order))
	}

	summary, err := service.SalesSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 32.5, summary.TotalRevenue)
	assert.Equal(t, int64(2), summary.OrdersCount)
	require.NotNil(t, summary.LastOrderAt)
	assert.True(t, summary.LastOrderAt.Equal(last))
}
