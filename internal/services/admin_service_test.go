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
	"github.com/karyadesa/karya-desa-backend/internal/repository"
	"github.com/karyadesa/karya-desa-backend/internal/repository/memory"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

var adminTestNow = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func newAdminService(store *repository.Store) *AdminService {
	notifications := NewNotificationService(store.Notifications)
	return NewAdminService(store.Users, store.MsmeProfiles, store.Orders, notifications).
		WithClock(func() time.Time { return adminTestNow })
}

func createUserAt(t *testing.T, store *repository.Store, name string, role models.UserRole, at time.Time) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: uuid.NewString() + "@example.com", Role: role}
	user.CreatedAt = at
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func createProfileAt(t *testing.T, store *repository.Store, owner *models.User, category string, status models.MsmeStatus, at time.Time) *models.MsmeProfile {
	t.Helper()
	profile := &models.MsmeProfile{
		UserID:      owner.ID,
		StoreName:   owner.Name + " Store",
		Category:    category,
		Description: "Village goods",
		Location:    "Village Center",
		Status:      status,
	}
	profile.CreatedAt = at
	require.NoError(t, store.MsmeProfiles.Create(context.Background(), profile))
	return profile
}

func TestDashboardEmptyStore(t *testing.T) {
	service := newAdminService(memory.NewStore())

	dashboard, err := service.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, AdminDashboardStats{}, dashboard.Stats)
	assert.NotNil(t, dashboard.VerificationRequests)
	assert.Empty(t, dashboard.VerificationRequests)
	assert.NotNil(t, dashboard.MsmeCategories)
	assert.Empty(t, dashboard.MsmeCategories)

	require.Len(t, dashboard.Growth, 6)
	for _, point := range dashboard.Growth {
		assert.Zero(t, point.Users)
		assert.Zero(t, point.Msmes)
		assert.Zero(t, point.Orders)
	}
}

func TestDashboardGrowthBucketsByYearAndMonth(t *testing.T) {
	store := memory.NewStore()
	service := newAdminService(store)
	ctx := context.Background()

	jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	nov := time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)
	lastYearJan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	createUserAt(t, store, "Old", models.UserRoleVillager, lastYearJan)
	createUserAt(t, store, "January", models.UserRoleVillager, jan)
	approvedOwner := createUserAt(t, store, "Approved", models.UserRoleMsme, nov)
	pendingOwner := createUserAt(t, store, "Pending", models.UserRoleMsme, nov)
	createProfileAt(t, store, approvedOwner, "Food", models.MsmeStatusApproved, nov)
	createProfileAt(t, store, pendingOwner, "Crafts", models.MsmeStatusPending, nov)

	order := &models.Order{CustomerName: "Budi", CustomerEmail: "budi@example.com", Total: 10}
	order.CreatedAt = adminTestNow.Add(-time.Hour)
	require.NoError(t, store.Orders.CreateWithItems(ctx, order))

	dashboard, err := service.GetDashboard(ctx)
	require.NoError(t, err)

	months := make([]string, 0, len(dashboard.Growth))
	for _, point := range dashboard.Growth {
		months = append(months, point.Month)
	}
	assert.Equal(t, []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}, months)

	assert.Equal(t, GrowthPoint{Month: "Nov", Users: 2, Msmes: 1}, dashboard.Growth[1])
	assert.Equal(t, GrowthPoint{Month: "Jan", Users: 1}, dashboard.Growth[3])
	assert.Equal(t, GrowthPoint{Month: "Mar", Orders: 1}, dashboard.Growth[5])

	assert.Equal(t, AdminDashboardStats{TotalUsers: 4, ActiveMsmes: 1, TotalOrders: 1, PendingRequests: 1}, dashboard.Stats)

	require.Len(t, dashboard.VerificationRequests, 1)
	assert.Equal(t, "Pending", dashboard.VerificationRequests[0].Owner)
	assert.Equal(t, "Crafts", dashboard.VerificationRequests[0].Category)

	assert.Equal(t, []MsmeCategoryCount{{Category: "Food", Count: 1}}, dashboard.MsmeCategories)
}

func TestPopulationHeuristic(t *testing.T) {
	empty := buildPopulation(0)
	assert.True(t, empty.Estimated)
	assert.NotEmpty(t, empty.Note)
	assert.Equal(t, []PopulationEntry{
		{Category: "Total Users", Value: "0", Change: "+0%"},
		{Category: "Households", Value: "1", Change: "+1.8%"},
		{Category: "Working Age", Value: "0", Change: "+3.1%"},
		{Category: "Students", Value: "0", Change: "+2.0%"},
	}, empty.Entries)

	large := buildPopulation(1000)
	assert.Equal(t, []PopulationEntry{
		{Category: "Total Users", Value: "1,000", Change: "+0.2%"},
		{Category: "Households", Value: "250", Change: "+1.8%"},
		{Category: "Working Age", Value: "620", Change: "+3.1%"},
		{Category: "Students", Value: "380", Change: "+2.0%"},
	}, large.Entries)
}

func TestUpdateMsmeStatusNotifiesOwner(t *testing.T) {
	store := memory.NewStore()
	service := newAdminService(store)
	ctx := context.Background()

	owner := createUserAt(t, store, "Sari", models.UserRoleMsme, adminTestNow)
	profile := createProfileAt(t, store, owner, "Food", models.MsmeStatusPending, adminTestNow)
	adminID := uuid.New()

	updated, err := service.UpdateMsmeStatus(ctx, profile.ID, adminID, models.MsmeStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.MsmeStatusApproved, updated.Status)

	visible, err := store.Notifications.ListVisible(ctx, owner.ID, models.UserRoleMsme, 15)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, owner.ID, *visible[0].TargetUserID)
	assert.Contains(t, visible[0].Message, "approved")

	_, err = service.UpdateMsmeStatus(ctx, profile.ID, adminID, "archived")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = service.UpdateMsmeStatus(ctx, uuid.New(), adminID, models.MsmeStatusRejected)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListMsmesPaginates(t *testing.T) {
	store := memory.NewStore()
	service := newAdminService(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		owner := createUserAt(t, store, "Owner", models.UserRoleMsme, adminTestNow)
		status := models.MsmeStatusApproved
		if i == 0 {
			status = models.MsmeStatusPending
		}
		createProfileAt(t, store, owner, "Food", status, adminTestNow.Add(time.Duration(i)*time.Minute))
	}

	page, total, err := service.ListMsmes(ctx, AdminMsmeFilter{PaginationParams: utils.PaginationParams{Page: 1, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	approved := models.MsmeStatusApproved
	page, total, err = service.ListMsmes(ctx, AdminMsmeFilter{
		PaginationParams: utils.PaginationParams{Page: 2, Limit: 1},
		Status:           &approved,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, models.MsmeStatusApproved, page[0].Status)

	invalid := models.MsmeStatus("archived")
	_, _, err = service.ListMsmes(ctx, AdminMsmeFilter{PaginationParams: utils.PaginationParams{Page: 1, Limit: 2}, Status: &invalid})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
