package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository/memory"
)

func TestGetProfileCreatesDefaultsOnce(t *testing.T) {
	store := memory.NewStore()
	service := NewMsmeProfileService(store.MsmeProfiles)
	ctx := context.Background()
	userID := uuid.New()

	profile, err := service.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "My Store", profile.StoreName)
	assert.Equal(t, "General", profile.Category)
	assert.Equal(t, "Describe your store", profile.Description)
	assert.Equal(t, "Village Center", profile.Location)
	assert.Equal(t, 0.5, profile.DistanceKm)
	assert.Equal(t, models.MsmeStatusPending, profile.Status)

	again, err := service.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)

	count, err := store.MsmeProfiles.CountByStatus(ctx, models.MsmeStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpdateProfileKeepsStatus(t *testing.T) {
	store := memory.NewStore()
	service := NewMsmeProfileService(store.MsmeProfiles)
	ctx := context.Background()
	userID := uuid.New()

	req := &UpdateMsmeProfileRequest{
		StoreName:   "Warung Sari",
		Category:    "Food",
		Description: "Home cooked village meals",
		Location:    "East Hamlet",
		DistanceKm:  ptr(0.0),
	}
	created, err := service.UpdateProfile(ctx, userID, req)
	require.NoError(t, err)
	assert.Equal(t, models.MsmeStatusPending, created.Status)
	assert.Equal(t, 0.0, created.DistanceKm)

	_, err = store.MsmeProfiles.UpdateStatus(ctx, created.ID, models.MsmeStatusApproved)
	require.NoError(t, err)

	req.StoreName = "Warung Sari Baru"
	updated, err := service.UpdateProfile(ctx, userID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Warung Sari Baru", updated.StoreName)
	assert.Equal(t, models.MsmeStatusApproved, updated.Status)
}

func TestUpdateProfileValidation(t *testing.T) {
	service := NewMsmeProfileService(memory.NewStore().MsmeProfiles)

	_, err := service.UpdateProfile(context.Background(), uuid.New(), &UpdateMsmeProfileRequest{
		StoreName:   "W",
		Category:    "Food",
		Description: "short",
		Location:    "East",
		DistanceKm:  ptr(-1.0),
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = service.UpdateProfile(context.Background(), uuid.New(), &UpdateMsmeProfileRequest{
		StoreName:   "Warung",
		Category:    "Food",
		Description: "Home cooked village meals",
		Location:    "East",
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
