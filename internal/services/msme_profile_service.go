// internal/services/msme_profile_service.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

type MsmeProfileService struct {
	profiles repository.MsmeProfileRepository
}

// UpdateMsmeProfileRequest carries the owner-editable fields. Status and
// rating are managed by admins and reviews.
type UpdateMsmeProfileRequest struct {
	StoreName   string   `json:"storeName" validate:"required,min=2"`
	Category    string   `json:"category" validate:"required,min=2"`
	Description string   `json:"description" validate:"required,min=10"`
	Location    string   `json:"location" validate:"required,min=2"`
	DistanceKm  *float64 `json:"distanceKm" validate:"required,gte=0"`
}

func NewMsmeProfileService(profiles repository.MsmeProfileRepository) *MsmeProfileService {
	return &MsmeProfileService{profiles: profiles}
}

func defaultProfile(userID uuid.UUID) *models.MsmeProfile {
	return &models.MsmeProfile{
		UserID:      userID,
		StoreName:   "My Store",
		Category:    "General",
		Description: "Describe your store",
		Location:    "Village Center",
		DistanceKm:  0.5,
		Status:      models.MsmeStatusPending,
	}
}

// GetProfile returns the caller's profile, creating a pending placeholder on
// first access.
func (s *MsmeProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.MsmeProfile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("failed to load MSME profile", err)
	}

	profile = defaultProfile(userID)
	if err := s.profiles.Create(ctx, profile); err != nil {
		// A concurrent request created it first.
		if errors.Is(err, repository.ErrDuplicate) {
			return s.GetProfile(ctx, userID)
		}
		return nil, apperrors.Internal("failed to create MSME profile", err)
	}

	logrus.WithField("user_id", userID).Info("MSME profile created with defaults")
	return profile, nil
}

func (s *MsmeProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateMsmeProfileRequest) (*models.MsmeProfile, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	profile, err := s.profiles.UpsertByUserID(ctx, &models.MsmeProfile{
		UserID:      userID,
		StoreName:   req.StoreName,
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
		DistanceKm:  *req.DistanceKm,
		Status:      models.MsmeStatusPending,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to save MSME profile", err)
	}

	return profile, nil
}
