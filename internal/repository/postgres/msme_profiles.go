package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var _ repository.MsmeProfileRepository = (*msmeProfileRepository)(nil)

type msmeProfileRepository struct {
	db *gorm.DB
}

func (r *msmeProfileRepository) Create(ctx context.Context, profile *models.MsmeProfile) error {
	return translate(r.db.WithContext(ctx).Create(profile).Error)
}

func (r *msmeProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.MsmeProfile, error) {
	var profile models.MsmeProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *msmeProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.MsmeProfile, error) {
	var profile models.MsmeProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *msmeProfileRepository) UpsertByUserID(ctx context.Context, profile *models.MsmeProfile) (*models.MsmeProfile, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"store_name", "category", "description", "location", "distance_km", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return nil, translate(err)
	}

	// On conflict the generated id is discarded, so read back the stored row.
	return r.FindByUserID(ctx, profile.UserID)
}

func (r *msmeProfileRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MsmeStatus) (*models.MsmeProfile, error) {
	result := r.db.WithContext(ctx).Model(&models.MsmeProfile{}).
		Where("id = ?", id).
		Update("status", status)
	if err := affected(result); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *msmeProfileRepository) CountByStatus(ctx context.Context, status models.MsmeStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.MsmeProfile{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, translate(err)
}

func (r *msmeProfileRepository) ListPendingWithOwner(ctx context.Context, limit int) ([]repository.PendingProfile, error) {
	var profiles []models.MsmeProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", models.MsmeStatusPending).
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, translate(err)
	}

	out := make([]repository.PendingProfile, 0, len(profiles))
	for _, profile := range profiles {
		pending := repository.PendingProfile{Profile: profile}
		if profile.User != nil {
			pending.OwnerName = profile.User.Name
		}
		pending.Profile.User = nil
		out = append(out, pending)
	}
	return out, nil
}

func (r *msmeProfileRepository) CategoryBreakdown(ctx context.Context, status models.MsmeStatus) ([]repository.CategoryCount, error) {
	var counts []repository.CategoryCount
	err := r.db.WithContext(ctx).Model(&models.MsmeProfile{}).
		Select("category, COUNT(*) AS count").
		Where("status = ?", status).
		Group("category").
		Order("category").
		Scan(&counts).Error
	return counts, translate(err)
}

func (r *msmeProfileRepository) ListNearest(ctx context.Context, status models.MsmeStatus, limit int) ([]models.MsmeProfile, error) {
	var profiles []models.MsmeProfile
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("distance_km ASC").
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, translate(err)
}

func (r *msmeProfileRepository) List(ctx context.Context, filter repository.MsmeProfileFilter) ([]models.MsmeProfile, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MsmeProfile{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var profiles []models.MsmeProfile
	err := query.Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&profiles).Error
	return profiles, total, translate(err)
}

func (r *msmeProfileRepository) CreatedSince(ctx context.Context, status models.MsmeStatus, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).Model(&models.MsmeProfile{}).
		Where("status = ? AND created_at >= ?", status, since).
		Pluck("created_at", &times).Error
	return times, translate(err)
}
