package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var (
	_ repository.NewsRepository    = (*newsRepository)(nil)
	_ repository.TourismRepository = (*tourismRepository)(nil)
)

type newsRepository struct {
	db *gorm.DB
}

func (r *newsRepository) Create(ctx context.Context, item *models.NewsItem) error {
	if item.PublishedAt.IsZero() {
		item.PublishedAt = time.Now()
	}
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *newsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&models.NewsItem{}, "id = ?", id))
}

func (r *newsRepository) ListLatest(ctx context.Context, limit int) ([]models.NewsItem, error) {
	var items []models.NewsItem
	err := r.db.WithContext(ctx).Order("published_at DESC").Limit(limit).Find(&items).Error
	return items, translate(err)
}

func (r *newsRepository) CountByType(ctx context.Context, newsType models.NewsType) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.NewsItem{}).Where("type = ?", newsType).Count(&total).Error
	return total, translate(err)
}

func (r *newsRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.NewsItem{}).Count(&total).Error
	return total, translate(err)
}

type tourismRepository struct {
	db *gorm.DB
}

func (r *tourismRepository) Create(ctx context.Context, spot *models.TourismSpot) error {
	return translate(r.db.WithContext(ctx).Create(spot).Error)
}

func (r *tourismRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&models.TourismSpot{}, "id = ?", id))
}

func (r *tourismRepository) ListLatest(ctx context.Context, limit int) ([]models.TourismSpot, error) {
	var spots []models.TourismSpot
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&spots).Error
	return spots, translate(err)
}

func (r *tourismRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.TourismSpot{}).Count(&total).Error
	return total, translate(err)
}
