package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var (
	_ repository.NewsRepository    = (*newsRepository)(nil)
	_ repository.TourismRepository = (*tourismRepository)(nil)
)

type newsRepository struct {
	db *database
}

func (r *newsRepository) Create(_ context.Context, item *models.NewsItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	seq := r.db.stamp(&item.BaseModel)
	if item.PublishedAt.IsZero() {
		item.PublishedAt = item.CreatedAt
	}
	r.db.news[item.ID] = &row[models.NewsItem]{value: *item, seq: seq, created: item.CreatedAt}
	return nil
}

func (r *newsRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.news[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.news, id)
	return nil
}

func (r *newsRepository) ListLatest(_ context.Context, limit int) ([]models.NewsItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := newestFirst(r.db.news, nil)
	sort.SliceStable(items, func(i, j int) bool { return items[i].PublishedAt.After(items[j].PublishedAt) })
	return firstN(items, limit), nil
}

func (r *newsRepository) CountByType(_ context.Context, newsType models.NewsType) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return count(r.db.news, func(n *models.NewsItem) bool { return n.Type == newsType }), nil
}

func (r *newsRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return count(r.db.news, nil), nil
}

type tourismRepository struct {
	db *database
}

func (r *tourismRepository) Create(_ context.Context, spot *models.TourismSpot) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	seq := r.db.stamp(&spot.BaseModel)
	r.db.tourism[spot.ID] = &row[models.TourismSpot]{value: *spot, seq: seq, created: spot.CreatedAt}
	return nil
}

func (r *tourismRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.tourism[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.tourism, id)
	return nil
}

func (r *tourismRepository) ListLatest(_ context.Context, limit int) ([]models.TourismSpot, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return firstN(newestFirst(r.db.tourism, nil), limit), nil
}

func (r *tourismRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return count(r.db.tourism, nil), nil
}
