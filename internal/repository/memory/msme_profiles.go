package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var _ repository.MsmeProfileRepository = (*msmeProfileRepository)(nil)

type msmeProfileRepository struct {
	db *database
}

func (r *msmeProfileRepository) Create(_ context.Context, profile *models.MsmeProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.findByUserLocked(profile.UserID) != nil {
		return repository.ErrDuplicate
	}
	r.insertLocked(profile)
	return nil
}

func (r *msmeProfileRepository) FindByID(_ context.Context, id uuid.UUID) (*models.MsmeProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	existing, ok := r.db.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	profile := existing.value
	return &profile, nil
}

func (r *msmeProfileRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*models.MsmeProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	existing := r.findByUserLocked(userID)
	if existing == nil {
		return nil, repository.ErrNotFound
	}
	profile := existing.value
	return &profile, nil
}

func (r *msmeProfileRepository) UpsertByUserID(_ context.Context, profile *models.MsmeProfile) (*models.MsmeProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing := r.findByUserLocked(profile.UserID)
	if existing == nil {
		r.insertLocked(profile)
		saved := *profile
		return &saved, nil
	}

	existing.value.StoreName = profile.StoreName
	existing.value.Category = profile.Category
	existing.value.Description = profile.Description
	existing.value.Location = profile.Location
	existing.value.DistanceKm = profile.DistanceKm
	existing.value.UpdatedAt = r.db.now()

	saved := existing.value
	return &saved, nil
}

func (r *msmeProfileRepository) UpdateStatus(_ context.Context, id uuid.UUID, status models.MsmeStatus) (*models.MsmeProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	existing.value.Status = status
	existing.value.UpdatedAt = r.db.now()

	saved := existing.value
	return &saved, nil
}

func (r *msmeProfileRepository) CountByStatus(_ context.Context, status models.MsmeStatus) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return count(r.db.profiles, hasStatus(status)), nil
}

func (r *msmeProfileRepository) ListPendingWithOwner(_ context.Context, limit int) ([]repository.PendingProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	profiles := firstN(newestFirst(r.db.profiles, hasStatus(models.MsmeStatusPending)), limit)
	out := make([]repository.PendingProfile, 0, len(profiles))
	for _, profile := range profiles {
		pending := repository.PendingProfile{Profile: profile}
		if owner, ok := r.db.users[profile.UserID]; ok {
			pending.OwnerName = owner.value.Name
		}
		out = append(out, pending)
	}
	return out, nil
}

func (r *msmeProfileRepository) CategoryBreakdown(_ context.Context, status models.MsmeStatus) ([]repository.CategoryCount, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	counts := map[string]int64{}
	for _, existing := range r.db.profiles {
		if existing.value.Status == status {
			counts[existing.value.Category]++
		}
	}

	out := make([]repository.CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, repository.CategoryCount{Category: category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *msmeProfileRepository) ListNearest(_ context.Context, status models.MsmeStatus, limit int) ([]models.MsmeProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	profiles := newestFirst(r.db.profiles, hasStatus(status))
	sort.SliceStable(profiles, func(i, j int) bool { return profiles[i].DistanceKm < profiles[j].DistanceKm })
	return firstN(profiles, limit), nil
}

func (r *msmeProfileRepository) List(_ context.Context, filter repository.MsmeProfileFilter) ([]models.MsmeProfile, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var keep func(*models.MsmeProfile) bool
	if filter.Status != nil {
		keep = hasStatus(*filter.Status)
	}
	profiles := newestFirst(r.db.profiles, keep)
	total := int64(len(profiles))

	if filter.Offset >= len(profiles) {
		return []models.MsmeProfile{}, total, nil
	}
	return firstN(profiles[filter.Offset:], filter.Limit), total, nil
}

func (r *msmeProfileRepository) CreatedSince(_ context.Context, status models.MsmeStatus, since time.Time) ([]time.Time, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return createdSince(r.db.profiles, since, hasStatus(status)), nil
}

func (r *msmeProfileRepository) findByUserLocked(userID uuid.UUID) *row[models.MsmeProfile] {
	for _, existing := range r.db.profiles {
		if existing.value.UserID == userID {
			return existing
		}
	}
	return nil
}

func (r *msmeProfileRepository) insertLocked(profile *models.MsmeProfile) {
	seq := r.db.stamp(&profile.BaseModel)
	r.db.profiles[profile.ID] = &row[models.MsmeProfile]{value: *profile, seq: seq, created: profile.CreatedAt}
}

func hasStatus(status models.MsmeStatus) func(*models.MsmeProfile) bool {
	return func(p *models.MsmeProfile) bool {
		return p.Status == status
	}
}
