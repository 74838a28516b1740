package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var _ repository.UserRepository = (*userRepository)(nil)

type userRepository struct {
	db *database
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if strings.EqualFold(existing.value.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}

	seq := r.db.stamp(&user.BaseModel)
	r.db.users[user.ID] = &row[models.User]{value: *user, seq: seq, created: user.CreatedAt}
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	existing, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := existing.value
	return &user, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, existing := range r.db.users {
		if strings.EqualFold(existing.value.Email, email) {
			user := existing.value
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return count(r.db.users, nil), nil
}

func (r *userRepository) CreatedSince(_ context.Context, since time.Time) ([]time.Time, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return createdSince(r.db.users, since, nil), nil
}
