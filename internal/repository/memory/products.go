package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

var _ repository.ProductRepository = (*productRepository)(nil)

type productRepository struct {
	db *database
}

func (r *productRepository) Create(_ context.Context, product *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	seq := r.db.stamp(&product.BaseModel)
	r.db.products[product.ID] = &row[models.Product]{value: cloneProduct(*product), seq: seq, created: product.CreatedAt}
	return nil
}

func (r *productRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	existing, ok := r.db.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	product := cloneProduct(existing.value)
	return &product, nil
}

func (r *productRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	seen := map[uuid.UUID]bool{}
	out := []models.Product{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if existing, ok := r.db.products[id]; ok {
			out = append(out, cloneProduct(existing.value))
		}
	}
	return out, nil
}

func (r *productRepository) List(_ context.Context) ([]models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return cloneProducts(newestFirst(r.db.products, nil)), nil
}

func (r *productRepository) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return cloneProducts(newestFirst(r.db.products, func(p *models.Product) bool {
		return p.OwnerID != nil && *p.OwnerID == ownerID
	})), nil
}

func (r *productRepository) Update(_ context.Context, product *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.products[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	product.CreatedAt = existing.value.CreatedAt
	product.UpdatedAt = r.db.now()
	existing.value = cloneProduct(*product)
	return nil
}

func (r *productRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.products, id)
	return nil
}

func (r *productRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return count(r.db.products, nil), nil
}

func cloneProduct(p models.Product) models.Product {
	if p.OwnerID != nil {
		owner := *p.OwnerID
		p.OwnerID = &owner
	}
	return p
}

func cloneProducts(list []models.Product) []models.Product {
	for i := range list {
		list[i] = cloneProduct(list[i])
	}
	return list
}
