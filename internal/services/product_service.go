// internal/services/product_service.go
package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

type ProductService struct {
	products repository.ProductRepository
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Description string   `json:"description" validate:"required,min=4"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,min=2"`
}

// UpdateProductRequest is a partial update; nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=2"`
	Description *string  `json:"description" validate:"omitnil,min=4"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Stock       *int     `json:"stock" validate:"omitnil,gte=0"`
	Category    *string  `json:"category" validate:"omitnil,min=2"`
}

func (r *UpdateProductRequest) empty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil && r.Stock == nil && r.Category == nil
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func productNotFound() *apperrors.Error {
	return apperrors.NotFound("Product not found").WithKey(i18n.KeyProductNotFound)
}

// ListProducts returns the catalogue newest first, or only ownerID's
// products when an owner is given.
func (s *ProductService) ListProducts(ctx context.Context, ownerID *uuid.UUID) ([]models.Product, error) {
	var (
		products []models.Product
		err      error
	)
	if ownerID != nil {
		products, err = s.products.FindByOwner(ctx, *ownerID)
	} else {
		products, err = s.products.List(ctx)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to list products", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest, ownerID *uuid.UUID) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Category:    req.Category,
		OwnerID:     ownerID,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.Internal("failed to create product", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"owner_id":   ownerID,
	}).Info("Product created")

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id, ownerID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if req.empty() {
		return nil, apperrors.Validation("Provide at least one field to update").WithKey(i18n.KeyProductEmptyUpdate)
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.ownedProduct(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, notFoundOr(err, productNotFound(), "failed to update product")
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id, ownerID uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return notFoundOr(err, productNotFound(), "failed to delete product")
	}

	logrus.WithField("product_id", id).Info("Product deleted")
	return nil
}

// ownedProduct loads a product and hides it from anyone but its owner.
func (s *ProductService) ownedProduct(ctx context.Context, id, ownerID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, productNotFound(), "failed to load product")
	}
	if product.OwnerID == nil || *product.OwnerID != ownerID {
		return nil, productNotFound()
	}
	return product, nil
}
