package services

import (
	"context"

	"catalog/internal/cache"
	"catalog/internal/events"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/validation"
	"catalog/pkg/apperror"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
	deps Deps
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, deps Deps) *ProductService {
	return &ProductService{repo: repo, deps: deps.withDefaults()}
}

// List returns one page of products.
func (s *ProductService) List(ctx context.Context, q models.ListQuery) (models.Page[models.Product], error) {
	q = q.Normalized()
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return models.Page[models.Product]{}, productCodes.wrap(err, productCodes.fetch, "", "")
	}
	return models.Page[models.Product]{Items: items, Pagination: models.NewPagination(q.Page, q.Limit, total)}, nil
}

// Get returns a single product.
func (s *ProductService) Get(ctx context.Context, rawID string) (*models.Product, error) {
	id, err := s.deps.Validator.ID(validation.EntityProduct, rawID)
	if err != nil {
		return nil, err
	}
	key := cache.Key(cacheKindProduct, id)
	var cached models.Product
	if s.deps.cached(ctx, key, &cached) {
		return &cached, nil
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, productCodes.wrap(err, productCodes.fetch, id, "")
	}
	s.deps.remember(ctx, key, product)
	return product, nil
}

// Create validates rec and stores a new product.
func (s *ProductService) Create(ctx context.Context, rec validation.Record) (*models.Product, error) {
	if err := s.deps.Validator.Product(rec, validation.Create); err != nil {
		return nil, err
	}
	product := &models.Product{
		Name:     deref(stringField(rec, "name")),
		Category: deref(stringField(rec, "category")),
		Price:    deref(floatField(rec, "price")),
		Image:    deref(stringField(rec, "image")),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, productCodes.wrap(err, productCodes.create, "", product.Name)
	}
	s.deps.Events.Emit(events.ProductCreated, product)
	return product, nil
}

// Update applies the fields present in rec to the product named by rec["_id"].
func (s *ProductService) Update(ctx context.Context, rec validation.Record) (*models.Product, error) {
	id, err := s.deps.Validator.ID(validation.EntityProduct, rec["_id"])
	if err != nil {
		return nil, err
	}
	if err := s.deps.Validator.Product(rec, validation.Patch); err != nil {
		return nil, err
	}
	changes := models.ProductChanges{
		Name:     stringField(rec, "name"),
		Category: stringField(rec, "category"),
		Price:    floatField(rec, "price"),
		Image:    stringField(rec, "image"),
	}
	if changes.IsEmpty() {
		return nil, apperror.Validation(apperror.CodeProductValidation, validation.EntityProduct, "", nil,
			"At least one field must be provided")
	}
	product, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, productCodes.wrap(err, productCodes.update, id, deref(changes.Name))
	}
	s.deps.refresh(ctx, cache.Key(cacheKindProduct, id), product)
	s.deps.Events.Emit(events.ProductUpdated, product)
	return product, nil
}

// Delete removes the product named by rec["_id"].
func (s *ProductService) Delete(ctx context.Context, rec validation.Record) (*models.Product, error) {
	id, err := s.deps.Validator.ID(validation.EntityProduct, rec["_id"])
	if err != nil {
		return nil, err
	}
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, productCodes.wrap(err, productCodes.delete, id, "")
	}
	s.deps.forget(ctx, cache.Key(cacheKindProduct, id))
	s.deps.Events.Emit(events.ProductDeleted, product)
	return product, nil
}
