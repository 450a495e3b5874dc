package services

import (
	"context"
	"strings"

	"catalog/internal/cache"
	"catalog/internal/events"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/validation"
	"catalog/pkg/apperror"
)

const (
	cacheKindCategory      = "category"
	cacheKindGroupCategory = "group_category"
	cacheKindProduct       = "product"
)

// CategoryService handles business logic related to categories, including
// the two-step cascade delete.
type CategoryService struct {
	repo     repositories.CategoryRepository
	groups   repositories.GroupCategoryRepository
	products repositories.ProductRepository
	deps     Deps
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, groups repositories.GroupCategoryRepository, products repositories.ProductRepository, deps Deps) *CategoryService {
	return &CategoryService{
		repo:     repo,
		groups:   groups,
		products: products,
		deps:     deps.withDefaults(),
	}
}

// List returns one page of categories.
func (s *CategoryService) List(ctx context.Context, q models.ListQuery) (models.Page[models.Category], error) {
	q = q.Normalized()
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return models.Page[models.Category]{}, categoryCodes.wrap(err, categoryCodes.fetch, "", "")
	}
	return models.Page[models.Category]{Items: items, Pagination: models.NewPagination(q.Page, q.Limit, total)}, nil
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, rawID string) (*models.Category, error) {
	id, err := s.deps.Validator.ID(validation.EntityCategory, rawID)
	if err != nil {
		return nil, err
	}
	key := cache.Key(cacheKindCategory, id)
	var cached models.Category
	if s.deps.cached(ctx, key, &cached) {
		return &cached, nil
	}
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, categoryCodes.wrap(err, categoryCodes.fetch, id, "")
	}
	s.deps.remember(ctx, key, category)
	return category, nil
}

// FindByName returns the category with the given name, ignoring case.
func (s *CategoryService) FindByName(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, categoryCodes.wrap(err, categoryCodes.fetch, name, name)
	}
	return category, nil
}

// Create validates rec and stores a new category.
func (s *CategoryService) Create(ctx context.Context, rec validation.Record) (*models.Category, error) {
	if err := s.deps.Validator.Category(rec, validation.Create); err != nil {
		return nil, err
	}
	category := &models.Category{Name: deref(stringField(rec, "name"))}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, categoryCodes.wrap(err, categoryCodes.create, "", category.Name)
	}
	s.deps.Events.Emit(events.CategoryCreated, category)
	return category, nil
}

// Update applies the fields present in rec to the category named by rec["_id"].
// A rename also relabels the products carrying the old name.
func (s *CategoryService) Update(ctx context.Context, rec validation.Record) (*models.Category, error) {
	id, err := s.deps.Validator.ID(validation.EntityCategory, rec["_id"])
	if err != nil {
		return nil, err
	}
	if err := s.deps.Validator.Category(rec, validation.Patch); err != nil {
		return nil, err
	}
	changes := models.CategoryChanges{Name: stringField(rec, "name")}
	if changes.IsEmpty() {
		return nil, apperror.Validation(apperror.CodeCategoryValidation, validation.EntityCategory, "", nil,
			"At least one field must be provided")
	}

	category, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, categoryCodes.wrap(err, categoryCodes.update, id, deref(changes.Name))
	}

	s.deps.refresh(ctx, cache.Key(cacheKindCategory, id), category)
	var keys []string
	if relabelled, err := s.products.ListByCategory(ctx, category.Name); err == nil {
		for _, p := range relabelled {
			keys = append(keys, cache.Key(cacheKindProduct, p.ID))
		}
	} else {
		s.deps.Logger.Warn().Err(err).Str("category", category.Name).Msg("failed to list relabelled products")
	}
	s.deps.forget(ctx, keys...)
	s.deps.Events.Emit(events.CategoryUpdated, category)
	return category, nil
}

// Delete runs the category deletion protocol. Without confirmed: true it only
// reports what a deletion would affect; nothing is written and nothing is
// remembered between calls. With confirmation the category is removed from
// every group and deleted in one step.
func (s *CategoryService) Delete(ctx context.Context, rec validation.Record) (*models.CategoryDeleteResult, error) {
	id, err := s.deps.Validator.ID(validation.EntityCategory, rec["_id"])
	if err != nil {
		return nil, err
	}
	if !confirmed(rec) {
		warning, err := s.deletionWarning(ctx, id)
		if err != nil {
			return nil, err
		}
		return &models.CategoryDeleteResult{Warning: warning}, nil
	}

	category, groupIDs, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return nil, categoryCodes.wrap(err, apperror.CodeCategoryCascadeRemovalFailed, id, "")
	}

	keys := []string{cache.Key(cacheKindCategory, id)}
	for _, gid := range groupIDs {
		keys = append(keys, cache.Key(cacheKindGroupCategory, gid))
	}
	s.deps.forget(ctx, keys...)

	s.deps.Logger.Info().
		Str("category_id", id).
		Int("modified_group_categories", len(groupIDs)).
		Msg("category deleted")
	s.deps.Events.Emit(events.CategoryDeleted, map[string]any{
		"category":                category,
		"modifiedGroupCategories": groupIDs,
	})

	return &models.CategoryDeleteResult{Deleted: &models.CategoryDeletion{
		Message:                 "Category deleted successfully",
		Category:                *category,
		ModifiedGroupCategories: len(groupIDs),
	}}, nil
}

func (s *CategoryService) deletionWarning(ctx context.Context, id string) (*models.CategoryDeletionWarning, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, categoryCodes.wrap(err, categoryCodes.fetch, id, "")
	}
	groups, err := s.groups.ListByCategory(ctx, id)
	if err != nil {
		return nil, categoryCodes.wrap(err, apperror.CodeWarningDisplayFailed, id, "")
	}
	products, err := s.products.ListByCategory(ctx, category.Name)
	if err != nil {
		return nil, categoryCodes.wrap(err, apperror.CodeWarningDisplayFailed, id, "")
	}

	warnings := models.DeletionWarnings{
		AffectedGroupCategories: len(groups),
		GroupCategoryNames:      make([]string, 0, len(groups)),
		AffectedProducts:        len(products),
		ProductNames:            make([]string, 0, len(products)),
	}
	for _, g := range groups {
		warnings.GroupCategoryNames = append(warnings.GroupCategoryNames, g.Name)
	}
	for _, p := range products {
		warnings.ProductNames = append(warnings.ProductNames, p.Name)
	}
	return &models.CategoryDeletionWarning{
		Category: models.CategoryRef{ID: category.ID, Name: category.Name},
		Warnings: warnings,
	}, nil
}
