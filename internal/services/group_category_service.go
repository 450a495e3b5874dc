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

// GroupCategoryService handles business logic related to group categories.
type GroupCategoryService struct {
	repo repositories.GroupCategoryRepository
	deps Deps
}

// NewGroupCategoryService creates a new GroupCategoryService.
func NewGroupCategoryService(repo repositories.GroupCategoryRepository, deps Deps) *GroupCategoryService {
	return &GroupCategoryService{repo: repo, deps: deps.withDefaults()}
}

// List returns one page of groups.
func (s *GroupCategoryService) List(ctx context.Context, q models.ListQuery) (models.Page[models.GroupCategory], error) {
	q = q.Normalized()
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return models.Page[models.GroupCategory]{}, groupCategoryCodes.wrap(err, groupCategoryCodes.fetch, "", "")
	}
	return models.Page[models.GroupCategory]{Items: items, Pagination: models.NewPagination(q.Page, q.Limit, total)}, nil
}

// Get returns a single group.
func (s *GroupCategoryService) Get(ctx context.Context, rawID string) (*models.GroupCategory, error) {
	id, err := s.deps.Validator.ID(validation.EntityGroupCategory, rawID)
	if err != nil {
		return nil, err
	}
	key := cache.Key(cacheKindGroupCategory, id)
	var cached models.GroupCategory
	if s.deps.cached(ctx, key, &cached) {
		if cached.Categories == nil {
			cached.Categories = []string{}
		}
		return &cached, nil
	}
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, groupCategoryCodes.wrap(err, groupCategoryCodes.fetch, id, "")
	}
	s.deps.remember(ctx, key, group)
	return group, nil
}

// Create validates rec and stores a new group.
func (s *GroupCategoryService) Create(ctx context.Context, rec validation.Record) (*models.GroupCategory, error) {
	if err := s.deps.Validator.GroupCategory(rec, validation.Create); err != nil {
		return nil, err
	}
	group := &models.GroupCategory{
		Name:       deref(stringField(rec, "name")),
		Categories: deref(stringsField(rec, "categories")),
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, groupCategoryCodes.wrap(err, groupCategoryCodes.create, "", group.Name)
	}
	s.deps.Events.Emit(events.GroupCategoryCreated, group)
	return group, nil
}

// Update applies the fields present in rec to the group named by rec["_id"].
func (s *GroupCategoryService) Update(ctx context.Context, rec validation.Record) (*models.GroupCategory, error) {
	id, err := s.deps.Validator.ID(validation.EntityGroupCategory, rec["_id"])
	if err != nil {
		return nil, err
	}
	if err := s.deps.Validator.GroupCategory(rec, validation.Patch); err != nil {
		return nil, err
	}
	changes := models.GroupCategoryChanges{
		Name:       stringField(rec, "name"),
		Categories: stringsField(rec, "categories"),
	}
	if changes.IsEmpty() {
		return nil, apperror.Validation(apperror.CodeGroupCategoryValidation, validation.EntityGroupCategory, "", nil,
			"At least one field must be provided")
	}
	return s.update(ctx, id, changes, groupCategoryCodes.update)
}

// AssignCategories replaces the category list of the group named by rec["_id"].
func (s *GroupCategoryService) AssignCategories(ctx context.Context, rec validation.Record) (*models.GroupCategory, error) {
	id, err := s.deps.Validator.ID(validation.EntityGroupCategory, rec["_id"])
	if err != nil {
		return nil, err
	}
	if err := s.deps.Validator.CategoryAssignment(rec); err != nil {
		return nil, err
	}
	changes := models.GroupCategoryChanges{Categories: stringsField(rec, "categories")}
	return s.update(ctx, id, changes, apperror.CodeGroupCategoryAssignmentFailed)
}

func (s *GroupCategoryService) update(ctx context.Context, id string, changes models.GroupCategoryChanges, failed apperror.Code) (*models.GroupCategory, error) {
	group, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, groupCategoryCodes.wrap(err, failed, id, deref(changes.Name))
	}
	s.deps.refresh(ctx, cache.Key(cacheKindGroupCategory, id), group)
	s.deps.Events.Emit(events.GroupCategoryUpdated, group)
	return group, nil
}

// Delete removes the group named by rec["_id"].
func (s *GroupCategoryService) Delete(ctx context.Context, rec validation.Record) (*models.GroupCategory, error) {
	id, err := s.deps.Validator.ID(validation.EntityGroupCategory, rec["_id"])
	if err != nil {
		return nil, err
	}
	group, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, groupCategoryCodes.wrap(err, groupCategoryCodes.delete, id, "")
	}
	s.deps.forget(ctx, cache.Key(cacheKindGroupCategory, id))
	s.deps.Events.Emit(events.GroupCategoryDeleted, group)
	return group, nil
}
