package repositories

import (
	"context"
	"fmt"

	"catalog/internal/models"

	"github.com/google/uuid"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	store *MockStore
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository(store *MockStore) *MockCategoryRepository {
	return &MockCategoryRepository{store: store}
}

func categorySortKey(c models.Category, field string) any {
	switch field {
	case "name":
		return c.Name
	case "updatedAt":
		return c.UpdatedAt
	default:
		return c.CreatedAt
	}
}

// List returns one page of categories.
func (r *MockCategoryRepository) List(_ context.Context, q models.ListQuery) ([]models.Category, int64, error) {
	q = q.Normalized()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]models.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		if q.Search == "" || containsFold(c.Name, q.Search) {
			matches = append(matches, c)
		}
	}
	page, total := paginate(matches, q, categorySortKey, func(c models.Category) string { return c.ID })
	return page, total, nil
}

// GetByID returns a category by its ID.
func (r *MockCategoryRepository) GetByID(_ context.Context, id string) (*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	category, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	return &category, nil
}

// GetByName returns the category whose name key matches name.
func (r *MockCategoryRepository) GetByName(_ context.Context, name string) (*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	key := models.NameKey(name)
	for _, c := range r.store.categories {
		if c.NameKey == key {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", name, ErrNotFound)
}

// Create adds a new category.
func (r *MockCategoryRepository) Create(_ context.Context, category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category.NameKey = models.NameKey(category.Name)
	if r.store.categoryNameTaken(category.NameKey, "") {
		return fmt.Errorf("failed to create category %q: %w", category.Name, ErrDuplicateName)
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	now := r.store.now()
	category.CreatedAt, category.UpdatedAt = now, now
	r.store.categories[category.ID] = *category
	return nil
}

// Update renames a category and relabels its products.
func (r *MockCategoryRepository) Update(_ context.Context, id string, changes models.CategoryChanges) (*models.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("failed to update category with ID %s: %w", id, ErrNotFound)
	}
	if changes.Name == nil {
		return &category, nil
	}
	key := models.NameKey(*changes.Name)
	if r.store.categoryNameTaken(key, id) {
		return nil, fmt.Errorf("failed to update category with ID %s: %w", id, ErrDuplicateName)
	}
	oldKey := category.NameKey
	oldName := category.Name
	category.Name = *changes.Name
	category.NameKey = key
	category.UpdatedAt = r.store.now()
	r.store.categories[id] = category

	if oldName != category.Name {
		for pid, p := range r.store.products {
			if models.NameKey(p.Category) == oldKey {
				p.Category = category.Name
				p.UpdatedAt = category.UpdatedAt
				r.store.products[pid] = p
			}
		}
	}
	return &category, nil
}

// DeleteCascade removes the category and detaches it from every group.
func (r *MockCategoryRepository) DeleteCascade(_ context.Context, id string) (*models.Category, []string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category, ok := r.store.categories[id]
	if !ok {
		return nil, nil, fmt.Errorf("failed to delete category with ID %s: %w", id, ErrNotFound)
	}
	now := r.store.now()
	groupIDs := []string{}
	for gid, g := range r.store.groups {
		kept := make([]string, 0, len(g.Categories))
		for _, cid := range g.Categories {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		if len(kept) == len(g.Categories) {
			continue
		}
		g.Categories = kept
		g.UpdatedAt = now
		r.store.groups[gid] = g
		groupIDs = append(groupIDs, gid)
	}
	delete(r.store.categories, id)
	return &category, groupIDs, nil
}
