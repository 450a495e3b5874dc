package repositories

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"catalog/internal/models"

	"github.com/google/uuid"
)

// MockGroupCategoryRepository is an in-memory implementation of GroupCategoryRepository.
type MockGroupCategoryRepository struct {
	store *MockStore
}

// NewMockGroupCategoryRepository creates a new instance of MockGroupCategoryRepository.
func NewMockGroupCategoryRepository(store *MockStore) *MockGroupCategoryRepository {
	return &MockGroupCategoryRepository{store: store}
}

func groupSortKey(g models.GroupCategory, field string) any {
	switch field {
	case "name":
		return g.Name
	case "updatedAt":
		return g.UpdatedAt
	default:
		return g.CreatedAt
	}
}

// List returns one page of groups.
func (r *MockGroupCategoryRepository) List(_ context.Context, q models.ListQuery) ([]models.GroupCategory, int64, error) {
	q = q.Normalized()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]models.GroupCategory, 0, len(r.store.groups))
	for _, g := range r.store.groups {
		if q.Search == "" || containsFold(g.Name, q.Search) {
			matches = append(matches, copyGroup(g))
		}
	}
	page, total := paginate(matches, q, groupSortKey, func(g models.GroupCategory) string { return g.ID })
	return page, total, nil
}

// GetByID returns a group by its ID.
func (r *MockGroupCategoryRepository) GetByID(_ context.Context, id string) (*models.GroupCategory, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	group, ok := r.store.groups[id]
	if !ok {
		return nil, fmt.Errorf("group category with ID %s: %w", id, ErrNotFound)
	}
	group = copyGroup(group)
	return &group, nil
}

// Create adds a new group.
func (r *MockGroupCategoryRepository) Create(_ context.Context, group *models.GroupCategory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	group.NameKey = models.NameKey(group.Name)
	if r.store.groupNameTaken(group.NameKey, "") {
		return fmt.Errorf("failed to create group category %q: %w", group.Name, ErrDuplicateName)
	}
	if !r.store.categoriesExist(group.Categories) {
		return fmt.Errorf("failed to create group category %q: %w", group.Name, ErrUnknownCategory)
	}
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.Categories == nil {
		group.Categories = []string{}
	}
	now := r.store.now()
	group.CreatedAt, group.UpdatedAt = now, now
	r.store.groups[group.ID] = copyGroup(*group)
	return nil
}

// Update modifies an existing group.
func (r *MockGroupCategoryRepository) Update(_ context.Context, id string, changes models.GroupCategoryChanges) (*models.GroupCategory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	group, ok := r.store.groups[id]
	if !ok {
		return nil, fmt.Errorf("failed to update group category with ID %s: %w", id, ErrNotFound)
	}
	group = copyGroup(group)
	if changes.Name != nil {
		key := models.NameKey(*changes.Name)
		if r.store.groupNameTaken(key, id) {
			return nil, fmt.Errorf("failed to update group category with ID %s: %w", id, ErrDuplicateName)
		}
		group.Name = *changes.Name
		group.NameKey = key
	}
	if changes.Categories != nil {
		if !r.store.categoriesExist(*changes.Categories) {
			return nil, fmt.Errorf("failed to update group category with ID %s: %w", id, ErrUnknownCategory)
		}
		group.Categories = append([]string{}, *changes.Categories...)
	}
	group.UpdatedAt = r.store.now()
	r.store.groups[id] = copyGroup(group)
	return &group, nil
}

// Delete removes a group by its ID.
func (r *MockGroupCategoryRepository) Delete(_ context.Context, id string) (*models.GroupCategory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	group, ok := r.store.groups[id]
	if !ok {
		return nil, fmt.Errorf("failed to delete group category with ID %s: %w", id, ErrNotFound)
	}
	delete(r.store.groups, id)
	return &group, nil
}

// ListByCategory returns the groups referencing categoryID, ordered by name.
func (r *MockGroupCategoryRepository) ListByCategory(_ context.Context, categoryID string) ([]models.GroupCategory, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	groups := make([]models.GroupCategory, 0)
	for _, g := range r.store.groups {
		if slices.Contains(g.Categories, categoryID) {
			groups = append(groups, copyGroup(g))
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].NameKey < groups[j].NameKey })
	return groups, nil
}
