package repositories

import (
	"context"

	"catalog/internal/models"
)

// GroupCategoryRepository defines the interface for group category data access.
// Returned groups always carry a non-nil Categories list in stored order.
type GroupCategoryRepository interface {
	List(ctx context.Context, q models.ListQuery) ([]models.GroupCategory, int64, error)
	GetByID(ctx context.Context, id string) (*models.GroupCategory, error)
	Create(ctx context.Context, group *models.GroupCategory) error
	Update(ctx context.Context, id string, changes models.GroupCategoryChanges) (*models.GroupCategory, error)
	Delete(ctx context.Context, id string) (*models.GroupCategory, error)
	// ListByCategory returns the groups whose list contains categoryID.
	ListByCategory(ctx context.Context, categoryID string) ([]models.GroupCategory, error)
}
