package repositories

import (
	"context"

	"catalog/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Category, int64, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	// GetByName finds the category whose name matches, ignoring case.
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id string, changes models.CategoryChanges) (*models.Category, error)
	// DeleteCascade removes the category and its id from every group in one
	// atomic step. It returns the deleted record and the ids of modified groups.
	DeleteCascade(ctx context.Context, id string) (*models.Category, []string, error)
}
