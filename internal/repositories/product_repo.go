package repositories

import (
	"context"

	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, changes models.ProductChanges) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
	// ListByCategory returns products whose label equals category, ignoring case.
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
}
