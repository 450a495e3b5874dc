package repositories

import (
	"context"
	"fmt"
	"sort"

	"catalog/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	store *MockStore
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository(store *MockStore) *MockProductRepository {
	return &MockProductRepository{store: store}
}

func productSortKey(p models.Product, field string) any {
	switch field {
	case "name":
		return p.Name
	case "category":
		return p.Category
	case "price":
		return p.Price
	case "updatedAt":
		return p.UpdatedAt
	default:
		return p.CreatedAt
	}
}

func productMatches(p models.Product, q models.ListQuery) bool {
	if q.Search != "" && !containsFold(p.Name, q.Search) && !containsFold(p.Category, q.Search) {
		return false
	}
	if q.Category != "" && models.NameKey(p.Category) != models.NameKey(q.Category) {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

// List returns one page of products.
func (r *MockProductRepository) List(_ context.Context, q models.ListQuery) ([]models.Product, int64, error) {
	q = q.Normalized()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := make([]models.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if productMatches(p, q) {
			matches = append(matches, p)
		}
	}
	page, total := paginate(matches, q, productSortKey, func(p models.Product) string { return p.ID })
	return page, total, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product.NameKey = models.NameKey(product.Name)
	if r.store.productNameTaken(product.NameKey, "") {
		return fmt.Errorf("failed to create product %q: %w", product.Name, ErrDuplicateName)
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := r.store.now()
	product.CreatedAt, product.UpdatedAt = now, now
	r.store.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(_ context.Context, id string, changes models.ProductChanges) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, ErrNotFound)
	}
	if changes.Name != nil && r.store.productNameTaken(models.NameKey(*changes.Name), id) {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, ErrDuplicateName)
	}
	changes.Apply(&product)
	product.UpdatedAt = r.store.now()
	r.store.products[id] = product
	return &product, nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(_ context.Context, id string) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("failed to delete product with ID %s: %w", id, ErrNotFound)
	}
	delete(r.store.products, id)
	return &product, nil
}

// ListByCategory returns the products labelled with category, ordered by name.
func (r *MockProductRepository) ListByCategory(_ context.Context, category string) ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	key := models.NameKey(category)
	products := make([]models.Product, 0)
	for _, p := range r.store.products {
		if models.NameKey(p.Category) == key {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].NameKey < products[j].NameKey })
	return products, nil
}
