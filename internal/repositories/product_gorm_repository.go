package repositories

import (
	"context"
	"fmt"

	"catalog/internal/database"
	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db database.Provider
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db database.Provider) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

func productFilters(q models.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = searchScope(q.Search, "name", "category")(db)
		if q.Category != "" {
			db = db.Where("LOWER(category) = ?", models.NameKey(q.Category))
		}
		if q.MinPrice != nil {
			db = db.Where("price >= ?", *q.MinPrice)
		}
		if q.MaxPrice != nil {
			db = db.Where("price <= ?", *q.MaxPrice)
		}
		return db
	}
}

// List returns one page of products and the total number of matches.
func (r *GORMProductRepository) List(ctx context.Context, q models.ListQuery) ([]models.Product, int64, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, 0, err
	}
	q = q.Normalized()

	var total int64
	if err := db.Model(&models.Product{}).Scopes(productFilters(q)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	products := make([]models.Product, 0, q.Limit)
	err = db.Scopes(productFilters(q), orderScope(q, productSortColumns), pageScope(q)).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("product with ID %s: %w", id, translate(err))
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.NameKey = models.NameKey(product.Name)

	err = db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Product{}, product.NameKey, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}
		return tx.Create(product).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create product %q: %w", product.Name, translate(err))
	}
	return nil
}

// Update applies a partial update to an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, id string, changes models.ProductChanges) (*models.Product, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var product models.Product
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		if changes.Name != nil {
			taken, err := nameTaken(tx, &models.Product{}, models.NameKey(*changes.Name), id)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateName
			}
		}
		changes.Apply(&product)
		return tx.Save(&product).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, translate(err))
	}
	return &product, nil
}

// Delete deletes a product by its ID and returns the removed record.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var product models.Product
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %s: %w", id, translate(err))
	}
	return &product, nil
}

// ListByCategory returns the products labelled with category, ordered by name.
func (r *GORMProductRepository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0)
	err = db.Where("LOWER(category) = ?", models.NameKey(category)).
		Order("name_key ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products for category %q: %w", category, err)
	}
	return products, nil
}
