package repositories

import (
	"context"
	"fmt"
	"time"

	"catalog/internal/database"
	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db database.Provider
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db database.Provider) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// List returns one page of categories and the total number of matches.
func (r *GORMCategoryRepository) List(ctx context.Context, q models.ListQuery) ([]models.Category, int64, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, 0, err
	}
	q = q.Normalized()

	var total int64
	if err := db.Model(&models.Category{}).Scopes(searchScope(q.Search, "name")).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}
	categories := make([]models.Category, 0, q.Limit)
	err = db.Scopes(searchScope(q.Search, "name"), orderScope(q, namedSortColumns), pageScope(q)).
		Find(&categories).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("category with ID %s: %w", id, translate(err))
	}
	return &category, nil
}

// GetByName retrieves a category by its case-insensitive name key.
func (r *GORMCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := db.First(&category, "name_key = ?", models.NameKey(name)).Error; err != nil {
		return nil, fmt.Errorf("category %q: %w", name, translate(err))
	}
	return &category, nil
}

// Create inserts a new category after checking its name is free.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.NameKey = models.NameKey(category.Name)

	err = db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Category{}, category.NameKey, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}
		return tx.Create(category).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create category %q: %w", category.Name, translate(err))
	}
	return nil
}

// Update renames a category. Products labelled with the old name follow the rename.
func (r *GORMCategoryRepository) Update(ctx context.Context, id string, changes models.CategoryChanges) (*models.Category, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var category models.Category
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return err
		}
		if changes.Name == nil {
			return nil
		}
		key := models.NameKey(*changes.Name)
		taken, err := nameTaken(tx, &models.Category{}, key, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}
		oldName := category.Name
		category.Name = *changes.Name
		category.NameKey = key
		if err := tx.Save(&category).Error; err != nil {
			return err
		}
		if oldName == category.Name {
			return nil
		}
		return tx.Model(&models.Product{}).
			Where("LOWER(category) = ?", models.NameKey(oldName)).
			Update("category", category.Name).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update category with ID %s: %w", id, translate(err))
	}
	return &category, nil
}

// DeleteCascade deletes the category and detaches it from every group inside
// one transaction. The member foreign key rejects concurrent inserts that
// reference the category once it is gone.
func (r *GORMCategoryRepository) DeleteCascade(ctx context.Context, id string) (*models.Category, []string, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, nil, err
	}

	var (
		category models.Category
		groupIDs []string
	)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return err
		}
		err := tx.Model(&models.GroupCategoryMember{}).
			Where("category_id = ?", id).
			Distinct().
			Pluck("group_category_id", &groupIDs).Error
		if err != nil {
			return err
		}
		if len(groupIDs) > 0 {
			if err := tx.Where("category_id = ?", id).Delete(&models.GroupCategoryMember{}).Error; err != nil {
				return err
			}
			err := tx.Model(&models.GroupCategory{}).
				Where("id IN ?", groupIDs).
				Update("updated_at", time.Now().UTC()).Error
			if err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to delete category with ID %s: %w", id, translate(err))
	}
	if groupIDs == nil {
		groupIDs = []string{}
	}
	return &category, groupIDs, nil
}
