package repositories

import (
	"context"
	"fmt"

	"catalog/internal/database"
	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGroupCategoryRepository is a GORM implementation of GroupCategoryRepository.
// Category lists live in the group_category_categories table.
type GORMGroupCategoryRepository struct {
	db database.Provider
}

// NewGORMGroupCategoryRepository creates a new instance of GORMGroupCategoryRepository.
func NewGORMGroupCategoryRepository(db database.Provider) *GORMGroupCategoryRepository {
	return &GORMGroupCategoryRepository{db: db}
}

// List returns one page of groups and the total number of matches.
func (r *GORMGroupCategoryRepository) List(ctx context.Context, q models.ListQuery) ([]models.GroupCategory, int64, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, 0, err
	}
	q = q.Normalized()

	var total int64
	if err := db.Model(&models.GroupCategory{}).Scopes(searchScope(q.Search, "name")).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count group categories: %w", err)
	}
	groups := make([]models.GroupCategory, 0, q.Limit)
	err = db.Scopes(searchScope(q.Search, "name"), orderScope(q, namedSortColumns), pageScope(q)).
		Find(&groups).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list group categories: %w", err)
	}
	if err := loadMembers(db, groups); err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// GetByID retrieves a single group by its ID.
func (r *GORMGroupCategoryRepository) GetByID(ctx context.Context, id string) (*models.GroupCategory, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	group, err := findGroup(db, id)
	if err != nil {
		return nil, fmt.Errorf("group category with ID %s: %w", id, translate(err))
	}
	return group, nil
}

// Create inserts a group and its category list.
func (r *GORMGroupCategoryRepository) Create(ctx context.Context, group *models.GroupCategory) error {
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	group.NameKey = models.NameKey(group.Name)
	if group.Categories == nil {
		group.Categories = []string{}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.GroupCategory{}, group.NameKey, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return replaceMembers(tx, group.ID, group.Categories)
	})
	if err != nil {
		return fmt.Errorf("failed to create group category %q: %w", group.Name, translate(err))
	}
	return nil
}

// Update changes the name and/or replaces the category list of a group.
func (r *GORMGroupCategoryRepository) Update(ctx context.Context, id string, changes models.GroupCategoryChanges) (*models.GroupCategory, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var group *models.GroupCategory
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		if group, err = findGroup(tx, id); err != nil {
			return err
		}
		if changes.Name != nil {
			key := models.NameKey(*changes.Name)
			taken, err := nameTaken(tx, &models.GroupCategory{}, key, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateName
			}
			group.Name = *changes.Name
			group.NameKey = key
		}
		if changes.Categories != nil {
			if err := tx.Where("group_category_id = ?", id).Delete(&models.GroupCategoryMember{}).Error; err != nil {
				return err
			}
			if err := replaceMembers(tx, id, *changes.Categories); err != nil {
				return err
			}
			group.Categories = append([]string{}, *changes.Categories...)
		}
		return tx.Save(group).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update group category with ID %s: %w", id, translate(err))
	}
	return group, nil
}

// Delete removes a group and its category list.
func (r *GORMGroupCategoryRepository) Delete(ctx context.Context, id string) (*models.GroupCategory, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var group *models.GroupCategory
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		if group, err = findGroup(tx, id); err != nil {
			return err
		}
		if err := tx.Where("group_category_id = ?", id).Delete(&models.GroupCategoryMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.GroupCategory{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete group category with ID %s: %w", id, translate(err))
	}
	return group, nil
}

// ListByCategory returns the groups referencing categoryID, ordered by name.
func (r *GORMGroupCategoryRepository) ListByCategory(ctx context.Context, categoryID string) ([]models.GroupCategory, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	groups := make([]models.GroupCategory, 0)
	err = db.Joins("JOIN group_category_categories ON group_category_categories.group_category_id = group_categories.id").
		Where("group_category_categories.category_id = ?", categoryID).
		Order("group_categories.name_key ASC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find group categories for category %s: %w", categoryID, err)
	}
	if err := loadMembers(db, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func findGroup(tx *gorm.DB, id string) (*models.GroupCategory, error) {
	var group models.GroupCategory
	if err := tx.First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	groups := []models.GroupCategory{group}
	if err := loadMembers(tx, groups); err != nil {
		return nil, err
	}
	return &groups[0], nil
}

// loadMembers fills the Categories list of every group in place.
func loadMembers(tx *gorm.DB, groups []models.GroupCategory) error {
	if len(groups) == 0 {
		return nil
	}
	ids := make([]string, len(groups))
	index := make(map[string]int, len(groups))
	for i := range groups {
		ids[i] = groups[i].ID
		index[groups[i].ID] = i
		groups[i].Categories = []string{}
	}

	var members []models.GroupCategoryMember
	err := tx.Where("group_category_id IN ?", ids).
		Order("group_category_id").
		Order("position").
		Find(&members).Error
	if err != nil {
		return fmt.Errorf("failed to load group category members: %w", err)
	}
	for _, m := range members {
		i := index[m.GroupCategoryID]
		groups[i].Categories = append(groups[i].Categories, m.CategoryID)
	}
	return nil
}

// replaceMembers writes categoryIDs as the list of groupID. Existing rows must
// already be gone.
func replaceMembers(tx *gorm.DB, groupID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	var found int64
	if err := tx.Model(&models.Category{}).Where("id IN ?", categoryIDs).Count(&found).Error; err != nil {
		return err
	}
	if found != int64(len(categoryIDs)) {
		return ErrUnknownCategory
	}
	members := make([]models.GroupCategoryMember, len(categoryIDs))
	for i, categoryID := range categoryIDs {
		members[i] = models.GroupCategoryMember{
			GroupCategoryID: groupID,
			CategoryID:      categoryID,
			Position:        i,
		}
	}
	return tx.Create(&members).Error
}
