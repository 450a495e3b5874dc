package models

import "time"

// GroupCategory bundles an ordered list of categories under one name.
type GroupCategory struct {
	ID         string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	NameKey    string    `json:"-" gorm:"size:100;not null;uniqueIndex:idx_group_categories_name_key"`
	Categories []string  `json:"categories" gorm:"-"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// GroupCategoryMember is one entry of a group's category list.
type GroupCategoryMember struct {
	GroupCategoryID string         `gorm:"primaryKey;type:varchar(36)"`
	CategoryID      string         `gorm:"primaryKey;type:varchar(36);index:idx_group_category_categories_category"`
	Position        int            `gorm:"not null"`
	GroupCategory   *GroupCategory `gorm:"foreignKey:GroupCategoryID;constraint:OnDelete:CASCADE"`
	Category        *Category      `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default join table name.
func (GroupCategoryMember) TableName() string { return "group_category_categories" }

// GroupCategoryChanges holds the fields of a partial group category update.
// A non-nil Categories replaces the whole list.
type GroupCategoryChanges struct {
	Name       *string
	Categories *[]string
}

// IsEmpty reports whether no field is set.
func (c GroupCategoryChanges) IsEmpty() bool { return c.Name == nil && c.Categories == nil }
