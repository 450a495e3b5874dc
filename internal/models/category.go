package models

import (
	"strings"
	"time"
)

// Category represents a product category.
type Category struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	NameKey   string    `json:"-" gorm:"size:50;not null;uniqueIndex:idx_categories_name_key"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryChanges holds the fields of a partial category update.
type CategoryChanges struct {
	Name *string
}

// IsEmpty reports whether no field is set.
func (c CategoryChanges) IsEmpty() bool { return c.Name == nil }

// NameKey returns the case-insensitive uniqueness key for a name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
