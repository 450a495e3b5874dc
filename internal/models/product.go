package models

import "time"

// Product represents a product in the store. Category is a free-text label,
// not a reference to a Category row.
type Product struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	NameKey   string    `json:"-" gorm:"size:200;not null;uniqueIndex:idx_products_name_key"`
	Category  string    `json:"category" gorm:"size:100;not null;index"`
	Price     float64   `json:"price" gorm:"not null"`
	Image     string    `json:"image" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductChanges holds the fields of a partial product update. Nil means unchanged.
type ProductChanges struct {
	Name     *string
	Category *string
	Price    *float64
	Image    *string
}

// IsEmpty reports whether no field is set.
func (c ProductChanges) IsEmpty() bool {
	return c.Name == nil && c.Category == nil && c.Price == nil && c.Image == nil
}

// Apply copies the set fields onto p.
func (c ProductChanges) Apply(p *Product) {
	if c.Name != nil {
		p.Name = *c.Name
		p.NameKey = NameKey(*c.Name)
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.Image != nil {
		p.Image = *c.Image
	}
}
