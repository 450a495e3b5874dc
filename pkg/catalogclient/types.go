package catalogclient

import "time"

// Category is a product category.
type Category struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GroupCategory is a named, ordered list of category ids.
type GroupCategory struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Categories []string  `json:"categories"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Product is a catalog item.
type Product struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// CategoryPage is one page of categories.
type CategoryPage struct {
	Categories []Category `json:"categories"`
	Pagination Pagination `json:"pagination"`
}

// GroupCategoryPage is one page of group categories.
type GroupCategoryPage struct {
	GroupCategories []GroupCategory `json:"groupCategories"`
	Pagination      Pagination      `json:"pagination"`
}

// ProductPage is one page of products.
type ProductPage struct {
	Data       []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ListParams are the paging, search and sort options of category and group
// category lists. Zero values are left to the server defaults.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Sort   string
	Order  string
}

// ProductParams are the filters of a product list.
type ProductParams struct {
	Page      int
	Limit     int
	Search    string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
}

// ProductInput holds the fields of a new product.
type ProductInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

// ProductUpdate holds the fields of a partial product update.
type ProductUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Image    *string  `json:"image,omitempty"`
}

// GroupCategoryUpdate holds the fields of a partial group category update.
type GroupCategoryUpdate struct {
	Name       *string   `json:"name,omitempty"`
	Categories *[]string `json:"categories,omitempty"`
}

// DeletionWarning lists what a confirmed category deletion would touch.
type DeletionWarning struct {
	Category struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	} `json:"category"`
	Warnings struct {
		AffectedGroupCategories int      `json:"affectedGroupCategories"`
		GroupCategoryNames      []string `json:"groupCategoryNames"`
		AffectedProducts        int      `json:"affectedProducts"`
		ProductNames            []string `json:"productNames"`
	} `json:"warnings"`
}

// CategoryDeletion confirms a category deletion.
type CategoryDeletion struct {
	Message                 string   `json:"message"`
	Category                Category `json:"category"`
	ModifiedGroupCategories int      `json:"modifiedGroupCategories"`
}

// DeleteCategoryResult holds exactly one of Warning or Deleted.
type DeleteCategoryResult struct {
	Warning *DeletionWarning
	Deleted *CategoryDeletion
}

// DeleteAck confirms a product or group category deletion.
type DeleteAck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"_id"`
}
