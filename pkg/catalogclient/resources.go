package catalogclient

import (
	"context"
	"encoding/json"
	"net/http"

	"catalog/pkg/apperror"
)

const (
	categoriesPath      = "/categories"
	groupCategoriesPath = "/group-categories"
	productsPath        = "/products"
)

// ListCategories returns one page of categories.
func (c *Client) ListCategories(ctx context.Context, p ListParams) (*CategoryPage, error) {
	var page CategoryPage
	if err := c.do(ctx, http.MethodGet, categoriesPath, listValues(p), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCategory fetches a category by id.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodGet, idPath(categoriesPath, id), nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, categoriesPath, nil, map[string]any{"name": name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id, name string) (*Category, error) {
	var category Category
	body := map[string]any{"_id": id, "name": name}
	if err := c.do(ctx, http.MethodPatch, categoriesPath, nil, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory runs one step of the category deletion protocol. Without
// confirmation the result carries the warning; with it, the deletion.
func (c *Client) DeleteCategory(ctx context.Context, id string, confirmed bool) (*DeleteCategoryResult, error) {
	raw, err := c.send(ctx, http.MethodDelete, categoriesPath, nil, map[string]any{"_id": id, "confirmed": confirmed})
	if err != nil {
		return nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, apperror.New(apperror.CodeWarningMessageInvalid).WithCause(err)
	}
	if _, ok := probe["warnings"]; ok {
		var warning DeletionWarning
		if err := json.Unmarshal(raw, &warning); err != nil {
			return nil, apperror.New(apperror.CodeWarningMessageInvalid).WithCause(err)
		}
		return &DeleteCategoryResult{Warning: &warning}, nil
	}
	_, hasMessage := probe["message"]
	_, hasCategory := probe["category"]
	if !hasMessage || !hasCategory {
		return nil, apperror.New(apperror.CodeWarningMessageInvalid)
	}
	var deleted CategoryDeletion
	if err := json.Unmarshal(raw, &deleted); err != nil {
		return nil, apperror.New(apperror.CodeWarningMessageInvalid).WithCause(err)
	}
	return &DeleteCategoryResult{Deleted: &deleted}, nil
}

// ListGroupCategories returns one page of group categories.
func (c *Client) ListGroupCategories(ctx context.Context, p ListParams) (*GroupCategoryPage, error) {
	var page GroupCategoryPage
	if err := c.do(ctx, http.MethodGet, groupCategoriesPath, listValues(p), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetGroupCategory fetches a group category by id.
func (c *Client) GetGroupCategory(ctx context.Context, id string) (*GroupCategory, error) {
	var group GroupCategory
	if err := c.do(ctx, http.MethodGet, idPath(groupCategoriesPath, id), nil, nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateGroupCategory creates a group category over the given category ids.
func (c *Client) CreateGroupCategory(ctx context.Context, name string, categories []string) (*GroupCategory, error) {
	if categories == nil {
		categories = []string{}
	}
	var group GroupCategory
	body := map[string]any{"name": name, "categories": categories}
	if err := c.do(ctx, http.MethodPost, groupCategoriesPath, nil, body, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroupCategory applies a partial update.
func (c *Client) UpdateGroupCategory(ctx context.Context, id string, u GroupCategoryUpdate) (*GroupCategory, error) {
	body := map[string]any{"_id": id}
	if u.Name != nil {
		body["name"] = *u.Name
	}
	if u.Categories != nil {
		body["categories"] = *u.Categories
	}
	var group GroupCategory
	if err := c.do(ctx, http.MethodPatch, groupCategoriesPath, nil, body, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// AssignCategories replaces the category list of a group category.
func (c *Client) AssignCategories(ctx context.Context, id string, categories []string) (*GroupCategory, error) {
	if categories == nil {
		categories = []string{}
	}
	var group GroupCategory
	body := map[string]any{"_id": id, "categories": categories}
	if err := c.do(ctx, http.MethodPatch, groupCategoriesPath+"/categories", nil, body, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroupCategory deletes a group category.
func (c *Client) DeleteGroupCategory(ctx context.Context, id string) (*DeleteAck, error) {
	var ack DeleteAck
	if err := c.do(ctx, http.MethodDelete, groupCategoriesPath, nil, map[string]any{"_id": id}, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ListProducts returns one page of products.
func (c *Client) ListProducts(ctx context.Context, p ProductParams) (*ProductPage, error) {
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, productsPath, productValues(p), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProduct fetches a product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, idPath(productsPath, id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, productsPath, nil, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update.
func (c *Client) UpdateProduct(ctx context.Context, id string, u ProductUpdate) (*Product, error) {
	body := struct {
		ID string `json:"_id"`
		ProductUpdate
	}{ID: id, ProductUpdate: u}
	var product Product
	if err := c.do(ctx, http.MethodPatch, productsPath, nil, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) (*DeleteAck, error) {
	var ack DeleteAck
	if err := c.do(ctx, http.MethodDelete, productsPath, nil, map[string]any{"_id": id}, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
