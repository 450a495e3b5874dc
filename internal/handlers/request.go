package handlers

import (
	"strconv"
	"strings"

	"catalog/internal/models"
	"catalog/internal/validation"
	"catalog/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// deleteAck is the body returned after a product or group category is deleted.
type deleteAck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"_id"`
}

// parseRecord decodes the request body into a field map. The body must be a
// JSON object.
func parseRecord(c *fiber.Ctx) (validation.Record, error) {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, apperror.Newf(apperror.CodeAPIInvalidRequest, "Request body is required")
	}
	var rec validation.Record
	if err := c.App().Config().JSONDecoder(body, &rec); err != nil || rec == nil {
		return nil, apperror.Newf(apperror.CodeAPIInvalidRequest, "Request body must be a JSON object").WithCause(err)
	}
	return rec, nil
}

// namedListQuery reads the query string of the category and group category
// list endpoints.
func namedListQuery(c *fiber.Ctx) models.ListQuery {
	return models.ListQuery{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", models.DefaultPageLimit),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}.Normalized()
}

// productListQuery reads the query string of the product list endpoint.
// Unparseable price bounds are ignored.
func productListQuery(c *fiber.Ctx) models.ListQuery {
	return models.ListQuery{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", models.DefaultPageLimit),
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		MinPrice:  queryFloat(c, "minPrice"),
		MaxPrice:  queryFloat(c, "maxPrice"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}.Normalized()
}

func queryFloat(c *fiber.Ctx, key string) *float64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
