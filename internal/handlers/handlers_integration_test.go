package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp builds the catalog API over a fresh in-memory SQLite database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	manager := database.NewManager(database.Config{
		Driver:      database.DriverSQLite,
		DSN:         fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		AutoMigrate: true,
		Logger:      zerolog.Nop(),
	})
	t.Cleanup(func() { _ = manager.Close() })

	categoryRepo := repositories.NewGORMCategoryRepository(manager)
	groupRepo := repositories.NewGORMGroupCategoryRepository(manager)
	productRepo := repositories.NewGORMProductRepository(manager)

	deps := services.Deps{Logger: zerolog.Nop()}
	categoryService := services.NewCategoryService(categoryRepo, groupRepo, productRepo, deps)
	groupService := services.NewGroupCategoryService(groupRepo, deps)
	productService := services.NewProductService(productRepo, deps)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zerolog.Nop())})
	app.Use(middleware.RequestLogger(zerolog.Nop()))
	handlers.NewHealthHandler(manager, nil).RegisterRoutes(app)

	api := app.Group("/api")
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api)
	handlers.NewGroupCategoryHandler(groupService).RegisterRoutes(api)
	handlers.NewProductHandler(productService).RegisterRoutes(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func errorCode(t *testing.T, raw []byte) apperror.Code {
	t.Helper()
	env := decode[apperror.Envelope](t, raw)
	assert.False(t, env.Success)
	return env.Error.Code
}

type entity struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Category   string   `json:"category"`
	Price      float64  `json:"price"`
}

func createCategory(t *testing.T, app *fiber.App, name string) entity {
	t.Helper()
	status, raw := doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[entity](t, raw)
}

func TestCategoryCreateAndDuplicate(t *testing.T) {
	app := setupApp(t)

	created := createCategory(t, app, "  Headphones ")
	assert.Equal(t, "Headphones", created.Name)
	assert.NotEmpty(t, created.ID)

	status, raw := doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "headphones"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apperror.CodeCategoryNameDuplicate, errorCode(t, raw))

	status, raw = doJSON(t, app, http.MethodGet, "/api/categories/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Headphones", decode[entity](t, raw).Name)
}

func TestCategoryValidationErrors(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   apperror.Code
	}{
		{"too short", http.MethodPost, "/api/categories", map[string]any{"name": "A"}, 400, apperror.CodeCategoryNameTooShort},
		{"too long", http.MethodPost, "/api/categories", map[string]any{"name": strings.Repeat("a", 51)}, 400, apperror.CodeCategoryNameTooLong},
		{"bad chars", http.MethodPost, "/api/categories", map[string]any{"name": "Audio & Video"}, 400, apperror.CodeNameContainsInvalidChars},
		{"missing name", http.MethodPost, "/api/categories", map[string]any{}, 400, apperror.CodeCategoryNameRequired},
		{"empty body", http.MethodPost, "/api/categories", "", 400, apperror.CodeAPIInvalidRequest},
		{"array body", http.MethodPost, "/api/categories", "[]", 400, apperror.CodeAPIInvalidRequest},
		{"update without id", http.MethodPatch, "/api/categories", map[string]any{"name": "Audio"}, 400, apperror.CodeIDRequired},
		{"update bad id", http.MethodPatch, "/api/categories", map[string]any{"_id": "123", "name": "Audio"}, 400, apperror.CodeInvalidIDFormat},
		{"get bad id", http.MethodGet, "/api/categories/not-a-uuid", nil, 400, apperror.CodeInvalidIDFormat},
		{"get missing", http.MethodGet, "/api/categories/6f1c1f0e-4a43-4e34-9a63-7b7f4b0c8a11", nil, 404, apperror.CodeCategoryNotFound},
		{"unknown route", http.MethodGet, "/api/nothing", nil, 404, apperror.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := doJSON(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status, string(raw))
			assert.Equal(t, tt.code, errorCode(t, raw))
		})
	}
}

func TestCategoryRename(t *testing.T) {
	app := setupApp(t)
	audio := createCategory(t, app, "Audio")
	createCategory(t, app, "Video")

	status, raw := doJSON(t, app, http.MethodPatch, "/api/categories", map[string]any{"_id": audio.ID, "name": "Audio Gear"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "Audio Gear", decode[entity](t, raw).Name)

	status, raw = doJSON(t, app, http.MethodPatch, "/api/categories", map[string]any{"_id": audio.ID, "name": "video"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apperror.CodeCategoryNameDuplicate, errorCode(t, raw))

	status, raw = doJSON(t, app, http.MethodPatch, "/api/categories", map[string]any{"_id": audio.ID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperror.CodeCategoryValidation, errorCode(t, raw))
}

func TestCategoryCascadeDelete(t *testing.T) {
	app := setupApp(t)
	audio := createCategory(t, app, "Audio Gear")
	other := createCategory(t, app, "Cables")

	status, raw := doJSON(t, app, http.MethodPost, "/api/group-categories", map[string]any{
		"name":       "Sound",
		"categories": []string{audio.ID},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	sound := decode[entity](t, raw)

	status, raw = doJSON(t, app, http.MethodPost, "/api/group-categories", map[string]any{
		"name":       "Everything",
		"categories": []string{other.ID, audio.ID},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	everything := decode[entity](t, raw)

	status, raw = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Studio Monitor", "category": "audio gear", "price": 199.5, "image": "https://img/1.png",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	// first call only warns
	status, raw = doJSON(t, app, http.MethodDelete, "/api/categories", map[string]any{"_id": audio.ID})
	require.Equal(t, http.StatusOK, status, string(raw))
	var warning struct {
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
	require.NoError(t, json.Unmarshal(raw, &warning))
	assert.Equal(t, audio.ID, warning.Category.ID)
	assert.Equal(t, 2, warning.Warnings.AffectedGroupCategories)
	assert.ElementsMatch(t, []string{"Sound", "Everything"}, warning.Warnings.GroupCategoryNames)
	assert.Equal(t, 1, warning.Warnings.AffectedProducts)
	assert.Equal(t, []string{"Studio Monitor"}, warning.Warnings.ProductNames)

	status, _ = doJSON(t, app, http.MethodGet, "/api/categories/"+audio.ID, nil)
	assert.Equal(t, http.StatusOK, status)

	// a non-boolean confirmation still only warns
	status, raw = doJSON(t, app, http.MethodDelete, "/api/categories", map[string]any{"_id": audio.ID, "confirmed": "true"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "warnings")

	status, raw = doJSON(t, app, http.MethodDelete, "/api/categories", map[string]any{"_id": audio.ID, "confirmed": true})
	require.Equal(t, http.StatusOK, status, string(raw))
	var deleted struct {
		Message                 string `json:"message"`
		Category                entity `json:"category"`
		ModifiedGroupCategories int    `json:"modifiedGroupCategories"`
	}
	require.NoError(t, json.Unmarshal(raw, &deleted))
	assert.Equal(t, "Category deleted successfully", deleted.Message)
	assert.Equal(t, audio.ID, deleted.Category.ID)
	assert.Equal(t, 2, deleted.ModifiedGroupCategories)

	status, raw = doJSON(t, app, http.MethodGet, "/api/group-categories/"+sound.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[entity](t, raw).Categories)
	assert.Contains(t, string(raw), `"categories":[]`)

	status, raw = doJSON(t, app, http.MethodGet, "/api/group-categories/"+everything.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{other.ID}, decode[entity](t, raw).Categories)

	status, raw = doJSON(t, app, http.MethodGet, "/api/categories/"+audio.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperror.CodeCategoryNotFound, errorCode(t, raw))

	status, raw = doJSON(t, app, http.MethodDelete, "/api/categories", map[string]any{"_id": audio.ID, "confirmed": true})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperror.CodeCategoryNotFound, errorCode(t, raw))
}

func TestCategoryPagination(t *testing.T) {
	app := setupApp(t)
	for i := 1; i <= 25; i++ {
		createCategory(t, app, fmt.Sprintf("Category %02d", i))
	}

	type listResponse struct {
		Categories []entity `json:"categories"`
		Pagination struct {
			Page    int  `json:"page"`
			Limit   int  `json:"limit"`
			Total   int  `json:"total"`
			Pages   int  `json:"pages"`
			HasNext bool `json:"hasNext"`
			HasPrev bool `json:"hasPrev"`
		} `json:"pagination"`
	}

	status, raw := doJSON(t, app, http.MethodGet, "/api/categories?page=3&limit=10&sort=name&order=asc", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[listResponse](t, raw)
	assert.Len(t, page.Categories, 5)
	assert.Equal(t, "Category 21", page.Categories[0].Name)
	assert.Equal(t, 25, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.Pages)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)

	status, raw = doJSON(t, app, http.MethodGet, "/api/categories?limit=500&page=0", nil)
	require.Equal(t, http.StatusOK, status)
	page = decode[listResponse](t, raw)
	assert.Equal(t, 100, page.Pagination.Limit)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Len(t, page.Categories, 25)

	status, raw = doJSON(t, app, http.MethodGet, "/api/categories?page=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, status)
	page = decode[listResponse](t, raw)
	assert.Empty(t, page.Categories)
	assert.Equal(t, 25, page.Pagination.Total)
	assert.False(t, page.Pagination.HasNext)

	status, raw = doJSON(t, app, http.MethodGet, "/api/categories?search=ory%202", nil)
	require.Equal(t, http.StatusOK, status)
	page = decode[listResponse](t, raw)
	assert.Equal(t, 6, page.Pagination.Total)
}

func TestGroupCategoryLifecycle(t *testing.T) {
	app := setupApp(t)
	a := createCategory(t, app, "Alpha")
	b := createCategory(t, app, "Beta")

	status, raw := doJSON(t, app, http.MethodPost, "/api/group-categories", map[string]any{"name": "Bundle"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	group := decode[entity](t, raw)
	assert.Empty(t, group.Categories)

	status, raw = doJSON(t, app, http.MethodPatch, "/api/group-categories/categories", map[string]any{
		"_id": group.ID, "categories": []string{b.ID, a.ID, b.ID},
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, []string{b.ID, a.ID}, decode[entity](t, raw).Categories)

	status, raw = doJSON(t, app, http.MethodPatch, "/api/group-categories/categories", map[string]any{"_id": group.ID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperror.CodeGroupCategoryInvalidCategories, errorCode(t, raw))

	status, raw = doJSON(t, app, http.MethodPatch, "/api/group-categories", map[string]any{
		"_id": group.ID, "categories": []string{"6f1c1f0e-4a43-4e34-9a63-7b7f4b0c8a11"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperror.CodeRelationshipViolation, errorCode(t, raw))

	status, raw = doJSON(t, app, http.MethodPatch, "/api/group-categories", map[string]any{"_id": group.ID, "name": "Bundle Deluxe"})
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode[entity](t, raw)
	assert.Equal(t, "Bundle Deluxe", updated.Name)
	assert.Equal(t, []string{b.ID, a.ID}, updated.Categories)

	status, raw = doJSON(t, app, http.MethodGet, "/api/group-categories?search=deluxe", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"groupCategories":[`)
	assert.Contains(t, string(raw), "Bundle Deluxe")

	status, raw = doJSON(t, app, http.MethodDelete, "/api/group-categories", map[string]any{"_id": group.ID})
	require.Equal(t, http.StatusOK, status, string(raw))
	ack := decode[map[string]any](t, raw)
	assert.Equal(t, true, ack["success"])
	assert.Equal(t, group.ID, ack["_id"])

	status, raw = doJSON(t, app, http.MethodDelete, "/api/group-categories", map[string]any{"_id": group.ID})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperror.CodeGroupCategoryNotFound, errorCode(t, raw))
}

func TestProductEndpoints(t *testing.T) {
	app := setupApp(t)

	prices := []struct {
		price  any
		status int
	}{
		{0, http.StatusBadRequest},
		{-1, http.StatusBadRequest},
		{0.01, http.StatusCreated},
		{999999.99, http.StatusCreated},
		{1000000, http.StatusBadRequest},
		{"10", http.StatusBadRequest},
	}
	for i, p := range prices {
		status, raw := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
			"name": fmt.Sprintf("Item %d", i), "category": "Misc", "price": p.price, "image": "https://img/x.png",
		})
		assert.Equal(t, p.status, status, "price %v: %s", p.price, raw)
		if p.status == http.StatusBadRequest {
			assert.Equal(t, apperror.CodeProductInvalidPrice, errorCode(t, raw))
		}
	}

	status, raw := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Wireless Mouse", "category": "Peripherals", "price": 25, "image": "https://img/m.png",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	mouse := decode[entity](t, raw)

	status, raw = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "wireless mouse", "category": "Peripherals", "price": 30, "image": "https://img/m2.png",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apperror.CodeProductNameDuplicate, errorCode(t, raw))

	status, raw = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "No Image", "category": "Misc", "price": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperror.CodeProductImageRequired, errorCode(t, raw))

	status, raw = doJSON(t, app, http.MethodPatch, "/api/products", map[string]any{"_id": mouse.ID, "price": 27.5})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, 27.5, decode[entity](t, raw).Price)

	status, raw = doJSON(t, app, http.MethodGet, "/api/products?category=peripherals&minPrice=20&maxPrice=30", nil)
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Data []entity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, mouse.ID, list.Data[0].ID)

	status, raw = doJSON(t, app, http.MethodGet, "/api/products?sortBy=price&sortOrder=asc&minPrice=abc", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list.Data, 3)
	assert.Equal(t, 0.01, list.Data[0].Price)

	status, raw = doJSON(t, app, http.MethodDelete, "/api/products", map[string]any{"_id": mouse.ID})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Contains(t, string(raw), `"success":true`)

	status, raw = doJSON(t, app, http.MethodGet, "/api/products/"+mouse.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperror.CodeProductNotFound, errorCode(t, raw))
}

func TestHealth(t *testing.T) {
	app := setupApp(t)
	status, raw := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	body := decode[map[string]any](t, raw)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "up", body["services"].(map[string]any)["database"])
}

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error { return errors.New("down") }

func TestHealthReportsDown(t *testing.T) {
	app := fiber.New()
	handlers.NewHealthHandler(failingPinger{}, map[string]handlers.Pinger{"cache": failingPinger{}}).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := decode[map[string]any](t, raw)
	assert.Equal(t, "unavailable", body["status"])
	assert.Equal(t, "down", body["services"].(map[string]any)["cache"])
}
