package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers the category routes on router.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategory)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Patch("/", h.HandleUpdateCategory)
	categoryRoutes.Delete("/", h.HandleDeleteCategory)
}

type categoryList struct {
	Categories []models.Category `json:"categories"`
	Pagination models.Pagination `json:"pagination"`
}

// HandleListCategories returns one page of categories.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), namedListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(categoryList{Categories: page.Items, Pagination: page.Pagination})
}

// HandleGetCategory returns the category named by the :id parameter.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	category, err := h.service.Create(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory renames the category named by the body's _id.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	category, err := h.service.Update(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// HandleDeleteCategory answers with a deletion warning unless the body
// carries confirmed: true, in which case the category is deleted.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	result, err := h.service.Delete(c.UserContext(), rec)
	if err != nil {
		return err
	}
	if result.Warning != nil {
		return c.JSON(result.Warning)
	}
	return c.JSON(result.Deleted)
}
