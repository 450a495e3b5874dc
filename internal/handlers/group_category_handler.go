package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GroupCategoryHandler handles HTTP requests for group categories.
type GroupCategoryHandler struct {
	service *services.GroupCategoryService
}

// NewGroupCategoryHandler creates a new GroupCategoryHandler.
func NewGroupCategoryHandler(service *services.GroupCategoryService) *GroupCategoryHandler {
	return &GroupCategoryHandler{service: service}
}

// RegisterRoutes registers the group category routes on router.
func (h *GroupCategoryHandler) RegisterRoutes(router fiber.Router) {
	groupRoutes := router.Group("/group-categories")
	groupRoutes.Get("/", h.HandleListGroupCategories)
	groupRoutes.Get("/:id", h.HandleGetGroupCategory)
	groupRoutes.Post("/", h.HandleCreateGroupCategory)
	groupRoutes.Patch("/", h.HandleUpdateGroupCategory)
	groupRoutes.Patch("/categories", h.HandleAssignCategories)
	groupRoutes.Delete("/", h.HandleDeleteGroupCategory)
}

type groupCategoryList struct {
	GroupCategories []models.GroupCategory `json:"groupCategories"`
	Pagination      models.Pagination      `json:"pagination"`
}

// HandleListGroupCategories returns one page of group categories.
func (h *GroupCategoryHandler) HandleListGroupCategories(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), namedListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(groupCategoryList{GroupCategories: page.Items, Pagination: page.Pagination})
}

// HandleGetGroupCategory returns the group named by the :id parameter.
func (h *GroupCategoryHandler) HandleGetGroupCategory(c *fiber.Ctx) error {
	group, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// HandleCreateGroupCategory creates a group category.
func (h *GroupCategoryHandler) HandleCreateGroupCategory(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	group, err := h.service.Create(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// HandleUpdateGroupCategory applies a partial update.
func (h *GroupCategoryHandler) HandleUpdateGroupCategory(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	group, err := h.service.Update(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// HandleAssignCategories replaces the category list of a group.
func (h *GroupCategoryHandler) HandleAssignCategories(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	group, err := h.service.AssignCategories(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// HandleDeleteGroupCategory deletes the group named by the body's _id.
func (h *GroupCategoryHandler) HandleDeleteGroupCategory(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	group, err := h.service.Delete(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.JSON(deleteAck{Success: true, Message: "Group category deleted successfully", ID: group.ID})
}
