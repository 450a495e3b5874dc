package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/", h.HandleUpdateProduct)
	productRoutes.Delete("/", h.HandleDeleteProduct)
}

type productList struct {
	Data       []models.Product  `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

// HandleListProducts returns one page of products matching the query filters.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), productListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(productList{Data: page.Items, Pagination: page.Pagination})
}

// HandleGetProduct returns the product named by the :id parameter.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	product, err := h.service.Create(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	product, err := h.service.Update(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes the product named by the body's _id.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	rec, err := parseRecord(c)
	if err != nil {
		return err
	}
	product, err := h.service.Delete(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.JSON(deleteAck{Success: true, Message: "Product deleted successfully", ID: product.ID})
}
