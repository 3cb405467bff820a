package handlers

import (
	"produk/internal/models"
	"produk/internal/services"
	"produk/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
	log      *logrus.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
		log:      logger,
	}
}

// RegisterRoutes registers the product routes. Trailing slashes are optional.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns every product.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		return h.serviceError(c, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(products)
}

// HandleCreateProduct validates the body, stores it and echoes the payload back.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var payload models.ProductCreate
	if err := h.validate.Decode(c.Body(), &payload); err != nil {
		return h.validationError(c, err)
	}

	if _, err := h.service.CreateProduct(c.UserContext(), payload); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(payload)
}

// HandleUpdateProduct applies a partial update and returns the stored row.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := validation.PathInt("product_id", c.Params("id"))
	if err != nil {
		return h.validationError(c, err)
	}

	var payload models.ProductUpdate
	if err := h.validate.Decode(c.Body(), &payload); err != nil {
		return h.validationError(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, payload)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and returns its last state.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := validation.PathInt("product_id", c.Params("id"))
	if err != nil {
		return h.validationError(c, err)
	}

	product, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(product)
}
