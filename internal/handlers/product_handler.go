package handlers

import (
	"log"
	"strconv"

	"bozor/internal/models"
	"bozor/internal/response"
	"bozor/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads are public; the
// mutating routes require the bearer-token middleware passed in.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.HandleGetAll)
	products.Get("/:id", h.HandleGetOne)
	products.Post("/", auth, h.HandleCreate)
	products.Put("/:id", auth, h.HandleUpdate)
	products.Delete("/:id", auth, h.HandleDelete)
}

// HandleGetAll retrieves every product with resolved associations.
func (h *ProductHandler) HandleGetAll(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return response.FailWith(c, err)
	}
	return response.OK(c, products)
}

// HandleGetOne retrieves a single product by its ID.
func (h *ProductHandler) HandleGetOne(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Invalid product ID")
	}
	product, err := h.service.GetProduct(id)
	if err != nil {
		log.Printf("Error getting product %d: %v", id, err)
		return response.FailWith(c, err)
	}
	return response.OK(c, product)
}

// ProductRequest represents the request body for creating a product.
type ProductRequest struct {
	Name       string  `json:"name" validate:"required"`
	Count      int     `json:"count" validate:"gte=0"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	CategoryID uint    `json:"category_id" validate:"required"`
	ImageID    uint    `json:"image_id" validate:"required"`
}

// HandleCreate creates a new product owned by the authenticated user.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	ownerID, ok := c.Locals("user_id").(uint)
	if !ok {
		return response.FailWith(c, services.ErrInvalidTokenPayload)
	}

	_, err := h.service.CreateProduct(ownerID, services.CreateProductInput{
		Name:       req.Name,
		Count:      req.Count,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		ImageID:    req.ImageID,
	})
	if err != nil {
		log.Printf("Error creating product for user %d: %v", ownerID, err)
		return response.FailWith(c, err)
	}
	return response.OK(c, fiber.Map{"message": "Product added successfully"})
}

// HandleUpdate applies a partial update to a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Invalid product ID")
	}

	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing product patch body: %v", err)
		return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Invalid request body")
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return response.FailWith(c, services.ErrInvalidTokenPayload)
	}

	if err := h.service.UpdateProduct(userID, id, patch); err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return response.FailWith(c, err)
	}
	return response.OK(c, fiber.Map{"message": "Updated"})
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Invalid product ID")
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return response.FailWith(c, services.ErrInvalidTokenPayload)
	}

	if err := h.service.DeleteProduct(userID, id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return response.FailWith(c, err)
	}
	return response.OK(c, fiber.Map{"message": "Product deleted"})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
