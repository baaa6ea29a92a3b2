package handlers

import (
	"io"
	"log"

	"bozor/internal/response"
	"bozor/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles image uploads and category endpoints.
type CatalogHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
// The capitalized /Category path is kept for client compatibility.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload_image", h.HandleUploadImage)
	router.Post("/Category", h.HandleAddCategory)
	router.Get("/Category", h.HandleListCategories)
}

// HandleUploadImage accepts a multipart file and stores it.
func (h *CatalogHandler) HandleUploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file %s: %v", fileHeader.Filename, err)
		return response.FailWith(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded file %s: %v", fileHeader.Filename, err)
		return response.FailWith(c, err)
	}

	imageID, err := h.catalog.UploadImage(fileHeader.Filename, data)
	if err != nil {
		log.Printf("Error storing uploaded file %s: %v", fileHeader.Filename, err)
		return response.FailWith(c, err)
	}
	return response.OK(c, fiber.Map{"image_id": imageID})
}

// CategoryRequest represents the request body for creating a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// HandleAddCategory inserts a new category.
func (h *CatalogHandler) HandleAddCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	if _, err := h.catalog.AddCategory(req.Name); err != nil {
		log.Printf("Error adding category %s: %v", req.Name, err)
		return response.FailWith(c, err)
	}
	return response.OK(c, fiber.Map{"message": "Added"})
}

// HandleListCategories retrieves all categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return response.FailWith(c, err)
	}
	return response.OK(c, categories)
}
