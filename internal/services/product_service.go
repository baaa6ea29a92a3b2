package services

import (
	"errors"
	"fmt"
	"log"

	"bozor/internal/models"
	"bozor/internal/repositories"

	"gorm.io/gorm"
)

// CreateProductInput carries the fields of a new product. The owner is
// taken from the verified access token, never from the request body.
type CreateProductInput struct {
	Name       string
	Count      int
	Price      float64
	CategoryID uint
	ImageID    uint
}

// ImageView is an image rendered with an absolute URL.
type ImageView struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// ProductView is a product with its associations resolved for the API.
type ProductView struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Count    int              `json:"count"`
	Price    float64          `json:"price"`
	Category *models.Category `json:"category"`
	Image    *ImageView       `json:"image"`
	Owner    uint             `json:"owner"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo    repositories.ProductRepository
	events  EventPublisher
	baseURL string
}

// NewProductService creates a new ProductService. baseURL prefixes
// image paths when products are rendered.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, baseURL string) *ProductService {
	return &ProductService{
		repo:    repo,
		events:  events,
		baseURL: baseURL,
	}
}

// GetProduct retrieves a single product with its category, image and
// owner resolved.
func (s *ProductService) GetProduct(id uint) (*ProductView, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	view := s.render(product)
	return &view, nil
}

// GetAllProducts retrieves every product. An empty catalog is reported
// as ErrNoProductsFound, a client-visible condition.
func (s *ProductService) GetAllProducts() ([]ProductView, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProductsFound
	}
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, s.render(&products[i]))
	}
	return views, nil
}

// CreateProduct persists a new product owned by ownerID.
func (s *ProductService) CreateProduct(ownerID uint, input CreateProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:       input.Name,
		Count:      input.Count,
		Price:      input.Price,
		CategoryID: input.CategoryID,
		ImageID:    input.ImageID,
		OwnerID:    ownerID,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(EventProductCreated, map[string]interface{}{
		"product_id": product.ID,
		"owner_id":   ownerID,
		"name":       product.Name,
	})
	return product, nil
}

// UpdateProduct applies a partial update to the product. Only fields
// present in the patch are touched. The caller must own the product.
func (s *ProductService) UpdateProduct(userID, id uint, patch models.ProductPatch) error {
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if product.OwnerID != userID {
		return ErrNotProductOwner
	}
	return s.repo.UpdateFields(id, patch.Changes())
}

// DeleteProduct removes the product after checking it exists and
// belongs to the caller.
func (s *ProductService) DeleteProduct(userID, id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if product.OwnerID != userID {
		return ErrNotProductOwner
	}
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.publish(EventProductDeleted, map[string]interface{}{
		"product_id": id,
		"owner_id":   userID,
	})
	return nil
}

func (s *ProductService) render(product *models.Product) ProductView {
	view := ProductView{
		ID:       product.ID,
		Name:     product.Name,
		Count:    product.Count,
		Price:    product.Price,
		Category: product.Category,
		Owner:    product.OwnerID,
	}
	if product.Image != nil {
		view.Image = &ImageView{
			ID:  product.Image.ID,
			URL: s.baseURL + product.Image.URL,
		}
	}
	return view
}

func (s *ProductService) publish(event string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, data); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
