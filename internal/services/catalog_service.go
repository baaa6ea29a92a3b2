package services

import (
	"fmt"

	"bozor/internal/models"
	"bozor/internal/repositories"
)

// FileStore persists raw upload payloads and returns the stored path.
type FileStore interface {
	Save(name string, data []byte) (string, error)
}

// CatalogService handles image uploads and category management.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	imageRepo    repositories.ImageRepository
	store        FileStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, imageRepo repositories.ImageRepository, store FileStore) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		store:        store,
	}
}

// UploadImage writes the payload to the content store and records it,
// returning the new image's ID.
func (s *CatalogService) UploadImage(filename string, data []byte) (uint, error) {
	url, err := s.store.Save(filename, data)
	if err != nil {
		return 0, err
	}
	image := &models.Image{URL: url}
	if err := s.imageRepo.Create(image); err != nil {
		return 0, fmt.Errorf("failed to record uploaded image: %w", err)
	}
	return image.ID, nil
}

// AddCategory inserts a new category and returns it with its ID set.
func (s *CatalogService) AddCategory(name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to add category: %w", err)
	}
	return category, nil
}

// ListCategories retrieves all categories.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}
