package repositories

import (
	"fmt"

	"bozor/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Create inserts a new category and fills in its generated ID.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetAll retrieves all categories from the database.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GORMImageRepository is a GORM implementation of ImageRepository.
type GORMImageRepository struct {
	db *gorm.DB
}

// NewGORMImageRepository creates a new instance of GORMImageRepository.
func NewGORMImageRepository(db *gorm.DB) *GORMImageRepository {
	return &GORMImageRepository{
		db: db,
	}
}

// Create inserts a new image record and fills in its generated ID.
func (r *GORMImageRepository) Create(image *models.Image) error {
	if err := r.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

// GetByID retrieves a single image record by its ID.
func (r *GORMImageRepository) GetByID(id uint) (*models.Image, error) {
	var image models.Image
	if err := r.db.First(&image, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get image by ID %d: %w", id, err)
	}
	return &image, nil
}
