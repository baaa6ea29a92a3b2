package repositories

import "bozor/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetAll() ([]models.Category, error)
}

// ImageRepository defines the interface for image metadata access.
type ImageRepository interface {
	Create(image *models.Image) error
	GetByID(id uint) (*models.Image, error)
}
