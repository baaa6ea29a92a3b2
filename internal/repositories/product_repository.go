package repositories

import "bozor/internal/models"

// ProductRepository defines the interface for product data access.
// Reads resolve the category, image and owner associations.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	UpdateFields(id uint, changes map[string]interface{}) error
	Delete(id uint) error
}
