package repositories

import (
	"fmt"

	"bozor/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products with their associations resolved.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Preload("Category").
		Preload("Image").
		Preload("Owner").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID with associations resolved.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Category").
		Preload("Image").
		Preload("Owner").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to the product with the given ID.
// Only the supplied columns are touched.
func (r *GORMProductRepository) UpdateFields(id uint, changes map[string]interface{}) error {
	err := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for deletion: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
