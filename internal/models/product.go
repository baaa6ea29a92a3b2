package models

// Product represents a product in the store. Category, Image and Owner
// are resolved eagerly when products are read.
type Product struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(255)"`
	Count      int       `json:"count"`
	Price      float64   `json:"price"`
	CategoryID uint      `json:"category_id"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageID    uint      `json:"image_id"`
	Image      *Image    `json:"image,omitempty" gorm:"foreignKey:ImageID"`
	OwnerID    uint      `json:"owner_id"`
	Owner      *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// ProductPatch is a partial update of a Product. A nil field means
// "not provided"; non-nil zero values are applied as-is, so counts can
// be reset to zero and names to the empty string intentionally.
type ProductPatch struct {
	Name       *string  `json:"name"`
	Count      *int     `json:"count"`
	Price      *float64 `json:"price"`
	CategoryID *uint    `json:"category_id"`
	ImageID    *uint    `json:"image_id"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Count == nil && p.Price == nil &&
		p.CategoryID == nil && p.ImageID == nil
}

// Changes returns the provided fields as a column-keyed map suitable
// for a partial database update.
func (p ProductPatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Count != nil {
		changes["count"] = *p.Count
	}
	if p.Price != nil {
		changes["price"] = *p.Price
	}
	if p.CategoryID != nil {
		changes["category_id"] = *p.CategoryID
	}
	if p.ImageID != nil {
		changes["image_id"] = *p.ImageID
	}
	return changes
}
