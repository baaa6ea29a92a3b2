package models

// Image is an uploaded file stored on disk. URL holds the path relative
// to the upload directory; handlers render it absolute with the
// configured base URL.
type Image struct {
	ID  uint   `json:"id" gorm:"primaryKey"`
	URL string `json:"url" gorm:"type:text"`
}
