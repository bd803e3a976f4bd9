package models

// Category represents a product category.
// Its name is the natural key and is unique across the catalog.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

func (c *Category) TableName() string {
	return "categories"
}
