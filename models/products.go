package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Every product belongs to exactly one category.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"index;not null"`
	Brand       string          `gorm:"index;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Inventory   int             `gorm:"not null;default:0"`
	Description string          `gorm:"type:text"`
	CategoryID  uint            `gorm:"not null;index"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
}

func (p *Product) TableName() string {
	return "products"
}

