package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a seeded catalog entry.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Image       string          `gorm:"column:image;not null;default:''"`
	Category    string          `gorm:"column:category;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Product) TableName() string { return "products" }
