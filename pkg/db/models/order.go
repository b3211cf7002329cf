package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine snapshots a cart line at checkout time.
type OrderLine struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// Order persists a confirmed checkout. Orders are never updated.
type Order struct {
	ID              string          `gorm:"column:id;primaryKey"`
	SessionID       string          `gorm:"column:session_id;not null"`
	CustomerName    string          `gorm:"column:customer_name;not null"`
	CustomerEmail   string          `gorm:"column:customer_email;not null"`
	CustomerPhone   string          `gorm:"column:customer_phone;not null"`
	CustomerAddress string          `gorm:"column:customer_address;not null"`
	Items           []OrderLine     `gorm:"column:items;type:text;serializer:json;not null"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	EstimatedTime   string          `gorm:"column:estimated_time;not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Order) TableName() string { return "orders" }
