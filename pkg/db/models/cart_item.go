package models

import "time"

// CartItem is one line of a session's cart. Quantity is always positive; a
// nonpositive update deletes the row instead.
type CartItem struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	ProductID int64     `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Product   Product   `gorm:"foreignKey:ProductID;references:ID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartItem) TableName() string { return "cart_items" }
