package models

import "time"

// SessionValue is a persisted client-side key/value pair, such as the cart session id.
type SessionValue struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (SessionValue) TableName() string { return "session_values" }
