package models

import "time"

// Product represents a product in the catalog.
//
// IDs are assigned by the storage backend from a monotonically increasing
// counter and are never reused. Timestamps are owned by the repository:
// CreatedAt is set once at creation, UpdatedAt is refreshed on every
// successful update.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=1,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price       float64   `json:"price" gorm:"not null" validate:"gte=0"`
	Stock       int       `json:"stock" gorm:"not null;default:0" validate:"gte=0"`
	Category    string    `json:"category" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}
