package models

import "time"

// Product catalog entry. Stock is signed and may go negative: sales are never
// blocked on availability, low stock is surfaced by the UI as an alert state.
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;index" json:"name"`
	UnitPrice     float64   `gorm:"not null;index" json:"unit_price"`
	PurchasePrice float64   `gorm:"not null" json:"purchase_price"`
	Unit          string    `gorm:"not null;default:'Unité'" json:"unit"`
	Stock         int       `gorm:"not null;default:0" json:"stock"`
	Category      string    `gorm:"index" json:"category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
