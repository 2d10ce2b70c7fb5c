package models

import "time"

// QuickSale is a direct point-of-sale transaction with no invoice document.
// ProductName and both prices are snapshots; ClientName is free text with no
// link to the clients table.
type QuickSale struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Timestamp     time.Time     `gorm:"not null;index" json:"timestamp"`
	ProductID     uint          `gorm:"not null;index" json:"product_id"`
	ProductName   string        `gorm:"not null" json:"product_name"`
	Quantity      int           `gorm:"not null" json:"quantity"`
	UnitPrice     float64       `gorm:"not null" json:"unit_price"`
	PurchasePrice float64       `gorm:"not null" json:"purchase_price"`
	Total         float64       `gorm:"not null" json:"total"`
	PaymentMethod PaymentMethod `gorm:"not null;index" json:"payment_method"`
	ClientName    string        `json:"client_name"`
}
