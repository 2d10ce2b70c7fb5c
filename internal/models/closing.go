package models

import "time"

// DailyClosing is the immutable end-of-day snapshot for one calendar date.
// Products is a denormalized copy of the aggregation, not a reference:
// later edits to products or invoices must never alter an archived closing.
// A closing is replaced wholesale (delete + insert), never partially updated.
type DailyClosing struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	Number            string           `gorm:"not null;index" json:"number"`
	Date              string           `gorm:"size:10;not null;index" json:"date"`
	Timestamp         time.Time        `gorm:"not null;index" json:"timestamp"`
	TotalRevenue      float64          `gorm:"not null" json:"total_revenue"`
	TotalProfit       float64          `gorm:"not null" json:"total_profit"`
	CashAmount        float64          `gorm:"not null" json:"cash_amount"`
	MobileAmount      float64          `gorm:"not null" json:"mobile_amount"`
	CreditAmount      float64          `gorm:"not null" json:"credit_amount"`
	TransactionsCount int              `gorm:"not null" json:"transactions_count"`
	Products          []ClosingProduct `gorm:"foreignKey:ClosingID" json:"aggregated_products"`
}

// ClosingProduct is one line of the frozen per-product breakdown.
type ClosingProduct struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ClosingID uint    `gorm:"not null;index" json:"closing_id"`
	Name      string  `gorm:"not null" json:"name"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Revenue   float64 `gorm:"not null" json:"revenue"`
	Profit    float64 `gorm:"not null" json:"profit"`
}
