package models

import "time"

// Invoice also carries quotes (Devis) and receipts (Reçu) via Type.
// Date and DueDate use the YYYY-MM-DD form; daily aggregation filters on the
// Date column directly.
type Invoice struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Number        string         `gorm:"not null;index" json:"number"`
	Date          string         `gorm:"size:10;not null;index" json:"date"`
	DueDate       string         `gorm:"size:10" json:"due_date"`
	ClientID      uint           `gorm:"not null;index" json:"client_id"`
	Type          DocumentType   `gorm:"not null;index" json:"type"`
	Items         []InvoiceItem  `gorm:"foreignKey:InvoiceID" json:"items"`
	Subtotal      float64        `gorm:"not null" json:"subtotal"`
	VATTotal      float64        `gorm:"not null" json:"vat_total"`
	Total         float64        `gorm:"not null;index" json:"total"`
	PaidAmount    float64        `gorm:"not null" json:"paid_amount"`
	IsPaid        bool           `gorm:"not null" json:"is_paid"`
	Status        InvoiceStatus  `gorm:"not null;index" json:"status"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	PaidAt        *time.Time     `gorm:"index" json:"paid_at,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Domain        BusinessDomain `gorm:"not null" json:"domain"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// InvoiceItem is owned by its invoice. Description and both prices are
// snapshots taken at invoicing time and never re-resolved against the
// catalog, so historical documents survive later product edits.
type InvoiceItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	InvoiceID     uint    `gorm:"not null;index" json:"invoice_id"`
	Description   string  `gorm:"not null" json:"description"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	UnitPrice     float64 `gorm:"not null" json:"unit_price"`
	PurchasePrice float64 `gorm:"not null" json:"purchase_price"`
	VATRate       float64 `gorm:"not null" json:"vat_rate"` // percent, e.g. 20 for 20%
	Unit          string  `json:"unit,omitempty"`
}
