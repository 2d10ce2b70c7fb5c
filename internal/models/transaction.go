package models

import "time"

// PaymentTransaction is the append-only ledger of money received. Rows are
// never edited or deleted after creation. ReferenceID holds the invoice id
// for invoice payments and the QuickSaleReference sentinel for quick sales.
type PaymentTransaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Timestamp   time.Time       `gorm:"not null;index" json:"timestamp"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Method      PaymentMethod   `gorm:"not null;index" json:"method"`
	ReferenceID string          `gorm:"not null;index" json:"reference_id"`
	Label       string          `gorm:"not null" json:"label"`
	ClientName  string          `json:"client_name"`
	Type        TransactionType `gorm:"not null;index" json:"type"`
}
