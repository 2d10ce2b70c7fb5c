package models

import "time"

// UserSettings is a singleton: the one row holds business identity, the
// document numbering state and feature flags. NextInvoiceNumber and
// NextClosingNumber are only advanced by the engines, inside the same
// transaction as the document they number.
type UserSettings struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	BusinessName      string         `gorm:"not null" json:"business_name"`
	NIF               string         `json:"nif"`
	STAT              string         `json:"stat"`
	RCS               string         `json:"rcs"`
	BankInfo          string         `json:"bank_info,omitempty"`
	Address           string         `json:"address"`
	Phone             string         `json:"phone"`
	Email             string         `json:"email"`
	LogoURL           string         `json:"logo_url,omitempty"`
	DefaultVAT        float64        `gorm:"not null" json:"default_vat"` // percent
	Currency          string         `gorm:"not null;default:'Ar'" json:"currency"`
	Domain            BusinessDomain `gorm:"not null" json:"domain"`
	InvoicePrefix     string         `gorm:"not null;default:'FACT-'" json:"invoice_prefix"`
	NextInvoiceNumber int            `gorm:"not null;default:1" json:"next_invoice_number"`
	NextClosingNumber int            `gorm:"not null;default:1" json:"next_closing_number"`
	ShopModeEnabled   bool           `gorm:"not null" json:"shop_mode_enabled"`
	ShowProfits       bool           `gorm:"not null" json:"show_profits"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
