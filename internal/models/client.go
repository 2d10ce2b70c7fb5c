package models

import "time"

// Client entity. NIF/STAT are fiscal identifiers and only carry meaning for
// clients of type Société; handlers reject them on Individuel.
type Client struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null;index" json:"name"`
	Type      ClientType `gorm:"not null" json:"type"`
	Email     string     `gorm:"index" json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	NIF       string     `gorm:"index" json:"nif,omitempty"`
	STAT      string     `gorm:"index" json:"stat,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
