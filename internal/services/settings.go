package services

import (
	"sync"

	"github.com/diewo77/madafacture/internal/models"
	"github.com/diewo77/madafacture/internal/validation"

	"gorm.io/gorm"
)

// seqMu serializes the read-increment-write on the numbering counters held
// in the singleton settings row. Single-process scope; the counters are
// advanced inside the same DB transaction as the document they number.
var seqMu sync.Mutex

type SettingsService struct{ DB *gorm.DB }

func NewSettingsService(db *gorm.DB) *SettingsService { return &SettingsService{DB: db} }

// Get returns the singleton settings record.
func (s *SettingsService) Get() (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := s.DB.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

type SettingsInput struct {
	BusinessName    string                `json:"business_name"`
	NIF             string                `json:"nif"`
	STAT            string                `json:"stat"`
	RCS             string                `json:"rcs"`
	BankInfo        string                `json:"bank_info"`
	Address         string                `json:"address"`
	Phone           string                `json:"phone"`
	Email           string                `json:"email"`
	LogoURL         string                `json:"logo_url"`
	DefaultVAT      float64               `json:"default_vat"`
	Currency        string                `json:"currency"`
	Domain          models.BusinessDomain `json:"domain"`
	InvoicePrefix   string                `json:"invoice_prefix"`
	ShopModeEnabled bool                  `json:"shop_mode_enabled"`
	ShowProfits     bool                  `json:"show_profits"`
}

// Update mutates the business identity fields and flags. The numbering
// counters are deliberately not settable here: only the engines advance them.
func (s *SettingsService) Update(in SettingsInput) (*models.UserSettings, error) {
	violations := validation.Violations{}
	validation.Required("business_name", in.BusinessName, violations)
	validation.NonNegativeFloat("default_vat", in.DefaultVAT, violations)
	if !violations.Empty() {
		return nil, &ValidationError{Violations: violations}
	}

	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	settings.BusinessName = in.BusinessName
	settings.NIF = in.NIF
	settings.STAT = in.STAT
	settings.RCS = in.RCS
	settings.BankInfo = in.BankInfo
	settings.Address = in.Address
	settings.Phone = in.Phone
	settings.Email = in.Email
	settings.LogoURL = in.LogoURL
	settings.DefaultVAT = in.DefaultVAT
	if in.Currency != "" {
		settings.Currency = in.Currency
	}
	if in.Domain != "" {
		settings.Domain = in.Domain
	}
	if in.InvoicePrefix != "" {
		settings.InvoicePrefix = in.InvoicePrefix
	}
	settings.ShopModeEnabled = in.ShopModeEnabled
	settings.ShowProfits = in.ShowProfits

	if err := s.DB.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
