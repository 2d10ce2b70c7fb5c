package db

import (
	"github.com/diewo77/madafacture/internal/models"

	"gorm.io/gorm"
)

// InitSettings creates the singleton settings row on first run. Idempotent:
// an existing row is left untouched.
func InitSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.UserSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := models.UserSettings{
		BusinessName:      "MADA TRADING SARL",
		NIF:               "3000123456",
		STAT:              "45112 11 2023 0 00123",
		RCS:               "RCS TANA 2023 B 00987",
		BankInfo:          "BOA MADA: 00001 02100 12345678901 22",
		Address:           "Enceinte Galaxy, Andraharo, Antananarivo",
		Phone:             "+261 34 11 222 33",
		Email:             "contact@madatrading.mg",
		DefaultVAT:        0,
		Currency:          "Ar",
		Domain:            models.DomainCommerce,
		InvoicePrefix:     "FACT-",
		NextInvoiceNumber: 200,
		NextClosingNumber: 1,
		ShopModeEnabled:   true,
		ShowProfits:       true,
	}
	return db.Create(&defaults).Error
}
