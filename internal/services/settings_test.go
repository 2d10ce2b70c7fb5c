package services

import (
	"testing"

	"github.com/diewo77/madafacture/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSettingsGetReturnsSingleton(t *testing.T) {
	d := openTestDB(t)
	svc := NewSettingsService(d)

	settings, err := svc.Get()
	require.NoError(t, err)
	require.Equal(t, "MADA TRADING SARL", settings.BusinessName)
	require.Equal(t, "FACT-", settings.InvoicePrefix)
	require.Equal(t, "Ar", settings.Currency)
	require.Equal(t, 200, settings.NextInvoiceNumber)
	require.Equal(t, 1, settings.NextClosingNumber)
}

func TestSettingsUpdate(t *testing.T) {
	d := openTestDB(t)
	svc := NewSettingsService(d)

	updated, err := svc.Update(SettingsInput{
		BusinessName:  "RAKOTO SERVICES",
		NIF:           "4000987654",
		Address:       "Lot II B 45, Antsirabe",
		DefaultVAT:    20,
		Domain:        models.DomainServices,
		InvoicePrefix: "FAC-",
		ShowProfits:   true,
	})
	require.NoError(t, err)
	require.Equal(t, "RAKOTO SERVICES", updated.BusinessName)
	require.Equal(t, float64(20), updated.DefaultVAT)
	require.Equal(t, models.DomainServices, updated.Domain)
	require.Equal(t, "FAC-", updated.InvoicePrefix)
	// Counters only move with the engines, never through settings updates.
	require.Equal(t, 200, updated.NextInvoiceNumber)
	require.Equal(t, 1, updated.NextClosingNumber)
}

func TestSettingsUpdateValidation(t *testing.T) {
	d := openTestDB(t)
	svc := NewSettingsService(d)

	_, err := svc.Update(SettingsInput{BusinessName: ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "required", verr.Violations["business_name"])
}
