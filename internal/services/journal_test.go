package services

import (
	"testing"
	"time"

	"github.com/diewo77/madafacture/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testDate = "2024-06-15"

func at(t *testing.T, hour int) time.Time {
	t.Helper()
	day, err := time.ParseInLocation(dateLayout, testDate, time.Local)
	require.NoError(t, err)
	return day.Add(time.Duration(hour) * time.Hour)
}

func seedDay(t *testing.T, d *gorm.DB) {
	t.Helper()
	txs := []models.PaymentTransaction{
		{Timestamp: at(t, 9), Amount: 5000, Method: models.PaymentEspeces, ReferenceID: models.QuickSaleReference, Label: "Coca 1L (x5)", Type: models.TransactionQuickSale},
		{Timestamp: at(t, 11), Amount: 3000, Method: models.PaymentMobileMoney, ReferenceID: models.QuickSaleReference, Label: "Eau 1.5L (x6)", Type: models.TransactionQuickSale},
		{Timestamp: at(t, 14), Amount: 2000, Method: models.PaymentCredit, ReferenceID: "42", Label: "FACT-2024-242", Type: models.TransactionInvoicePayment},
		// Next day, must stay out of the window.
		{Timestamp: at(t, 25), Amount: 99999, Method: models.PaymentEspeces, ReferenceID: models.QuickSaleReference, Label: "Hors fenêtre", Type: models.TransactionQuickSale},
	}
	require.NoError(t, d.Create(&txs).Error)

	sales := []models.QuickSale{
		{Timestamp: at(t, 9), ProductID: 1, ProductName: "Coca 1L", Quantity: 2, UnitPrice: 1000, PurchasePrice: 600, Total: 2000, PaymentMethod: models.PaymentEspeces},
		{Timestamp: at(t, 10), ProductID: 1, ProductName: "Coca 1L", Quantity: 1, UnitPrice: 1200, PurchasePrice: 600, Total: 1200, PaymentMethod: models.PaymentEspeces},
		{Timestamp: at(t, 11), ProductID: 2, ProductName: "Eau 1.5L", Quantity: 1, UnitPrice: 500, PurchasePrice: 300, Total: 500, PaymentMethod: models.PaymentMobileMoney},
	}
	require.NoError(t, d.Create(&sales).Error)

	valid := models.Invoice{
		Number: "FACT-2024-242", Date: testDate, ClientID: 1,
		Type: models.DocumentFacture, Status: models.StatusValide,
		Subtotal: 6000, Total: 6000, Domain: models.DomainCommerce,
		Items: []models.InvoiceItem{
			{Description: "Riz 5kg", Quantity: 2, UnitPrice: 3000, PurchasePrice: 2000},
		},
	}
	require.NoError(t, d.Create(&valid).Error)

	cancelled := models.Invoice{
		Number: "FACT-2024-243", Date: testDate, ClientID: 1,
		Type: models.DocumentFacture, Status: models.StatusAnnule,
		Subtotal: 15000, Total: 15000, Domain: models.DomainCommerce,
		Items: []models.InvoiceItem{
			{Description: "Riz 5kg", Quantity: 5, UnitPrice: 3000, PurchasePrice: 2000},
		},
	}
	require.NoError(t, d.Create(&cancelled).Error)
}

func TestComputeDailyStats(t *testing.T) {
	d := openTestDB(t)
	svc := NewJournalService(d)
	seedDay(t, d)

	stats, err := svc.ComputeDailyStats(testDate)
	require.NoError(t, err)

	require.Equal(t, float64(10000), stats.Total)
	require.Equal(t, float64(5000), stats.Cash)
	require.Equal(t, float64(3000), stats.Mobile)
	require.Equal(t, float64(2000), stats.Credit)
	require.Len(t, stats.Transactions, 3)

	// Cancelled invoice lines stay out: Riz aggregates to 2 units only.
	require.Equal(t, []ProductStat{
		{Name: "Riz 5kg", Quantity: 2, Revenue: 6000, Profit: 2000},
		{Name: "Coca 1L", Quantity: 3, Revenue: 3200, Profit: 1400},
		{Name: "Eau 1.5L", Quantity: 1, Revenue: 500, Profit: 200},
	}, stats.Products)
	require.Equal(t, float64(3600), stats.Profit)
}

func TestComputeDailyStatsIdempotent(t *testing.T) {
	d := openTestDB(t)
	svc := NewJournalService(d)
	seedDay(t, d)

	first, err := svc.ComputeDailyStats(testDate)
	require.NoError(t, err)
	second, err := svc.ComputeDailyStats(testDate)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestComputeDailyStatsEmptyDay(t *testing.T) {
	d := openTestDB(t)
	svc := NewJournalService(d)

	stats, err := svc.ComputeDailyStats("2024-01-01")
	require.NoError(t, err)
	require.Zero(t, stats.Total)
	require.Zero(t, stats.Profit)
	require.Empty(t, stats.Transactions)
	require.Empty(t, stats.Products)

	_, err = svc.ComputeDailyStats("not-a-date")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "invalid_date", verr.Violations["date"])
}

func TestFinalizeClosing(t *testing.T) {
	d := openTestDB(t)
	svc := NewJournalService(d)

	_, err := svc.FinalizeClosing(testDate, false)
	require.ErrorIs(t, err, ErrNothingToClose)

	seedDay(t, d)

	closing, err := svc.FinalizeClosing(testDate, false)
	require.NoError(t, err)
	require.Equal(t, "CLOT-20240615-001", closing.Number)
	require.Equal(t, float64(10000), closing.TotalRevenue)
	require.Equal(t, float64(3600), closing.TotalProfit)
	require.Equal(t, float64(5000), closing.CashAmount)
	require.Equal(t, float64(3000), closing.MobileAmount)
	require.Equal(t, float64(2000), closing.CreditAmount)
	require.Equal(t, 3, closing.TransactionsCount)
	require.Len(t, closing.Products, 3)

	_, err = svc.FinalizeClosing(testDate, false)
	require.ErrorIs(t, err, ErrClosingExists)

	// A late transaction recorded before the confirmed replace must show up
	// in the new snapshot.
	late := models.PaymentTransaction{
		Timestamp: at(t, 16), Amount: 2500, Method: models.PaymentEspeces,
		ReferenceID: models.QuickSaleReference, Label: "Eau 1.5L (x5)", Type: models.TransactionQuickSale,
	}
	require.NoError(t, d.Create(&late).Error)

	replaced, err := svc.FinalizeClosing(testDate, true)
	require.NoError(t, err)
	require.Equal(t, "CLOT-20240615-002", replaced.Number)
	require.Equal(t, float64(12500), replaced.TotalRevenue)
	require.Equal(t, float64(7500), replaced.CashAmount)
	require.Equal(t, 4, replaced.TransactionsCount)

	var count int64
	d.Model(&models.DailyClosing{}).Count(&count)
	require.EqualValues(t, 1, count, "replace must leave a single closing for the date")
	var orphanCount int64
	d.Model(&models.ClosingProduct{}).Where("closing_id <> ?", replaced.ID).Count(&orphanCount)
	require.Zero(t, orphanCount, "replaced closing products must be deleted")
}

func TestClosingSnapshotIsImmutable(t *testing.T) {
	d := openTestDB(t)
	svc := NewJournalService(d)
	seedDay(t, d)

	closing, err := svc.FinalizeClosing(testDate, false)
	require.NoError(t, err)

	// More activity after the close must not alter the archived snapshot.
	late := models.PaymentTransaction{
		Timestamp: at(t, 20), Amount: 7777, Method: models.PaymentEspeces,
		ReferenceID: models.QuickSaleReference, Label: "Tardif", Type: models.TransactionQuickSale,
	}
	require.NoError(t, d.Create(&late).Error)

	stored, err := svc.ClosingForDate(testDate)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, closing.Number, stored.Number)
	require.Equal(t, float64(10000), stored.TotalRevenue)
	require.Equal(t, 3, stored.TransactionsCount)
}

func TestListClosings(t *testing.T) {
	d := openTestDB(t)
	svc := NewJournalService(d)
	seedDay(t, d)

	_, err := svc.FinalizeClosing(testDate, false)
	require.NoError(t, err)

	none, err := svc.ClosingForDate("2024-06-16")
	require.NoError(t, err)
	require.Nil(t, none)

	closings, err := svc.ListClosings(0)
	require.NoError(t, err)
	require.Len(t, closings, 1)
	require.Len(t, closings[0].Products, 3)
}
