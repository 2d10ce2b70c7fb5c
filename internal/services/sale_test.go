package services

import (
	"testing"

	"github.com/diewo77/madafacture/internal/models"

	"github.com/stretchr/testify/require"
)

func TestRecordQuickSale(t *testing.T) {
	d := openTestDB(t)
	svc := NewSaleService(d)
	product := createTestProduct(t, d, "Coca 1L", 1000, 600, 5)

	sale, err := svc.Record(RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      2,
		PaymentMethod: models.PaymentEspeces,
	})
	require.NoError(t, err)

	require.Equal(t, "Coca 1L", sale.ProductName)
	require.Equal(t, float64(1000), sale.UnitPrice)
	require.Equal(t, float64(600), sale.PurchasePrice)
	require.Equal(t, float64(2000), sale.Total)
	require.Equal(t, "Client de passage", sale.ClientName)

	var p models.Product
	require.NoError(t, d.First(&p, product.ID).Error)
	require.Equal(t, 3, p.Stock)

	var txs []models.PaymentTransaction
	require.NoError(t, d.Find(&txs).Error)
	require.Len(t, txs, 1)
	require.Equal(t, models.QuickSaleReference, txs[0].ReferenceID)
	require.Equal(t, "Coca 1L (x2)", txs[0].Label)
	require.Equal(t, models.TransactionQuickSale, txs[0].Type)
	require.Equal(t, float64(2000), txs[0].Amount)
}

func TestRecordQuickSaleKeepsSnapshotPrices(t *testing.T) {
	d := openTestDB(t)
	svc := NewSaleService(d)
	product := createTestProduct(t, d, "Eau 1.5L", 500, 300, 10)

	sale, err := svc.Record(RecordSaleInput{
		ProductID:     product.ID,
		Quantity:      1,
		ClientName:    "Rakoto",
		PaymentMethod: models.PaymentMobileMoney,
	})
	require.NoError(t, err)
	require.Equal(t, "Rakoto", sale.ClientName)

	// Later catalog edits must not rewrite the recorded sale.
	require.NoError(t, d.Model(&models.Product{}).Where("id = ?", product.ID).Update("unit_price", 9999).Error)
	var stored models.QuickSale
	require.NoError(t, d.First(&stored, sale.ID).Error)
	require.Equal(t, float64(500), stored.UnitPrice)
	require.Equal(t, float64(500), stored.Total)
}

func TestRecordQuickSaleValidation(t *testing.T) {
	d := openTestDB(t)
	svc := NewSaleService(d)
	product := createTestProduct(t, d, "Riz 5kg", 15000, 12000, 3)

	var verr *ValidationError

	_, err := svc.Record(RecordSaleInput{ProductID: 9999, Quantity: 1, PaymentMethod: models.PaymentEspeces})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "unknown", verr.Violations["product_id"])

	_, err = svc.Record(RecordSaleInput{ProductID: product.ID, Quantity: 0, PaymentMethod: models.PaymentEspeces})
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Violations, "quantity")

	_, err = svc.Record(RecordSaleInput{ProductID: product.ID, Quantity: 1})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "required", verr.Violations["payment_method"])
}
