package services

import (
	"fmt"
	"testing"

	"github.com/diewo77/madafacture/internal/db"
	"github.com/diewo77/madafacture/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB returns an isolated in-memory sqlite store with the schema and
// the default settings row (numbering starts at 200).
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	for _, m := range db.AllModels() {
		require.NoError(t, d.AutoMigrate(m))
	}
	require.NoError(t, db.InitSettings(d))
	return d
}

func createTestClient(t *testing.T, d *gorm.DB, name string) models.Client {
	t.Helper()
	c := models.Client{Name: name, Type: models.ClientSociete, NIF: "1234567890"}
	require.NoError(t, d.Create(&c).Error)
	return c
}

func createTestProduct(t *testing.T, d *gorm.DB, name string, unitPrice, purchasePrice float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, UnitPrice: unitPrice, PurchasePrice: purchasePrice, Unit: "Unité", Stock: stock}
	require.NoError(t, d.Create(&p).Error)
	return p
}
