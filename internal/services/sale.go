package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/madafacture/internal/models"
	"github.com/diewo77/madafacture/internal/validation"

	"gorm.io/gorm"
)

// SaleService records direct point-of-sale transactions: a QuickSale row,
// its ledger transaction and the stock decrement, all in one unit.
type SaleService struct{ DB *gorm.DB }

func NewSaleService(db *gorm.DB) *SaleService { return &SaleService{DB: db} }

type RecordSaleInput struct {
	ProductID     uint                 `json:"product_id"`
	Quantity      int                  `json:"quantity"`
	ClientName    string               `json:"client_name"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

func (s *SaleService) Record(in RecordSaleInput) (*models.QuickSale, error) {
	violations := validation.Violations{}
	if in.ProductID == 0 {
		violations["product_id"] = "required"
	}
	validation.MinInt("quantity", in.Quantity, 1, violations)
	if in.PaymentMethod == "" {
		violations["payment_method"] = "required"
	}

	var product models.Product
	if in.ProductID != 0 {
		if err := s.DB.First(&product, in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				violations["product_id"] = "unknown"
			} else {
				return nil, err
			}
		}
	}
	if !violations.Empty() {
		return nil, &ValidationError{Violations: violations}
	}

	if in.ClientName == "" {
		in.ClientName = "Client de passage"
	}

	now := time.Now()
	sale := models.QuickSale{
		Timestamp:     now,
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      in.Quantity,
		UnitPrice:     product.UnitPrice,
		PurchasePrice: product.PurchasePrice,
		Total:         float64(in.Quantity) * product.UnitPrice,
		PaymentMethod: in.PaymentMethod,
		ClientName:    in.ClientName,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		txn := models.PaymentTransaction{
			Timestamp:   now,
			Amount:      sale.Total,
			Method:      in.PaymentMethod,
			ReferenceID: models.QuickSaleReference,
			Label:       fmt.Sprintf("%s (x%d)", product.Name, in.Quantity),
			ClientName:  in.ClientName,
			Type:        models.TransactionQuickSale,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("stock", gorm.Expr("stock - ?", in.Quantity)).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
