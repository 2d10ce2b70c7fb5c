package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/madafacture/internal/models"
	"github.com/diewo77/madafacture/internal/validation"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// InvoiceService turns a cart of items plus client/payment selections into a
// durable invoice with its side effects: stock decrement, optional immediate
// payment transaction, and the numbering sequence advance.
type InvoiceService struct{ DB *gorm.DB }

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

type CreateInvoiceItem struct {
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	PurchasePrice float64 `json:"purchase_price"`
	VATRate       float64 `json:"vat_rate"`
	Unit          string  `json:"unit"`
}

type CreateInvoiceInput struct {
	ClientID      uint                 `json:"client_id"`
	Type          models.DocumentType  `json:"type"`
	Date          string               `json:"date"`
	DueDate       string               `json:"due_date"`
	Items         []CreateInvoiceItem  `json:"items"`
	Notes         string               `json:"notes"`
	PayNow        bool                 `json:"pay_now"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// ComputeTotals computes subtotal, VAT and grand total from line items.
// VATRate is a percentage (20 means 20%). Line amounts are pre-multiplied
// before summing; totals are stored on the invoice and never recomputed, so
// later rate changes leave history untouched.
func (s *InvoiceService) ComputeTotals(items []models.InvoiceItem) (subtotal, vatTotal, total float64) {
	for _, it := range items {
		line := float64(it.Quantity) * it.UnitPrice
		subtotal += line
		vatTotal += line * it.VATRate / 100
	}
	total = subtotal + vatTotal
	return subtotal, vatTotal, total
}

func (s *InvoiceService) validate(in CreateInvoiceInput) (*models.Client, error) {
	violations := validation.Violations{}
	if in.ClientID == 0 {
		violations["client_id"] = "required"
	}
	if len(in.Items) == 0 {
		violations["items"] = "required"
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			violations["items"] = "invalid_quantity"
		}
		if it.UnitPrice < 0 || it.PurchasePrice < 0 {
			violations["items"] = "invalid_price"
		}
		if it.VATRate < 0 {
			violations["items"] = "invalid_vat_rate"
		}
	}
	switch in.Type {
	case models.DocumentFacture, models.DocumentDevis, models.DocumentRecu:
	default:
		violations["type"] = "invalid_type"
	}

	var client models.Client
	if in.ClientID != 0 {
		if err := s.DB.First(&client, in.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				violations["client_id"] = "unknown"
			} else {
				return nil, err
			}
		}
	}
	if !violations.Empty() {
		return nil, &ValidationError{Violations: violations}
	}
	return &client, nil
}

// Create persists the invoice and applies its side effects as one logical
// unit: the invoice insert, the stock decrements, the optional payment
// transaction and the NextInvoiceNumber advance either all commit or none do.
func (s *InvoiceService) Create(in CreateInvoiceInput) (*models.Invoice, error) {
	client, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if in.Date == "" {
		in.Date = now.Format(dateLayout)
	}
	issued, err := time.ParseInLocation(dateLayout, in.Date, time.Local)
	if err != nil {
		return nil, &ValidationError{Violations: validation.Violations{"date": "invalid_date"}}
	}
	if in.DueDate == "" {
		in.DueDate = issued.AddDate(0, 0, 30).Format(dateLayout)
	}

	items := make([]models.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, models.InvoiceItem{
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			PurchasePrice: it.PurchasePrice,
			VATRate:       it.VATRate,
			Unit:          it.Unit,
		})
	}

	seqMu.Lock()
	defer seqMu.Unlock()

	var settings models.UserSettings
	if err := s.DB.First(&settings).Error; err != nil {
		return nil, err
	}

	prefix := settings.InvoicePrefix
	if in.Type == models.DocumentDevis {
		prefix = "DEV-"
	}
	number := fmt.Sprintf("%s%d-%03d", prefix, issued.Year(), settings.NextInvoiceNumber)

	subtotal, vatTotal, total := s.ComputeTotals(items)

	inv := models.Invoice{
		Number:   number,
		Date:     in.Date,
		DueDate:  in.DueDate,
		ClientID: in.ClientID,
		Type:     in.Type,
		Items:    items,
		Subtotal: subtotal,
		VATTotal: vatTotal,
		Total:    total,
		Status:   models.StatusValide,
		Notes:    in.Notes,
		Domain:   settings.Domain,
	}
	if in.PayNow {
		method := in.PaymentMethod
		inv.Status = models.StatusPaye
		inv.PaidAmount = total
		inv.IsPaid = true
		inv.PaymentMethod = &method
		inv.PaidAt = &now
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Invoice first so no stock mutation can outlive a failed insert.
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		if inv.Type == models.DocumentFacture || inv.Type == models.DocumentRecu {
			for _, it := range inv.Items {
				// Match by name against the description snapshot;
				// free-text lines simply do not touch stock. No floor:
				// stock may go negative.
				if err := tx.Model(&models.Product{}).
					Where("name = ?", it.Description).
					UpdateColumn("stock", gorm.Expr("stock - ?", it.Quantity)).Error; err != nil {
					return err
				}
			}

			if in.PayNow {
				txn := models.PaymentTransaction{
					Timestamp:   now,
					Amount:      total,
					Method:      in.PaymentMethod,
					ReferenceID: fmt.Sprint(inv.ID),
					Label:       number,
					ClientName:  client.Name,
					Type:        models.TransactionInvoicePayment,
				}
				if err := tx.Create(&txn).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&models.UserSettings{}).
			Where("id = ?", settings.ID).
			UpdateColumn("next_invoice_number", gorm.Expr("next_invoice_number + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Get loads an invoice with its items.
func (s *InvoiceService) Get(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.Preload("Items").First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
