package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/diewo77/madafacture/internal/models"
	"github.com/diewo77/madafacture/internal/validation"

	"gorm.io/gorm"
)

// JournalService computes the daily financial summary and finalizes the
// end-of-day closing snapshot.
type JournalService struct{ DB *gorm.DB }

func NewJournalService(db *gorm.DB) *JournalService { return &JournalService{DB: db} }

// ProductStat is one per-product-name bucket of the daily aggregation.
// Revenue and profit are pre-multiplied sums, so differently priced sales of
// the same name merge without re-deriving from averaged prices.
type ProductStat struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
}

// DailyStats is the computed view for one calendar date. Total comes from
// the transaction ledger (authoritative cash received); Profit comes from
// sales and invoice lines. The two are independent views that usually
// reconcile but legitimately diverge, e.g. for a credit sale with no
// matching payment.
type DailyStats struct {
	Date         string                      `json:"date"`
	Total        float64                     `json:"total"`
	Profit       float64                     `json:"profit"`
	Cash         float64                     `json:"cash"`
	Mobile       float64                     `json:"mobile"`
	Credit       float64                     `json:"credit"`
	Transactions []models.PaymentTransaction `json:"transactions"`
	Products     []ProductStat               `json:"products"`
}

func dayWindow(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := day
	end := day.Add(24*time.Hour - time.Millisecond)
	return start, end, nil
}

// ComputeDailyStats aggregates the date's transactions, quick sales and
// non-cancelled invoices. Pure function of stored data for the day window:
// two calls with no intervening writes return identical results.
func (s *JournalService) ComputeDailyStats(date string) (*DailyStats, error) {
	start, end, err := dayWindow(date)
	if err != nil {
		return nil, &ValidationError{Violations: validation.Violations{"date": "invalid_date"}}
	}

	var txs []models.PaymentTransaction
	if err := s.DB.Where("timestamp BETWEEN ? AND ?", start, end).
		Order("timestamp desc, id desc").Find(&txs).Error; err != nil {
		return nil, err
	}
	var sales []models.QuickSale
	if err := s.DB.Where("timestamp BETWEEN ? AND ?", start, end).
		Order("id asc").Find(&sales).Error; err != nil {
		return nil, err
	}
	var invoices []models.Invoice
	if err := s.DB.Preload("Items").
		Where("date = ? AND status <> ?", date, models.StatusAnnule).
		Order("id asc").Find(&invoices).Error; err != nil {
		return nil, err
	}

	buckets := map[string]*ProductStat{}
	bucket := func(name string) *ProductStat {
		b, ok := buckets[name]
		if !ok {
			b = &ProductStat{Name: name}
			buckets[name] = b
		}
		return b
	}
	for _, sale := range sales {
		b := bucket(sale.ProductName)
		b.Quantity += sale.Quantity
		b.Revenue += sale.Total
		b.Profit += (sale.UnitPrice - sale.PurchasePrice) * float64(sale.Quantity)
	}
	for _, inv := range invoices {
		for _, it := range inv.Items {
			b := bucket(it.Description)
			b.Quantity += it.Quantity
			b.Revenue += float64(it.Quantity) * it.UnitPrice
			b.Profit += (it.UnitPrice - it.PurchasePrice) * float64(it.Quantity)
		}
	}

	products := make([]ProductStat, 0, len(buckets))
	for _, b := range buckets {
		products = append(products, *b)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].Name < products[j].Name
	})

	stats := &DailyStats{Date: date, Transactions: txs, Products: products}
	for _, tx := range txs {
		stats.Total += tx.Amount
		switch tx.Method {
		case models.PaymentEspeces:
			stats.Cash += tx.Amount
		case models.PaymentMobileMoney:
			stats.Mobile += tx.Amount
		case models.PaymentCredit:
			stats.Credit += tx.Amount
		}
	}
	for _, p := range products {
		stats.Profit += p.Profit
	}
	return stats, nil
}

// FinalizeClosing snapshots the date's aggregation into an immutable
// DailyClosing. With replace, an existing closing for the date is deleted
// first - destructive, the caller must have confirmed. The snapshot insert
// and the NextClosingNumber advance are one transaction.
func (s *JournalService) FinalizeClosing(date string, replace bool) (*models.DailyClosing, error) {
	stats, err := s.ComputeDailyStats(date)
	if err != nil {
		return nil, err
	}
	if len(stats.Transactions) == 0 {
		return nil, ErrNothingToClose
	}

	var existing models.DailyClosing
	found := true
	if err := s.DB.Where("date = ?", date).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		found = false
	}
	if found && !replace {
		return nil, ErrClosingExists
	}

	seqMu.Lock()
	defer seqMu.Unlock()

	var settings models.UserSettings
	if err := s.DB.First(&settings).Error; err != nil {
		return nil, err
	}
	number := fmt.Sprintf("CLOT-%s-%03d", strings.ReplaceAll(date, "-", ""), settings.NextClosingNumber)

	closing := models.DailyClosing{
		Number:            number,
		Date:              date,
		Timestamp:         time.Now(),
		TotalRevenue:      stats.Total,
		TotalProfit:       stats.Profit,
		CashAmount:        stats.Cash,
		MobileAmount:      stats.Mobile,
		CreditAmount:      stats.Credit,
		TransactionsCount: len(stats.Transactions),
	}
	for _, p := range stats.Products {
		closing.Products = append(closing.Products, models.ClosingProduct{
			Name:     p.Name,
			Quantity: p.Quantity,
			Revenue:  p.Revenue,
			Profit:   p.Profit,
		})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if found {
			if err := tx.Where("closing_id = ?", existing.ID).Delete(&models.ClosingProduct{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.DailyClosing{}, existing.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&closing).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserSettings{}).
			Where("id = ?", settings.ID).
			UpdateColumn("next_closing_number", gorm.Expr("next_closing_number + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &closing, nil
}

// ClosingForDate returns the archived closing for a date, nil if none.
func (s *JournalService) ClosingForDate(date string) (*models.DailyClosing, error) {
	var closing models.DailyClosing
	err := s.DB.Preload("Products").Where("date = ?", date).First(&closing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &closing, nil
}

// ListClosings returns archived closings, newest first.
func (s *JournalService) ListClosings(limit int) ([]models.DailyClosing, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var closings []models.DailyClosing
	if err := s.DB.Preload("Products").Order("date desc").Limit(limit).Find(&closings).Error; err != nil {
		return nil, err
	}
	return closings, nil
}
