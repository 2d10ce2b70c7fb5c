package pdf

import (
	"fmt"
	"strings"

	"github.com/diewo77/madafacture/internal/models"

	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReportTotals carries the daily figures for the closing report.
type ReportTotals struct {
	Total  float64
	Profit float64
	Cash   float64
	Mobile float64
	Credit float64
}

// ProductRow is one line of the per-product breakdown table.
type ProductRow struct {
	Name     string
	Quantity int
	Revenue  float64
	Profit   float64
}

// DailyReport renders the closing summary for one date: revenue/profit
// cards, the per-product breakdown and the transaction journal.
func DailyReport(transactions []models.PaymentTransaction, products []ProductRow, totals ReportTotals, date string, settings models.UserSettings) ([]byte, error) {
	number := "CLOT-" + strings.ReplaceAll(date, "-", "")

	m := newDocument()
	m.AddRows(headerRows(settings, "RAPPORT DE CLÔTURE", number, date, "")...)

	// Cartes de synthèse
	m.AddRow(12,
		text.NewCol(6, "RECETTE TOTALE (TTC)", props.Text{Top: 1, Size: 7, Style: fontstyle.Bold, Color: &colorLight}),
		text.NewCol(6, "BÉNÉFICE ESTIMÉ", props.Text{Top: 1, Size: 7, Style: fontstyle.Bold, Color: &colorLight}),
	)
	m.AddRow(8,
		text.NewCol(6, amount(totals.Total, settings), props.Text{Size: 12, Style: fontstyle.Bold, Color: &colorPrimary}),
		text.NewCol(6, amount(totals.Profit, settings), props.Text{Size: 12, Style: fontstyle.Bold, Color: &colorAccent}),
	)
	m.AddRow(8,
		text.NewCol(4, "Espèces : "+amount(totals.Cash, settings), props.Text{Top: 2, Size: 8, Color: &colorPrimary}),
		text.NewCol(4, "M-Money : "+amount(totals.Mobile, settings), props.Text{Top: 2, Size: 8, Align: align.Center, Color: &colorPrimary}),
		text.NewCol(4, "Crédits : "+amount(totals.Credit, settings), props.Text{Top: 2, Size: 8, Align: align.Right, Color: &colorPrimary}),
	)
	m.AddRow(4)

	// Détail des ventes par article
	m.AddRow(7, text.NewCol(12, "DÉTAIL DES VENTES PAR ARTICLE", props.Text{Top: 1, Size: 9, Style: fontstyle.Bold, Color: &colorPrimary}))
	m.AddRow(7,
		text.NewCol(6, "ARTICLE", headerCell(align.Left)),
		text.NewCol(2, "UNITÉS", headerCell(align.Center)),
		text.NewCol(2, "CHIFFRE D'AFFAIRE", headerCell(align.Right)),
		text.NewCol(2, "MARGE", headerCell(align.Right)),
	).WithStyle(&props.Cell{BackgroundColor: &colorPrimary})
	for _, p := range products {
		m.AddRow(6,
			text.NewCol(6, p.Name, bodyCell(align.Left)),
			text.NewCol(2, fmt.Sprint(p.Quantity), bodyCell(align.Center)),
			text.NewCol(2, amount(p.Revenue, settings), bodyCell(align.Right)),
			text.NewCol(2, amount(p.Profit, settings), bodyCell(align.Right)),
		)
	}
	m.AddRow(4)

	// Journal des flux
	m.AddRow(7, text.NewCol(12, "JOURNAL DES FLUX", props.Text{Top: 1, Size: 9, Style: fontstyle.Bold, Color: &colorPrimary}))
	m.AddRows(row.New(7).Add(
		text.NewCol(2, "HEURE", headerCell(align.Left)),
		text.NewCol(4, "LIBELLÉ", headerCell(align.Left)),
		text.NewCol(2, "CLIENT", headerCell(align.Left)),
		text.NewCol(2, "MODE", headerCell(align.Center)),
		text.NewCol(2, "MONTANT", headerCell(align.Right)),
	).WithStyle(&props.Cell{BackgroundColor: &colorPrimary}))
	for _, tx := range transactions {
		m.AddRow(6,
			text.NewCol(2, tx.Timestamp.Format("15:04"), bodyCell(align.Left)),
			text.NewCol(4, tx.Label, bodyCell(align.Left)),
			text.NewCol(2, tx.ClientName, bodyCell(align.Left)),
			text.NewCol(2, string(tx.Method), bodyCell(align.Center)),
			text.NewCol(2, amount(tx.Amount, settings), bodyCell(align.Right)),
		)
	}

	m.AddRows(footerRows(settings)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
