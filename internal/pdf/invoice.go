package pdf

import (
	"fmt"
	"strings"

	"github.com/diewo77/madafacture/internal/format"
	"github.com/diewo77/madafacture/internal/models"

	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Invoice renders a Facture, Devis or Reçu into PDF bytes.
func Invoice(inv models.Invoice, client models.Client, settings models.UserSettings) ([]byte, error) {
	title := strings.ToUpper(string(inv.Type))
	if inv.Type == models.DocumentRecu {
		title = "REÇU DE CAISSE"
	}

	m := newDocument()
	m.AddRows(headerRows(settings, title, inv.Number, inv.Date, inv.DueDate)...)

	// Bloc client
	m.AddRow(6, text.NewCol(12, "CLIENT / DESTINATAIRE :", props.Text{Top: 2, Size: 7, Style: fontstyle.Bold, Color: &colorLight}))
	m.AddRow(6, text.NewCol(12, strings.ToUpper(client.Name), props.Text{Size: 10, Style: fontstyle.Bold, Color: &colorPrimary}))
	address := client.Address
	if address == "" {
		address = "Adresse non communiquée"
	}
	m.AddRow(4, text.NewCol(12, address, props.Text{Size: 7, Color: &colorLight}))
	if client.Phone != "" {
		m.AddRow(4, text.NewCol(12, "Tél: "+client.Phone, props.Text{Size: 7, Color: &colorLight}))
	}
	if client.NIF != "" {
		stat := client.STAT
		if stat == "" {
			stat = "N/A"
		}
		m.AddRow(4, text.NewCol(12, fmt.Sprintf("NIF: %s | STAT: %s", client.NIF, stat), props.Text{Size: 7, Color: &colorLight}))
	}
	m.AddRow(4)

	// Tableau des articles
	m.AddRow(7,
		text.NewCol(1, "#", headerCell(align.Center)),
		text.NewCol(5, "DÉSIGNATION", headerCell(align.Left)),
		text.NewCol(1, "QTÉ", headerCell(align.Center)),
		text.NewCol(1, "UNITÉ", headerCell(align.Center)),
		text.NewCol(2, "P.U ("+settings.Currency+")", headerCell(align.Right)),
		text.NewCol(2, "TOTAL HT", headerCell(align.Right)),
	).WithStyle(&props.Cell{BackgroundColor: &colorPrimary})

	for i, it := range inv.Items {
		unit := it.Unit
		if unit == "" {
			unit = "U"
		}
		m.AddRow(6,
			text.NewCol(1, fmt.Sprint(i+1), bodyCell(align.Center)),
			text.NewCol(5, it.Description, bodyCell(align.Left)),
			text.NewCol(1, fmt.Sprint(it.Quantity), bodyCell(align.Center)),
			text.NewCol(1, unit, bodyCell(align.Center)),
			text.NewCol(2, amount(it.UnitPrice, settings), bodyCell(align.Right)),
			text.NewCol(2, amount(float64(it.Quantity)*it.UnitPrice, settings), bodyCell(align.Right)),
		)
	}
	m.AddRow(4)

	// Résumé financier
	m.AddRow(5,
		text.NewCol(8, "", props.Text{}),
		text.NewCol(2, "TOTAL HORS-TAXES :", props.Text{Size: 8, Color: &colorPrimary}),
		text.NewCol(2, amount(inv.Subtotal, settings), props.Text{Size: 8, Align: align.Right, Color: &colorPrimary}),
	)
	if inv.VATTotal > 0 {
		m.AddRow(5,
			text.NewCol(8, "", props.Text{}),
			text.NewCol(2, vatLabel(inv.Items), props.Text{Size: 8, Color: &colorPrimary}),
			text.NewCol(2, amount(inv.VATTotal, settings), props.Text{Size: 8, Align: align.Right, Color: &colorPrimary}),
		)
	}
	m.AddRows(row.New(8).Add(
		text.NewCol(8, "", props.Text{}),
		text.NewCol(2, "TOTAL TTC :", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Color: &colorWhite}),
		text.NewCol(2, amount(inv.Total, settings), props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: &colorWhite}),
	).WithStyle(&props.Cell{BackgroundColor: &colorPrimary}))

	// Somme en lettres
	m.AddRow(5, text.NewCol(12, "Somme arrêtée à la valeur de :", props.Text{Top: 2, Size: 7, Style: fontstyle.Italic, Color: &colorLight}))
	m.AddRow(6, text.NewCol(12, strings.ToUpper(format.AmountInWords(inv.Total)), props.Text{Size: 8, Style: fontstyle.Bold, Color: &colorPrimary}))

	// Bloc de règlement
	if inv.PaidAmount > 0 {
		method := models.PaymentEspeces
		if inv.PaymentMethod != nil {
			method = *inv.PaymentMethod
		}
		m.AddRow(2)
		m.AddRow(5, text.NewCol(12, "MODE DE RÈGLEMENT : "+string(method), props.Text{Size: 8, Style: fontstyle.Bold, Color: &colorAccent}))
		m.AddRow(5, text.NewCol(12, "MONTANT ENCAISSÉ : "+amount(inv.PaidAmount, settings), props.Text{Size: 8, Style: fontstyle.Bold, Color: &colorAccent}))
	}

	if inv.Notes != "" {
		m.AddRow(2)
		m.AddRow(5, text.NewCol(12, inv.Notes, props.Text{Size: 7, Style: fontstyle.Italic, Color: &colorLight}))
	}

	m.AddRows(footerRows(settings)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// vatLabel names the VAT summary line. The rate appears only when every
// line item carries the same rate; mixed-rate invoices get the bare label.
func vatLabel(items []models.InvoiceItem) string {
	rate := 0.0
	for i, it := range items {
		if i == 0 {
			rate = it.VATRate
			continue
		}
		if it.VATRate != rate {
			return "TVA :"
		}
	}
	if rate > 0 {
		return fmt.Sprintf("TVA (%g%%) :", rate)
	}
	return "TVA :"
}

func headerCell(a align.Type) props.Text {
	return props.Text{Top: 1.5, Size: 7, Style: fontstyle.Bold, Align: a, Color: &colorWhite}
}

func bodyCell(a align.Type) props.Text {
	return props.Text{Top: 1, Size: 7, Align: a, Color: &colorPrimary}
}
