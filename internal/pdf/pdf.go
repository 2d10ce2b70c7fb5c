// Package pdf renders invoices and daily closing reports. Renderers are pure
// functions of their inputs: no store access, inputs are never mutated.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"time"

	"github.com/diewo77/madafacture/internal/format"
	"github.com/diewo77/madafacture/internal/models"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	img "github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Charte graphique unifiée (slate/emerald, même palette que l'interface).
var (
	colorPrimary = props.Color{Red: 15, Green: 23, Blue: 42}
	colorAccent  = props.Color{Red: 5, Green: 150, Blue: 105}
	colorLight   = props.Color{Red: 100, Green: 116, Blue: 139}
	colorWhite   = props.Color{Red: 255, Green: 255, Blue: 255}
)

const displayDate = "02/01/2006"

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()
	return maroto.New(cfg)
}

// logoCol loads the configured logo. A missing or undecodable file logs a
// warning and the document renders without it rather than failing.
func logoCol(size int, logoPath string) core.Col {
	data, err := os.ReadFile(logoPath)
	if err != nil {
		log.Printf("logo invalide, document généré sans logo: %v", err)
		return col.New(size)
	}
	_, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Printf("logo invalide, document généré sans logo: %v", err)
		return col.New(size)
	}
	ext := extension.Png
	if kind == "jpeg" {
		ext = extension.Jpg
	}
	return img.NewFromBytesCol(size, data, ext, props.Rect{Center: true, Percent: 90})
}

// headerRows draws the shared document header: company identity on the left,
// the document cartouche (title, number, dates) on the right.
func headerRows(settings models.UserSettings, title, number, date, dueDate string) []core.Row {
	companyCols := 8
	var left []core.Col
	if settings.LogoURL != "" {
		left = append(left, logoCol(2, settings.LogoURL))
		companyCols = 6
	}
	left = append(left, col.New(companyCols).Add(
		text.New(settings.BusinessName, props.Text{Size: 13, Style: fontstyle.Bold, Color: &colorPrimary}),
		text.New(settings.Address, props.Text{Top: 6, Size: 7, Color: &colorLight}),
		text.New("Tél: "+settings.Phone+"  Email: "+settings.Email, props.Text{Top: 10, Size: 7, Color: &colorLight}),
		text.New(fmt.Sprintf("NIF: %s | STAT: %s", settings.NIF, settings.STAT), props.Text{Top: 14, Size: 7, Color: &colorLight}),
		text.New("RCS: "+settings.RCS, props.Text{Top: 18, Size: 7, Color: &colorLight}),
	))

	cartouche := []core.Component{
		text.New(title, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: &colorAccent}),
		text.New("N° : "+number, props.Text{Top: 7, Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &colorPrimary}),
		text.New("Date : "+formatDisplayDate(date), props.Text{Top: 13, Size: 8, Align: align.Right, Color: &colorPrimary}),
	}
	if dueDate != "" {
		cartouche = append(cartouche,
			text.New("Échéance : "+formatDisplayDate(dueDate), props.Text{Top: 17, Size: 8, Align: align.Right, Color: &colorPrimary}))
	}
	left = append(left, col.New(4).Add(cartouche...))

	return []core.Row{
		row.New(24).Add(left...),
		line.NewRow(4, props.Line{Color: &colorLight, SizePercent: 100}),
	}
}

// footerRows draws the signature blocks and the legal line.
func footerRows(settings models.UserSettings) []core.Row {
	return []core.Row{
		row.New(4),
		line.NewRow(2, props.Line{Color: &colorLight, SizePercent: 100}),
		row.New(10).Add(
			text.NewCol(6, "LE CLIENT (Bon pour accord)", props.Text{Top: 2, Size: 8, Style: fontstyle.Bold, Color: &colorPrimary}),
			text.NewCol(6, "LA DIRECTION", props.Text{Top: 2, Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: &colorPrimary}),
		),
		row.New(8).Add(
			text.NewCol(12,
				fmt.Sprintf("MadaFacture - Document certifié conforme - NIF %s - %s", settings.NIF, settings.BusinessName),
				props.Text{Top: 4, Size: 6, Align: align.Center, Color: &colorLight}),
		),
	}
}

func formatDisplayDate(date string) string {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return date
	}
	return d.Format(displayDate)
}

func amount(v float64, settings models.UserSettings) string {
	return format.Amount(v, settings.Currency)
}
