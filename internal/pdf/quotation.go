// Package pdf renders quotations as A4 documents.
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diewo77/go-cotizaciones/internal/format"
	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/internal/services"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const margin = 15

var (
	dark      = &props.Color{Red: 15, Green: 15, Blue: 18}
	accent    = &props.Color{Red: 200, Green: 240, Blue: 74}
	gray      = &props.Color{Red: 100, Green: 100, Blue: 120}
	lightGray = &props.Color{Red: 240, Green: 240, Blue: 245}
	white     = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Data is everything the document shows. The quotation must already carry
// its computed totals; nothing is recalculated here except line subtotals.
type Data struct {
	Quotation models.Quotation
	Client    *models.Client
	Company   models.Company
}

// Filename is the suggested download name.
func Filename(q models.Quotation) string {
	return q.Number + ".pdf"
}

// QuotationPDF renders d and returns the PDF bytes.
func QuotationPDF(d Data) ([]byte, error) {
	if d.Quotation.Number == "" {
		return nil, fmt.Errorf("quotation has no number")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(margin).
		WithTopMargin(margin).
		WithRightMargin(margin).
		Build()
	m := maroto.New(cfg)

	m.AddRows(headerRows(d)...)
	m.AddRows(partyRows(d)...)
	m.AddRows(line.NewRow(4, props.Line{Color: accent, Thickness: 0.5}))
	m.AddRows(itemRows(d.Quotation)...)
	m.AddRows(summaryRows(d.Quotation)...)
	if notes := strings.TrimSpace(d.Quotation.Notes); notes != "" {
		m.AddRows(
			text.NewRow(8, "NOTAS:", props.Text{Top: 4, Size: 8, Style: fontstyle.Bold, Color: gray}),
			text.NewRow(12, notes, props.Text{Size: 8, Color: dark}),
		)
	}
	if err := m.RegisterFooter(footerRow(d.Company)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(d Data) []core.Row {
	q := d.Quotation
	name := d.Company.Name
	if name == "" {
		name = "Mi Empresa"
	}
	band := &props.Cell{BackgroundColor: dark}
	status := q.Status
	badge := &props.Cell{BackgroundColor: hexColor(status.Color())}

	return []core.Row{
		row.New(10).Add(
			text.NewCol(8, name, props.Text{Top: 2, Left: 3, Size: 16, Style: fontstyle.Bold, Color: white}),
			text.NewCol(4, q.Number, props.Text{Top: 2, Right: 3, Size: 13, Style: fontstyle.Bold, Align: align.Right, Color: accent}),
		).WithStyle(band),
		row.New(6).Add(
			text.NewCol(8, "SISTEMA DE COTIZACIONES", props.Text{Left: 3, Size: 7, Color: accent}),
			text.NewCol(4, "Fecha: "+format.Date(q.Date), props.Text{Right: 3, Size: 8, Align: align.Right, Color: white}),
		).WithStyle(band),
		row.New(8).Add(
			col.New(8),
			text.NewCol(4, "Válida hasta: "+format.Date(q.ValidUntil), props.Text{Right: 3, Size: 8, Align: align.Right, Color: white}),
		).WithStyle(band),
		row.New(4),
		row.New(7).Add(
			col.New(9),
			text.NewCol(3, strings.ToUpper(status.Label()), props.Text{Top: 1.5, Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: white}).
				WithStyle(badge),
		),
	}
}

// PartyLines returns the detail lines printed under the company and client names.
func PartyLines(company models.Company, client *models.Client) (from, to []string) {
	for _, s := range []string{company.RFC, company.Address, company.Phone, company.Email} {
		if s != "" {
			from = append(from, s)
		}
	}
	if client != nil {
		for _, s := range []string{client.Company, client.RFC, client.Address, client.Email, client.Phone} {
			if s != "" {
				to = append(to, s)
			}
		}
	}
	return from, to
}

func partyRows(d Data) []core.Row {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Color: gray}
	nameStyle := props.Text{Size: 10, Style: fontstyle.Bold, Color: dark}
	detail := props.Text{Size: 8, Color: gray}

	clientName := "Cliente no encontrado"
	if d.Client != nil {
		clientName = d.Client.Name
	}
	companyName := d.Company.Name
	if companyName == "" {
		companyName = "—"
	}

	rows := []core.Row{
		row.New(6).Add(text.NewCol(6, "DE:", label), text.NewCol(6, "PARA:", label)),
		row.New(6).Add(text.NewCol(6, companyName, nameStyle), text.NewCol(6, clientName, nameStyle)),
	}
	from, to := PartyLines(d.Company, d.Client)
	n := len(from)
	if len(to) > n {
		n = len(to)
	}
	for i := 0; i < n; i++ {
		rows = append(rows, row.New(4.5).Add(
			text.NewCol(6, at(from, i), detail),
			text.NewCol(6, at(to, i), detail),
		))
	}
	return rows
}

var (
	itemHeaders = []string{"#", "Concepto", "Descripción", "Cant.", "Unidad", "P. Unit.", "Dto.", "Subtotal"}
	itemSizes   = []int{1, 2, 2, 1, 1, 2, 1, 2}
	itemAligns  = []align.Type{align.Center, align.Left, align.Left, align.Center, align.Center, align.Right, align.Center, align.Right}
)

// ItemCells returns the table cells for one line item.
func ItemCells(idx int, item models.LineItem) []string {
	name := item.Name
	if name == "" {
		name = "—"
	}
	unit := item.Unit
	if unit == "" {
		unit = models.UnitPiece
	}
	disc := "—"
	if item.Discount.Float() != 0 {
		disc = format.Percent(item.Discount.Float())
	}
	return []string{
		strconv.Itoa(idx + 1),
		name,
		item.Description,
		strconv.FormatFloat(item.Quantity.Float(), 'f', -1, 64),
		unit,
		format.Money(item.Price.Float()),
		disc,
		format.Money(services.LineSubtotal(item)),
	}
}

func itemRows(q models.Quotation) []core.Row {
	head := row.New(8).WithStyle(&props.Cell{BackgroundColor: dark})
	for i, h := range itemHeaders {
		head.Add(text.NewCol(itemSizes[i], h, props.Text{Top: 2, Left: 1, Right: 1, Size: 7.5, Style: fontstyle.Bold, Align: itemAligns[i], Color: accent}))
	}
	rows := []core.Row{head}
	for idx, item := range q.Items {
		cells := ItemCells(idx, item)
		r := row.New(8)
		for i, c := range cells {
			style := fontstyle.Normal
			if i == 1 || i == len(cells)-1 {
				style = fontstyle.Bold
			}
			r.Add(text.NewCol(itemSizes[i], c, props.Text{Top: 2, Left: 1, Right: 1, Size: 8, Style: style, Align: itemAligns[i], Color: dark}))
		}
		if idx%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: lightGray})
		}
		rows = append(rows, r)
	}
	return rows
}

// SummaryLine is one label/value pair of the totals block.
type SummaryLine struct {
	Label string
	Value string
}

// SummaryLines lists the totals block. The discount line only appears when
// a global discount is set.
func SummaryLines(q models.Quotation) []SummaryLine {
	lines := []SummaryLine{{"Subtotal:", format.Money(q.Subtotal)}}
	if gd := q.GlobalDiscount.Float(); gd > 0 {
		lines = append(lines, SummaryLine{
			Label: fmt.Sprintf("Descuento (%s):", format.Percent(gd)),
			Value: "- " + format.Money(q.DiscountAmount),
		})
	}
	lines = append(lines,
		SummaryLine{fmt.Sprintf("IVA (%s):", format.Percent(q.TaxRate.Float())), format.Money(q.TaxAmount)},
		SummaryLine{"TOTAL:", format.Money(q.Total)},
	)
	return lines
}

func summaryRows(q models.Quotation) []core.Row {
	rows := []core.Row{row.New(4)}
	for _, l := range SummaryLines(q) {
		labelStyle := props.Text{Top: 1.5, Size: 9, Align: align.Right, Color: gray}
		valueStyle := props.Text{Top: 1.5, Right: 2, Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: dark}
		r := row.New(7)
		if l.Label == "TOTAL:" {
			labelStyle.Color, labelStyle.Style = accent, fontstyle.Bold
			valueStyle.Color, valueStyle.Size = white, 11
			r.Add(col.New(7), text.NewCol(2, l.Label, labelStyle).WithStyle(&props.Cell{BackgroundColor: dark}),
				text.NewCol(3, l.Value, valueStyle).WithStyle(&props.Cell{BackgroundColor: dark}))
		} else {
			r.Add(col.New(7), text.NewCol(2, l.Label, labelStyle), text.NewCol(3, l.Value, valueStyle))
		}
		rows = append(rows, r)
	}
	return rows
}

// FooterText is the contact line printed at the bottom of every page.
func FooterText(c models.Company) string {
	var parts []string
	for _, s := range []string{c.Name, c.Email, c.Phone} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

func footerRow(c models.Company) core.Row {
	return row.New(8).Add(
		text.NewCol(12, FooterText(c), props.Text{Top: 2.5, Size: 7, Align: align.Center, Color: gray}),
	).WithStyle(&props.Cell{BackgroundColor: lightGray})
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func hexColor(hex string) *props.Color {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return gray
	}
	return &props.Color{Red: int(v >> 16 & 0xff), Green: int(v >> 8 & 0xff), Blue: int(v & 0xff)}
}
