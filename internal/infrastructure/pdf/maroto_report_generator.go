// Package pdf implementa el render del informe de movimientos de stock con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período + fecha de generación             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Tipo | Cant | V.Unit | V.Total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: entradas / salidas / balance / valores            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	"github.com/Rhymond/go-money"
	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const reportDateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.MovementsReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementsReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementsReport(_ context.Context, data report.ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(data.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(data.Rows) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range summaryRows(data) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período + fecha de generación (der).
func headerRow(data report.ReportData) core.Row {
	period := "Todo el historial"
	if data.From != nil && data.To != nil {
		period = data.From.Format(reportDateLayout) + " – " + data.To.Format(reportDateLayout)
	} else if data.From != nil {
		period = "Desde " + data.From.Format(reportDateLayout)
	} else if data.To != nil {
		period = "Hasta " + data.To.Format(reportDateLayout)
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New(data.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+period, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Generado: "+data.GeneratedAt.Format(reportDateLayout+" 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("V. Unit.", 2, align.Right),
		h("V. Total", 2, align.Right),
	)
}

// tableRows: una fila por movimiento.
func tableRows(rows []report.ReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				r.Date.Format(reportDateLayout),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				r.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				typeLabel(r.Type),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", r.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatBRL(r.UnitValue),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatBRL(r.TotalValue),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// summaryRows: bloque de agregados del período.
func summaryRows(data report.ReportData) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	s := data.Summary
	return []core.Row{
		row.New(6).Add(
			col.New(8).Add(label("Entradas (unidades / asientos):")),
			col.New(4).Add(value(fmt.Sprintf("%d / %d", s.Entries, s.EntryCount))),
		),
		row.New(6).Add(
			col.New(8).Add(label("Salidas (unidades / asientos):")),
			col.New(4).Add(value(fmt.Sprintf("%d / %d", s.Exits, s.ExitCount))),
		),
		row.New(6).Add(
			col.New(8).Add(label("Balance (unidades):")),
			col.New(4).Add(value(fmt.Sprintf("%d", s.Balance))),
		),
		row.New(6).Add(
			col.New(8).Add(label("Valor de entradas (a costo):")),
			col.New(4).Add(value(formatBRL(s.EntriesValue))),
		),
		row.New(6).Add(
			col.New(8).Add(label("Valor de salidas (a venta):")),
			col.New(4).Add(value(formatBRL(s.ExitsValue))),
		),
	}
}

func typeLabel(t string) string {
	if t == entity.MovementTypeExit {
		return "Salida"
	}
	return "Entrada"
}

// formatBRL formatea un decimal como moneda brasileña (R$ 1.234,56) vía go-money.
func formatBRL(d decimal.Decimal) string {
	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.BRL).Display()
}
