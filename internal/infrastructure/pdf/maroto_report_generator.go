// Package pdf implementa la versión PDF del reporte de movimientos de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Control de Inventario       │  Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Código | Descripción | Tipo | Cant. | Saldo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: unidades de entrada / salida                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK ACTUAL: Código | Descripción | Total                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/control-inventario/internal/application/report"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
	"github.com/jhoicas/control-inventario/internal/domain/inventory"
)

var _ report.MovementsPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorSalida  = &props.Color{Red: 185, Green: 28, Blue: 28}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.MovementsPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title    string
	subtitle string
}

// NewMarotoReportGenerator construye el generador con el encabezado del negocio.
func NewMarotoReportGenerator(title, subtitle string) *MarotoReportGenerator {
	return &MarotoReportGenerator{title: title, subtitle: subtitle}
}

// GenerateMovementsPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementsPDF(
	_ context.Context,
	history []entity.Transaction,
	products []entity.Product,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Movimientos", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(movementsHeaderRow())
	m.AddRows(movementRows(history)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(history))

	if len(products) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(stockHeaderRow())
		m.AddRows(stockRows(products)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(g.subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+inventory.FormatDate(generatedAt), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
	}))
}

func movementsHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Fecha", 3, align.Left),
		headerCell("Código", 2, align.Left),
		headerCell("Descripción", 3, align.Left),
		headerCell("Tipo", 1, align.Center),
		headerCell("Cantidad", 1, align.Right),
		headerCell("Saldo", 2, align.Right),
	)
}

// movementRows: una fila por movimiento, en el orden de la bitácora.
func movementRows(history []entity.Transaction) []core.Row {
	rows := make([]core.Row, 0, len(history))
	for _, tx := range history {
		typeStyle := props.Text{Size: 8, Align: align.Center, Top: 1}
		if tx.Type == entity.MovementSalida {
			typeStyle.Color = colorSalida
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(tx.Date, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(tx.Code, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(tx.Description, props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(string(tx.Type), typeStyle)),
			col.New(1).Add(text.New(formatThousands(tx.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(formatThousands(tx.ResultingBalance), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

// summaryRow: unidades totales de entrada y salida del periodo.
func summaryRow(history []entity.Transaction) core.Row {
	var in, out int
	for _, tx := range history {
		switch tx.Type {
		case entity.MovementEntrada:
			in += tx.Quantity
		case entity.MovementSalida:
			out += tx.Quantity
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Movimientos:"),
			label("Unidades de entrada:"),
			label("Unidades de salida:"),
		),
		col.New(3).Add(
			value(strconv.Itoa(len(history))),
			value(formatThousands(in)),
			value(formatThousands(out)),
		),
	)
}

func stockHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Código", 3, align.Left),
		headerCell("Descripción (stock actual)", 6, align.Left),
		headerCell("Total", 3, align.Right),
	)
}

func stockRows(products []entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(p.Code, props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(p.Description, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(formatThousands(p.Total), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatThousands inserta puntos de miles. Ej: 25000 → "25.000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
