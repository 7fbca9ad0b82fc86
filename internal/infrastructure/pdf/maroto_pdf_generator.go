// Package pdf implementa la representación PDF del reporte de materiales
// consolidados de una plantilla o proyecto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la fuente (plantilla/proyecto) + título   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Fabricante | Ref | Material | Cant | Un |        │
//	│         P.Unit | Total | Procedencia                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: GRAN TOTAL + top de porcentajes                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ADVERTENCIAS: referencias rotas excluidas de los totales    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appbom "github.com/jhoicas/Presupuestos-api/internal/application/bom"
	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarning = &props.Color{Red: 180, Green: 90, Blue: 0}
)

var _ appbom.MaterialsPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa el sink PDF del reporte de materiales usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateMaterialsPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMaterialsPDF(_ context.Context, report *dto.BOMReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Materiales consolidados", true).
		WithAuthor(report.SourceName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de materiales consolidados
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(report.Materials) {
		m.AddRows(r)
	}

	// Totales y porcentajes
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	// Advertencias de referencias rotas
	if len(report.Warnings) > 0 {
		m.AddRows(line.NewRow(2))
		for _, r := range warningRows(report.Warnings) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte + nombre de la plantilla o proyecto.
func headerRow(report *dto.BOMReportResponse) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("MATERIALES CONSOLIDADOS", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(report.SourceName, props.Text{
				Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d materiales", len(report.Materials)), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Material", 3, align.Left),
		h("Cant.", 1, align.Right),
		h("Un.", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
		h("Procedencia", 2, align.Left),
	)
}

// tableItemRows: una fila por material consolidado. La procedencia lista en qué
// ensambles se consume y cuánto aporta cada uno.
func tableItemRows(items []dto.ConsolidatedItemDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, item := range items {
		name := item.Name
		if item.PartNumber != "" {
			name += " (" + item.PartNumber + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 7.5, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				name,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				item.TotalQuantity.StringFixed(2),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				item.Unit,
				props.Text{Size: 7.5, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(item.UnitPrice.StringFixed(0)),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(item.TotalCost.StringFixed(0)),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				usageSummary(item.Usages),
				props.Text{Size: 6.5, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// totalsRow: gran total + los porcentajes más pesados del presupuesto.
func totalsRow(report *dto.BOMReportResponse) core.Row {
	topPercent := ""
	for i, p := range report.Percentages {
		if i == 3 {
			break
		}
		if i > 0 {
			topPercent += "   "
		}
		topPercent += fmt.Sprintf("%s: %s%%", p.Key, p.Percent.StringFixed(1))
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New(topPercent, props.Text{Size: 7.5, Top: 6, Color: colorGray}),
		),
		col.New(3).Add(
			text.New("GRAN TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 4, Right: 2,
			}),
		),
		col.New(2).Add(
			text.New("$"+formatMoney(report.GrandTotal.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 4, Right: 1,
			}),
		),
	)
}

// warningRows: referencias rotas excluidas de los totales.
func warningRows(warnings []string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("ADVERTENCIAS (%d): totales parciales, referencias sin resolver excluidas", len(warnings)), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorWarning, Top: 1,
			}),
		)),
	}
	for _, w := range warnings {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("• "+w, props.Text{Size: 7, Color: colorWarning, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// usageSummary resume la procedencia: "Muro(3 × 100 = 300); Piso(1 × 50 = 50)".
func usageSummary(usages []dto.UsageDTO) string {
	parts := make([]string, 0, len(usages))
	for _, u := range usages {
		parts = append(parts, fmt.Sprintf("%s(%s × %s = %s)",
			u.AssemblyName, u.AssemblyQuantity.String(),
			u.PerAssemblyQuantity.String(), u.LineQuantity.String(),
		))
	}
	return strings.Join(parts, "; ")
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
