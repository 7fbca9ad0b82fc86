// Package export implementa los sinks tabulares del reporte de materiales
// consolidados. El redondeo a 2 decimales y el formato de miles ocurren SOLO
// aquí, en la frontera de presentación: el motor calcula siempre con precisión
// decimal completa.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbom "github.com/jhoicas/Presupuestos-api/internal/application/bom"
	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
)

var _ appbom.MaterialsExporter = (*CSVExporter)(nil)

// Columnas del contrato tabular del export. El mismo orden se usa en el PDF.
var csvHeader = []string{
	"Sequence", "Manufacturer", "PartNumber", "ItemName", "Quantity",
	"Unit", "UnitPrice", "TotalPrice", "SourceName", "UsageDetail",
}

// CSVExporter escribe el reporte de materiales consolidados como CSV.
type CSVExporter struct {
	printer *message.Printer
}

// NewCSVExporter construye el exportador. locale es un tag BCP 47 (ej. es-CO);
// un tag inválido cae a es-CO.
func NewCSVExporter(locale string) *CSVExporter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("es-CO")
	}
	return &CSVExporter{printer: message.NewPrinter(tag)}
}

// ExportMaterials escribe el reporte completo en w: cabecera, una fila por
// material consolidado y al final las advertencias de referencias rotas.
func (e *CSVExporter) ExportMaterials(w io.Writer, report *dto.BOMReportResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: escribir cabecera: %w", err)
	}
	for i, item := range report.Materials {
		row := []string{
			fmt.Sprintf("%d", i+1),
			item.Manufacturer,
			item.PartNumber,
			item.Name,
			e.amount(item.TotalQuantity),
			item.Unit,
			e.amount(item.UnitPrice),
			e.amount(item.TotalCost),
			report.SourceName,
			usageDetail(item.Usages),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: escribir fila: %w", err)
		}
	}
	for _, warning := range report.Warnings {
		if err := cw.Write([]string{"", "", "", "ADVERTENCIA: " + warning, "", "", "", "", report.SourceName, ""}); err != nil {
			return fmt.Errorf("csv: escribir advertencia: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// amount formatea una cifra con agrupación de miles del locale y 2 decimales.
func (e *CSVExporter) amount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return e.printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// usageDetail arma la traza de procedencia de un ítem consolidado:
// "Muro(3 × 100 = 300); Piso(1 × 50 = 50)".
func usageDetail(usages []dto.UsageDTO) string {
	parts := make([]string, 0, len(usages))
	for _, u := range usages {
		parts = append(parts, fmt.Sprintf("%s(%s × %s = %s)",
			u.AssemblyName,
			u.AssemblyQuantity.String(),
			u.PerAssemblyQuantity.String(),
			u.LineQuantity.String(),
		))
	}
	return strings.Join(parts, "; ")
}
