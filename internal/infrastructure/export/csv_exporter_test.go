package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleReport() *dto.BOMReportResponse {
	return &dto.BOMReportResponse{
		SourceID:   "tpl-casa",
		SourceName: "Casa tipo A",
		Materials: []dto.ConsolidatedItemDTO{
			{
				Name: "Ladrillo", Unit: "un",
				UnitPrice: d("500"), TotalQuantity: d("350"), TotalCost: d("175000"),
				Usages: []dto.UsageDTO{
					{AssemblyName: "Muro", AssemblyQuantity: d("3"), PerAssemblyQuantity: d("100"), LineQuantity: d("300")},
					{AssemblyName: "Piso", AssemblyQuantity: d("1"), PerAssemblyQuantity: d("50"), LineQuantity: d("50")},
				},
			},
			{
				Name: "Cemento", Unit: "bulto",
				UnitPrice: d("50000"), TotalQuantity: d("6"), TotalCost: d("300000"),
				Usages: []dto.UsageDTO{
					{AssemblyName: "Muro", AssemblyQuantity: d("3"), PerAssemblyQuantity: d("2"), LineQuantity: d("6")},
				},
			},
		},
		GrandTotal: d("475000"),
	}
}

func TestCSVExporter_ContratoDeColumnas(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVExporter("es-CO").ExportMaterials(&buf, sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "cabecera + 2 materiales")

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "1", records[1][0], "Sequence arranca en 1")
	assert.Equal(t, "Ladrillo", records[1][3])
	assert.Equal(t, "Casa tipo A", records[1][8])
	assert.Equal(t, "Cemento", records[2][3])
}

func TestCSVExporter_FormatoLocalEnLaFrontera(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVExporter("es-CO").ExportMaterials(&buf, sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// es-CO: punto de miles, coma decimal, 2 decimales solo en presentación.
	assert.Equal(t, "175.000,00", records[1][7])
	assert.Equal(t, "500,00", records[1][6])
	assert.Equal(t, "6,00", records[2][4])
}

func TestCSVExporter_TrazaDeProcedencia(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVExporter("es-CO").ExportMaterials(&buf, sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "Muro(3 × 100 = 300); Piso(1 × 50 = 50)", records[1][9],
		"cada uso conserva cantidad de ensamble, consumo unitario y cantidad de línea")
}

func TestCSVExporter_AdvertenciasAlFinal(t *testing.T) {
	report := sampleReport()
	report.Warnings = []string{"material mat-x no existe en el catálogo; se excluye de los totales"}
	report.WarningCount = 1

	var buf bytes.Buffer
	err := NewCSVExporter("es-CO").ExportMaterials(&buf, report)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Contains(t, records[3][3], "ADVERTENCIA")
}

func TestCSVExporter_LocaleInvalidoCaeAlDefault(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVExporter("!!").ExportMaterials(&buf, sampleReport())
	require.NoError(t, err)
	assert.NotEmpty(t, buf.Bytes())
}
