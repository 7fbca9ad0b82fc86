package bom

import (
	"context"
	"io"

	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
)

// SnapshotLoader carga el snapshot inmutable del catálogo de una empresa en una
// sola ida a la base de datos. Es la única frontera de I/O del motor: los
// cálculos posteriores son puros. En escenarios masivos el costo dominante es
// esta carga, no el cálculo; el límite del pool de workers se dimensiona por ella.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, companyID string) (*bom.Snapshot, error)
}

// MaterialsPDFGenerator genera la representación PDF del reporte de materiales
// consolidados (sink de exportación; implementación en infrastructure/pdf).
type MaterialsPDFGenerator interface {
	GenerateMaterialsPDF(ctx context.Context, report *dto.BOMReportResponse) ([]byte, error)
}

// MaterialsExporter escribe el reporte tabular de materiales consolidados en un
// writer (sink de exportación; implementación CSV en infrastructure/export).
type MaterialsExporter interface {
	ExportMaterials(w io.Writer, report *dto.BOMReportResponse) error
}
