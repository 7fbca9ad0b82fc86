package bom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Catálogo de prueba compartido: el vector Muro/Piso usado por varios tests.
//
//	Muro  = Ladrillo x100 ($500) + Cemento x2 ($50000)
//	Piso  = Ladrillo x50  ($500)
func testSnapshot(t *testing.T) *bom.Snapshot {
	t.Helper()
	snap, err := bom.NewSnapshot(
		[]*entity.Material{
			{ID: "mat-ladrillo", Name: "Ladrillo", Unit: "un", UnitPrice: d("500")},
			{ID: "mat-cemento", Name: "Cemento", PartNumber: "CEM-50", Manufacturer: "Argos", Unit: "bulto", UnitPrice: d("50000")},
		},
		[]*entity.Assembly{
			{ID: "asm-muro", CategoryID: "cat-estructura", Name: "Muro", Materials: []entity.AssemblyMaterial{
				{MaterialID: "mat-ladrillo", Quantity: d("100")},
				{MaterialID: "mat-cemento", Quantity: d("2")},
			}},
			{ID: "asm-piso", CategoryID: "cat-acabados", Name: "Piso", Materials: []entity.AssemblyMaterial{
				{MaterialID: "mat-ladrillo", Quantity: d("50")},
			}},
		},
		[]*entity.Category{
			{ID: "cat-estructura", Name: "Estructura"},
			{ID: "cat-acabados", Name: "Acabados"},
		},
		nil,
	)
	require.NoError(t, err, "el snapshot de prueba debe ser bien formado")
	return snap
}

func TestExplode_UnEnsamble(t *testing.T) {
	snap := testSnapshot(t)

	res := bom.Explode(snap, []bom.CompositionItem{{AssemblyID: "asm-muro", Quantity: d("3")}})

	require.Empty(t, res.Warnings)
	// Exactamente |materiales del ensamble| líneas, sin deduplicación.
	require.Len(t, res.Lines, 2, "Explode debe emitir una línea por material del ensamble")

	ladrillo := res.Lines[0]
	assert.Equal(t, "mat-ladrillo", ladrillo.MaterialID)
	assert.True(t, ladrillo.LineQuantity.Equal(d("300")), "lineQuantity = 100 x 3")
	assert.True(t, ladrillo.LineCost.Equal(d("150000")), "lineCost = 300 x 500")
	assert.Equal(t, "Muro", ladrillo.Provenance.AssemblyName)
	assert.True(t, ladrillo.Provenance.AssemblyQuantity.Equal(d("3")))
	assert.True(t, ladrillo.Provenance.PerAssemblyQuantity.Equal(d("100")))

	cemento := res.Lines[1]
	assert.True(t, cemento.LineQuantity.Equal(d("6")), "lineQuantity = 2 x 3")
	assert.True(t, cemento.LineCost.Equal(d("300000")))
}

func TestExplode_CantidadesFraccionarias(t *testing.T) {
	snap, err := bom.NewSnapshot(
		[]*entity.Material{{ID: "m1", Name: "Tubería PVC", Unit: "m", UnitPrice: d("12500")}},
		[]*entity.Assembly{{ID: "a1", Name: "Red hidráulica", Materials: []entity.AssemblyMaterial{
			{MaterialID: "m1", Quantity: d("1.5")},
		}}},
		nil, nil,
	)
	require.NoError(t, err)

	res := bom.Explode(snap, []bom.CompositionItem{{AssemblyID: "a1", Quantity: d("2.5")}})

	require.Len(t, res.Lines, 1)
	// Sin redondeo durante la explosión: 1.5 x 2.5 = 3.75 exacto.
	assert.True(t, res.Lines[0].LineQuantity.Equal(d("3.75")), "las cantidades fraccionarias no se redondean")
	assert.True(t, res.Lines[0].LineCost.Equal(d("46875")))
}

func TestExplode_SinDeduplicacion_MaterialCompartido(t *testing.T) {
	snap := testSnapshot(t)

	res := bom.Explode(snap, []bom.CompositionItem{
		{AssemblyID: "asm-muro", Quantity: d("3")},
		{AssemblyID: "asm-piso", Quantity: d("1")},
	})

	// Muro aporta 2 líneas y Piso 1; el Ladrillo compartido sale DOS veces.
	require.Len(t, res.Lines, 3, "la explosión no deduplica materiales compartidos")
	assert.Equal(t, "mat-ladrillo", res.Lines[0].MaterialID)
	assert.Equal(t, "mat-ladrillo", res.Lines[2].MaterialID)
}

func TestExplode_EnsambleInexistente_OmiteYContinua(t *testing.T) {
	snap := testSnapshot(t)

	res := bom.Explode(snap, []bom.CompositionItem{
		{AssemblyID: "asm-fantasma", Quantity: d("5")},
		{AssemblyID: "asm-piso", Quantity: d("1")},
	})

	// Una referencia rota nunca aborta el cálculo: advertencia + resto procesado.
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, bom.WarnMissingAssembly, res.Warnings[0].Kind)
	assert.Equal(t, "asm-fantasma", res.Warnings[0].RefID)
	require.Len(t, res.Lines, 1, "la explosión de las entradas restantes debe continuar")
	assert.Equal(t, "mat-ladrillo", res.Lines[0].MaterialID)
}

func TestExplode_MaterialInexistente_OmiteLinea(t *testing.T) {
	snap, err := bom.NewSnapshot(
		[]*entity.Material{{ID: "m1", Name: "Arena", Unit: "m3", UnitPrice: d("80000")}},
		[]*entity.Assembly{{ID: "a1", Name: "Relleno", Materials: []entity.AssemblyMaterial{
			{MaterialID: "m1", Quantity: d("2")},
			{MaterialID: "m-borrado", Quantity: d("1")},
		}}},
		nil, nil,
	)
	require.NoError(t, err)

	res := bom.Explode(snap, []bom.CompositionItem{{AssemblyID: "a1", Quantity: d("1")}})

	require.Len(t, res.Lines, 1)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, bom.WarnMissingMaterial, res.Warnings[0].Kind)
	assert.Equal(t, "m-borrado", res.Warnings[0].RefID)
}

func TestNewSnapshot_RechazaPrecioNegativo(t *testing.T) {
	_, err := bom.NewSnapshot(
		[]*entity.Material{{ID: "m1", Name: "Malo", Unit: "un", UnitPrice: d("-1")}},
		nil, nil, nil,
	)
	require.Error(t, err, "un precio negativo debe rechazarse en la frontera del snapshot")
}

func TestNewSnapshot_RechazaCantidadNoPositiva(t *testing.T) {
	_, err := bom.NewSnapshot(
		[]*entity.Material{{ID: "m1", Name: "Arena", Unit: "m3", UnitPrice: d("1000")}},
		[]*entity.Assembly{{ID: "a1", Name: "Relleno", Materials: []entity.AssemblyMaterial{
			{MaterialID: "m1", Quantity: d("0")},
		}}},
		nil, nil,
	)
	require.Error(t, err, "una cantidad cero o negativa debe rechazarse en la frontera del snapshot")
}
