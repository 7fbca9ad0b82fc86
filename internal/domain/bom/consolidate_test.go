package bom_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vector canónico (Muro x3 + Piso x1):
//
//	Ladrillo: 100x3 + 50x1 = 350 un → $175.000
//	Cemento:  2x3          = 6 bultos → $300.000
//	Gran total: $475.000, Ladrillo ≈ 36.84%
// ──────────────────────────────────────────────────────────────────────────────

func muroPisoLines(t *testing.T) []bom.ExplodedLine {
	t.Helper()
	snap := testSnapshot(t)
	res := bom.Explode(snap, []bom.CompositionItem{
		{AssemblyID: "asm-muro", Quantity: d("3")},
		{AssemblyID: "asm-piso", Quantity: d("1")},
	})
	require.Empty(t, res.Warnings)
	return res.Lines
}

func TestConsolidate_VectorMuroPiso(t *testing.T) {
	items := bom.Consolidate(muroPisoLines(t))

	// Orden de primera aparición de cada llave: Ladrillo, Cemento.
	require.Len(t, items, 2, "el Ladrillo de Muro y Piso debe fundirse en un solo ítem")

	ladrillo := items[0]
	assert.Equal(t, "Ladrillo", ladrillo.Name)
	assert.True(t, ladrillo.TotalQuantity.Equal(d("350")), "totalQuantity = 100x3 + 50x1")
	assert.True(t, ladrillo.TotalCost.Equal(d("175000")))
	require.Len(t, ladrillo.Usages, 2, "cada uso queda como registro de procedencia")
	assert.Equal(t, "Muro", ladrillo.Usages[0].AssemblyName)
	assert.True(t, ladrillo.Usages[0].LineQuantity.Equal(d("300")))
	assert.Equal(t, "Piso", ladrillo.Usages[1].AssemblyName)
	assert.True(t, ladrillo.Usages[1].LineQuantity.Equal(d("50")))

	cemento := items[1]
	assert.Equal(t, "Cemento", cemento.Name)
	assert.True(t, cemento.TotalQuantity.Equal(d("6")))
	assert.True(t, cemento.TotalCost.Equal(d("300000")))

	// Invariante: totalCost = totalQuantity × unitPrice (precio constante por llave).
	for _, it := range items {
		assert.True(t, it.TotalCost.Equal(it.TotalQuantity.Mul(it.UnitPrice)),
			"totalCost debe igualar totalQuantity x unitPrice para %s", it.Name)
	}
}

func TestConsolidate_IndependienteDelOrden(t *testing.T) {
	lines := muroPisoLines(t)
	base := bom.Consolidate(lines)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]bom.ExplodedLine, len(lines))
		copy(shuffled, lines)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		perm := bom.Consolidate(shuffled)
		require.Len(t, perm, len(base))
		// Totales conmutativos y asociativos: solo el orden de Usages puede variar.
		byKey := make(map[bom.MaterialKey]bom.ConsolidatedLineItem, len(perm))
		for _, it := range perm {
			byKey[it.Key] = it
		}
		for _, want := range base {
			got, ok := byKey[want.Key]
			require.True(t, ok, "toda llave debe sobrevivir la permutación")
			assert.True(t, got.TotalQuantity.Equal(want.TotalQuantity),
				"permutar la entrada no debe cambiar totalQuantity de %s", want.Name)
			assert.True(t, got.TotalCost.Equal(want.TotalCost),
				"permutar la entrada no debe cambiar totalCost de %s", want.Name)
			assert.Len(t, got.Usages, len(want.Usages))
		}
	}
}

func TestConsolidate_LlaveIncluyePrecio(t *testing.T) {
	// Mismo material conceptual con precios distintos (snapshots de momentos
	// distintos): NO se funden. Comportamiento documentado e intencional.
	lines := []bom.ExplodedLine{
		{MaterialID: "m1", Name: "Ladrillo", Unit: "un", UnitPrice: d("500"), LineQuantity: d("10"), LineCost: d("5000")},
		{MaterialID: "m1", Name: "Ladrillo", Unit: "un", UnitPrice: d("520"), LineQuantity: d("5"), LineCost: d("2600")},
	}
	items := bom.Consolidate(lines)
	require.Len(t, items, 2, "precios distintos producen llaves distintas")
}

func TestConsolidate_LlaveExactaSinNormalizacion(t *testing.T) {
	// Igualdad sensible a mayúsculas y sin recorte: "ladrillo" ≠ "Ladrillo".
	lines := []bom.ExplodedLine{
		{MaterialID: "m1", Name: "Ladrillo", Unit: "un", UnitPrice: d("500"), LineQuantity: d("1"), LineCost: d("500")},
		{MaterialID: "m2", Name: "ladrillo", Unit: "un", UnitPrice: d("500"), LineQuantity: d("1"), LineCost: d("500")},
	}
	assert.Len(t, bom.Consolidate(lines), 2)
}

func TestConsolidate_FormasDecimalesEquivalentes(t *testing.T) {
	// 500 y 500.00 son el mismo precio: la llave usa la forma canónica del decimal.
	lines := []bom.ExplodedLine{
		{MaterialID: "m1", Name: "Ladrillo", Unit: "un", UnitPrice: d("500"), LineQuantity: d("1"), LineCost: d("500")},
		{MaterialID: "m1", Name: "Ladrillo", Unit: "un", UnitPrice: d("500.00"), LineQuantity: d("2"), LineCost: d("1000")},
	}
	items := bom.Consolidate(lines)
	require.Len(t, items, 1, "formas decimales equivalentes deben compartir llave")
	assert.True(t, items[0].TotalQuantity.Equal(d("3")))
}

func TestConsolidate_Idempotencia(t *testing.T) {
	// Reinyectar los ítems consolidados como líneas de un solo uso y volver a
	// consolidar reproduce totales idénticos.
	first := bom.Consolidate(muroPisoLines(t))

	var relines []bom.ExplodedLine
	for _, it := range first {
		relines = append(relines, bom.ExplodedLine{
			MaterialID:   it.Name, // la llave no depende del ID
			Name:         it.Name,
			PartNumber:   it.PartNumber,
			Manufacturer: it.Manufacturer,
			Unit:         it.Unit,
			UnitPrice:    it.UnitPrice,
			LineQuantity: it.TotalQuantity,
			LineCost:     it.TotalCost,
			Provenance:   bom.Provenance{AssemblyName: "Consolidado", AssemblyQuantity: d("1"), PerAssemblyQuantity: it.TotalQuantity},
		})
	}
	second := bom.Consolidate(relines)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, second[i].TotalQuantity.Equal(first[i].TotalQuantity),
			"reconsolidar debe reproducir totalQuantity de %s", first[i].Name)
		assert.True(t, second[i].TotalCost.Equal(first[i].TotalCost),
			"reconsolidar debe reproducir totalCost de %s", first[i].Name)
	}
}

func TestConsolidate_EntradaVacia(t *testing.T) {
	assert.Empty(t, bom.Consolidate(nil))
}
