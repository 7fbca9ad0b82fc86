package bom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
)

func TestRollupComposition_VectorMuroPiso(t *testing.T) {
	snap := testSnapshot(t)
	items := []bom.CompositionItem{
		{AssemblyID: "asm-muro", Quantity: d("3")},
		{AssemblyID: "asm-piso", Quantity: d("1")},
	}

	r := bom.RollupComposition(snap, items)

	// Muro: 100x500 + 2x50000 = 150.000 por unidad → 450.000 x3
	// Piso: 50x500 = 25.000 x1
	assert.True(t, r.GrandTotal.Equal(d("475000")), "gran total del vector Muro/Piso")

	require.Len(t, r.PerAssembly, 2)
	assert.Equal(t, "asm-muro", r.PerAssembly[0].AssemblyID)
	assert.True(t, r.PerAssembly[0].Subtotal.Equal(d("450000")))
	assert.True(t, r.PerAssembly[1].Subtotal.Equal(d("25000")))

	require.Len(t, r.PerCategory, 2)
	assert.Equal(t, "cat-estructura", r.PerCategory[0].CategoryID)
	assert.True(t, r.PerCategory[0].Subtotal.Equal(d("450000")))
	assert.Equal(t, "cat-acabados", r.PerCategory[1].CategoryID)
	assert.True(t, r.PerCategory[1].Subtotal.Equal(d("25000")))
}

func TestRollup_IgualdadConConsolidado(t *testing.T) {
	// Propiedad requerida: Σ ConsolidatedLineItem.TotalCost == grandTotal del
	// rollup sobre la misma composición.
	snap := testSnapshot(t)
	items := []bom.CompositionItem{
		{AssemblyID: "asm-muro", Quantity: d("3")},
		{AssemblyID: "asm-piso", Quantity: d("1")},
	}

	viaComposition := bom.RollupComposition(snap, items)
	consolidated := bom.Consolidate(bom.Explode(snap, items).Lines)
	viaConsolidated := bom.RollupConsolidated(consolidated)

	assert.True(t, viaComposition.GrandTotal.Equal(viaConsolidated.GrandTotal),
		"ambos caminos de rollup deben producir el mismo gran total")
}

func TestRollupConsolidated_Porcentajes(t *testing.T) {
	snap := testSnapshot(t)
	consolidated := bom.Consolidate(bom.Explode(snap, []bom.CompositionItem{
		{AssemblyID: "asm-muro", Quantity: d("3")},
		{AssemblyID: "asm-piso", Quantity: d("1")},
	}).Lines)

	r := bom.RollupConsolidated(consolidated)

	require.Len(t, r.Percentages, 2)
	ladrillo := r.Percentages[0]
	assert.Equal(t, "Ladrillo", ladrillo.Key)
	// 175.000 / 475.000 x 100 ≈ 36.84%
	expected := d("36.84")
	diff := ladrillo.Percent.Sub(expected).Abs()
	assert.True(t, diff.LessThan(d("0.01")), "porcentaje del Ladrillo ≈ 36.84, fue %s", ladrillo.Percent)

	// Σ porcentajes ≈ 100 cuando grandTotal > 0.
	sum := decimal.Zero
	for _, p := range r.Percentages {
		sum = sum.Add(p.Percent)
	}
	assert.True(t, sum.Sub(d("100")).Abs().LessThan(d("0.0001")),
		"la suma de porcentajes debe ser ≈ 100, fue %s", sum)
}

func TestRollup_ComposicionVacia(t *testing.T) {
	snap := testSnapshot(t)

	r := bom.RollupComposition(snap, nil)

	// Guarda explícita contra división por cero: total 0, porcentajes vacíos.
	assert.True(t, r.GrandTotal.IsZero())
	assert.Empty(t, r.Percentages)
	assert.Empty(t, r.PerAssembly)

	rc := bom.RollupConsolidated(nil)
	assert.True(t, rc.GrandTotal.IsZero())
	assert.Empty(t, rc.Percentages)
}

func TestRollupConsolidated_CostoCeroSinNaN(t *testing.T) {
	// Ítems con costo cero: porcentaje 0, nunca división por cero.
	items := []bom.ConsolidatedLineItem{
		{Name: "Regalado", UnitPrice: decimal.Zero, TotalQuantity: d("10"), TotalCost: decimal.Zero},
	}
	r := bom.RollupConsolidated(items)
	assert.True(t, r.GrandTotal.IsZero())
	require.Len(t, r.Percentages, 1)
	assert.True(t, r.Percentages[0].Percent.IsZero(), "con gran total cero el porcentaje es cero, no NaN")
}

func TestRollupComposition_EnsambleRoto_AdvierteYContinua(t *testing.T) {
	snap := testSnapshot(t)

	r := bom.RollupComposition(snap, []bom.CompositionItem{
		{AssemblyID: "asm-borrado", Quantity: d("2")},
		{AssemblyID: "asm-piso", Quantity: d("1")},
	})

	require.Len(t, r.Warnings, 1)
	assert.Equal(t, bom.WarnMissingAssembly, r.Warnings[0].Kind)
	assert.True(t, r.GrandTotal.Equal(d("25000")), "el total parcial cubre las entradas resueltas")
}
