package bom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
)

// Grupo "Muros" (requerido, exactamente 1) dentro del capítulo Estructura,
// ofreciendo el ensamble Muro x3.
func testGroups() []*entity.AssemblyGroup {
	return []*entity.AssemblyGroup{
		{
			ID:         "grp-muros",
			CategoryID: "cat-estructura",
			Name:       "Muros",
			Rule:       entity.GroupRule{Min: 1, Max: 1, Required: true},
			Items: []entity.GroupItem{
				{AssemblyID: "asm-muro", Quantity: d("3")},
			},
		},
		{
			ID:         "grp-pisos",
			CategoryID: "cat-acabados",
			Name:       "Pisos",
			Rule:       entity.GroupRule{Min: 0, Max: 2, Required: false},
			Items: []entity.GroupItem{
				{AssemblyID: "asm-piso", Quantity: d("1")},
			},
		},
	}
}

func TestValidateSelection_GrupoRequeridoVacio(t *testing.T) {
	snap := testSnapshot(t)

	res := bom.ValidateSelection(snap, testGroups(), bom.Selection{})

	assert.False(t, res.IsValid)
	// Exactamente un error, nombrando el grupo requerido; el grupo opcional vacío es válido.
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "grp-muros", res.Errors[0].GroupID)
	assert.Equal(t, "Muros", res.Errors[0].GroupName)
	assert.True(t, res.TotalCost.IsZero())
}

func TestValidateSelection_SeleccionValida(t *testing.T) {
	snap := testSnapshot(t)
	sel := bom.Selection{
		"cat-estructura": {"grp-muros": {"asm-muro"}},
	}

	res := bom.ValidateSelection(snap, testGroups(), sel)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	// Muro x3 = 150.000 x 3 = 450.000 en el desglose.
	assert.True(t, res.TotalCost.Equal(d("450000")), "el costo del ensamble elegido entra al desglose")

	require.Len(t, res.Breakdown, 1)
	cat := res.Breakdown[0]
	assert.Equal(t, "cat-estructura", cat.CategoryID)
	assert.Equal(t, "Estructura", cat.CategoryName)
	require.Len(t, cat.Groups, 1)
	require.Len(t, cat.Groups[0].Selected, 1)
	assert.Equal(t, "Muro", cat.Groups[0].Selected[0].AssemblyName)
	assert.True(t, cat.Groups[0].Selected[0].Quantity.Equal(d("3")))

	// La selección validada alimenta directamente la explosión.
	items := res.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "asm-muro", items[0].AssemblyID)
	assert.True(t, items[0].Quantity.Equal(d("3")))
}

func TestValidateSelection_DeduplicaRepetidosEnGrupo(t *testing.T) {
	snap := testSnapshot(t)
	// El mismo ensamble dos veces en el mismo grupo: cuenta UNA vez
	// (interpretación canónica) y no viola max=1.
	sel := bom.Selection{
		"cat-estructura": {"grp-muros": {"asm-muro", "asm-muro"}},
	}

	res := bom.ValidateSelection(snap, testGroups(), sel)

	assert.True(t, res.IsValid, "un ID repetido dentro del grupo cuenta una sola vez")
	assert.True(t, res.TotalCost.Equal(d("450000")), "el costo no se duplica por el pick repetido")
}

func TestValidateSelection_ExcedeMaximo(t *testing.T) {
	snap := testSnapshot(t)
	groups := testGroups()
	groups[0].Items = append(groups[0].Items, entity.GroupItem{AssemblyID: "asm-piso", Quantity: d("1")})
	sel := bom.Selection{
		"cat-estructura": {"grp-muros": {"asm-muro", "asm-piso"}},
	}

	res := bom.ValidateSelection(snap, groups, sel)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "grp-muros", res.Errors[0].GroupID)
	// El costo de la parte seleccionada igual se calcula para mostrarlo en la UI.
	assert.True(t, res.TotalCost.Equal(d("475000")))
}

func TestValidateSelection_RecolectaTodasLasViolaciones(t *testing.T) {
	snap := testSnapshot(t)
	groups := testGroups()
	groups[1].Rule = entity.GroupRule{Min: 1, Max: 2, Required: true}

	// Dos grupos requeridos, ambos vacíos: dos errores, no solo el primero.
	res := bom.ValidateSelection(snap, groups, bom.Selection{})

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 2, "se recolectan todas las violaciones, sin fallar en la primera")
}

func TestValidateSelection_EnsambleFueraDelGrupo(t *testing.T) {
	snap := testSnapshot(t)
	sel := bom.Selection{
		"cat-estructura": {"grp-muros": {"asm-piso"}},
	}

	res := bom.ValidateSelection(snap, testGroups(), sel)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Reason, "no pertenece")
}

func TestValidateSelection_EnsambleInexistenteEnSnapshot(t *testing.T) {
	snap := testSnapshot(t)
	groups := testGroups()
	groups[0].Items = []entity.GroupItem{{AssemblyID: "asm-borrado", Quantity: d("1")}}
	sel := bom.Selection{
		"cat-estructura": {"grp-muros": {"asm-borrado"}},
	}

	res := bom.ValidateSelection(snap, groups, sel)

	// Integridad referencial rota: advertencia, el ensamble se excluye de los
	// totales y las reglas del grupo se evalúan sobre lo seleccionado.
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, bom.WarnMissingAssembly, res.Warnings[0].Kind)
	assert.True(t, res.TotalCost.IsZero())
}

func TestValidateSelection_GrupoOpcionalVacioAportaCero(t *testing.T) {
	snap := testSnapshot(t)
	sel := bom.Selection{
		"cat-estructura": {"grp-muros": {"asm-muro"}},
		// cat-acabados sin selección: válido, costo cero.
	}

	res := bom.ValidateSelection(snap, testGroups(), sel)

	assert.True(t, res.IsValid)
	require.Len(t, res.Breakdown, 1, "un grupo opcional vacío no aparece en el desglose")
}
