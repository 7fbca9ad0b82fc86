package bom

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Presupuestos-api/internal/domain"
	"github.com/jhoicas/Presupuestos-api/internal/domain/entity"
)

// Snapshot es una lectura inmutable del catálogo para un cálculo: materiales,
// ensambles, capítulos y grupos indexados por ID. Se construye una sola vez por
// petición (capa de infraestructura) y el motor solo la lee; por eso los cuatro
// componentes de cálculo son puros y pueden correr en paralelo sin locks.
type Snapshot struct {
	materials  map[string]*entity.Material
	assemblies map[string]*entity.Assembly
	categories map[string]*entity.Category
	groups     map[string][]*entity.AssemblyGroup // por CategoryID, en orden de carga
}

// NewSnapshot valida la buena formación del catálogo y construye los índices.
// Aquí se rechazan cantidades y precios negativos (frontera NumericError):
// el motor asume después entrada bien formada y nunca vuelve a validarla.
func NewSnapshot(
	materials []*entity.Material,
	assemblies []*entity.Assembly,
	categories []*entity.Category,
	groups []*entity.AssemblyGroup,
) (*Snapshot, error) {
	s := &Snapshot{
		materials:  make(map[string]*entity.Material, len(materials)),
		assemblies: make(map[string]*entity.Assembly, len(assemblies)),
		categories: make(map[string]*entity.Category, len(categories)),
		groups:     make(map[string][]*entity.AssemblyGroup),
	}
	for _, m := range materials {
		if m == nil || m.ID == "" || m.Name == "" || m.Unit == "" {
			return nil, fmt.Errorf("%w: material sin id, nombre o unidad", domain.ErrMalformedSnapshot)
		}
		if m.UnitPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: material %s con precio negativo", domain.ErrNegativeAmount, m.ID)
		}
		s.materials[m.ID] = m
	}
	for _, a := range assemblies {
		if a == nil || a.ID == "" || a.Name == "" {
			return nil, fmt.Errorf("%w: ensamble sin id o nombre", domain.ErrMalformedSnapshot)
		}
		for _, am := range a.Materials {
			if !am.Quantity.GreaterThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: ensamble %s, material %s con cantidad no positiva", domain.ErrNegativeAmount, a.ID, am.MaterialID)
			}
		}
		s.assemblies[a.ID] = a
	}
	for _, c := range categories {
		if c == nil || c.ID == "" {
			return nil, fmt.Errorf("%w: capítulo sin id", domain.ErrMalformedSnapshot)
		}
		s.categories[c.ID] = c
	}
	for _, g := range groups {
		if g == nil || g.ID == "" {
			return nil, fmt.Errorf("%w: grupo sin id", domain.ErrMalformedSnapshot)
		}
		for _, it := range g.Items {
			if !it.Quantity.GreaterThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: grupo %s, ensamble %s con cantidad no positiva", domain.ErrNegativeAmount, g.ID, it.AssemblyID)
			}
		}
		s.groups[g.CategoryID] = append(s.groups[g.CategoryID], g)
	}
	return s, nil
}

// Material devuelve el material por ID, o nil si no existe en el snapshot.
func (s *Snapshot) Material(id string) *entity.Material { return s.materials[id] }

// Assembly devuelve el ensamble por ID, o nil si no existe en el snapshot.
func (s *Snapshot) Assembly(id string) *entity.Assembly { return s.assemblies[id] }

// Category devuelve el capítulo por ID, o nil si no existe en el snapshot.
func (s *Snapshot) Category(id string) *entity.Category { return s.categories[id] }

// GroupsByCategory devuelve los grupos de selección de un capítulo, en orden de carga.
func (s *Snapshot) GroupsByCategory(categoryID string) []*entity.AssemblyGroup {
	return s.groups[categoryID]
}
