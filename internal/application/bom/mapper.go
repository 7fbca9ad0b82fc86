package bom

import (
	"github.com/jhoicas/Presupuestos-api/internal/application/dto"
	"github.com/jhoicas/Presupuestos-api/internal/domain/bom"
)

// Mapeo dominio → DTO para los resultados del motor.

func toConsolidatedDTO(items []bom.ConsolidatedLineItem) []dto.ConsolidatedItemDTO {
	out := make([]dto.ConsolidatedItemDTO, 0, len(items))
	for _, it := range items {
		usages := make([]dto.UsageDTO, 0, len(it.Usages))
		for _, u := range it.Usages {
			usages = append(usages, dto.UsageDTO{
				AssemblyName:        u.AssemblyName,
				AssemblyQuantity:    u.AssemblyQuantity,
				PerAssemblyQuantity: u.PerAssemblyQuantity,
				LineQuantity:        u.LineQuantity,
			})
		}
		out = append(out, dto.ConsolidatedItemDTO{
			Name:          it.Name,
			PartNumber:    it.PartNumber,
			Manufacturer:  it.Manufacturer,
			Unit:          it.Unit,
			UnitPrice:     it.UnitPrice,
			TotalQuantity: it.TotalQuantity,
			TotalCost:     it.TotalCost,
			Usages:        usages,
		})
	}
	return out
}

func toPercentagesDTO(ps []bom.Percentage) []dto.PercentageDTO {
	out := make([]dto.PercentageDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, dto.PercentageDTO{Key: p.Key, Percent: p.Percent})
	}
	return out
}

func warningsToStrings(ws []bom.Warning) []string {
	if len(ws) == 0 {
		return nil
	}
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Message)
	}
	return out
}

func toBreakdownDTO(cats []bom.CategoryBreakdown) []dto.CategoryBreakdownDTO {
	out := make([]dto.CategoryBreakdownDTO, 0, len(cats))
	for _, c := range cats {
		groups := make([]dto.GroupBreakdownDTO, 0, len(c.Groups))
		for _, g := range c.Groups {
			selected := make([]dto.SelectedAssemblyDTO, 0, len(g.Selected))
			for _, s := range g.Selected {
				selected = append(selected, dto.SelectedAssemblyDTO{
					AssemblyID:   s.AssemblyID,
					AssemblyName: s.AssemblyName,
					Quantity:     s.Quantity,
					Cost:         s.Cost,
				})
			}
			groups = append(groups, dto.GroupBreakdownDTO{
				GroupID:   g.GroupID,
				GroupName: g.GroupName,
				Selected:  selected,
				Subtotal:  g.Subtotal,
			})
		}
		out = append(out, dto.CategoryBreakdownDTO{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			Groups:       groups,
			Subtotal:     c.Subtotal,
		})
	}
	return out
}
