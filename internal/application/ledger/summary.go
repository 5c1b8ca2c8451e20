package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Summarize agrega un conjunto de movimientos: unidades y asientos por tipo, y
// valores monetarios al precio vigente del producto (entradas a costPrice,
// salidas a salePrice). La valoración no congela precios históricos; si el
// precio cambia, el resumen del pasado cambia con él.
func Summarize(movements []*entity.StockMovement, products map[int64]*entity.Product) dto.MovementSummary {
	var s dto.MovementSummary
	for _, m := range movements {
		product := products[m.ProductID]
		qty := decimal.NewFromInt(m.Quantity)
		switch m.Type {
		case entity.MovementTypeEntry:
			s.Entries += m.Quantity
			s.EntryCount++
			if product != nil {
				s.EntriesValue = s.EntriesValue.Add(product.CostPrice.Mul(qty))
			}
		case entity.MovementTypeExit:
			s.Exits += m.Quantity
			s.ExitCount++
			if product != nil {
				s.ExitsValue = s.ExitsValue.Add(product.SalePrice.Mul(qty))
			}
		}
	}
	s.Balance = s.Entries - s.Exits
	s.EntriesValue = s.EntriesValue.Round(2)
	s.ExitsValue = s.ExitsValue.Round(2)
	return s
}
