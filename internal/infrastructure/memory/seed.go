package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SeedDemo carga datos de demostración (STORE_SEED_DEMO=true). Idempotente:
// no hace nada si el store ya tiene tipos de producto. Cada producto con stock
// inicial queda respaldado por un movimiento de carga, así el invariante
// cantidad = Σ entradas − Σ salidas se cumple también para los datos demo.
func (s *Store) SeedDemo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.productTypes) > 0 {
		return
	}
	now := time.Now()

	types := []*entity.ProductType{
		{Name: "Eletrônicos", Description: "Dispositivos e acessórios eletrônicos"},
		{Name: "Periféricos", Description: "Periféricos de informática"},
	}
	for _, t := range types {
		s.nextTypeID++
		t.ID = s.nextTypeID
		t.CreatedAt = now
		t.UpdatedAt = now
		s.productTypes[t.ID] = t
	}

	products := []*entity.Product{
		{
			Name:          "Smartphone Galaxy S22",
			Description:   "Smartphone Samsung Galaxy S22 128GB",
			CostPrice:     decimal.NewFromFloat(2800),
			SalePrice:     decimal.NewFromFloat(3499.90),
			Quantity:      15,
			Supplier:      "Samsung Brasil",
			ProductTypeID: types[0].ID,
		},
		{
			Name:          "Notebook Dell XPS",
			Description:   "Notebook Dell XPS 13 16GB RAM",
			CostPrice:     decimal.NewFromFloat(6500),
			SalePrice:     decimal.NewFromFloat(8299),
			Quantity:      4,
			Supplier:      "Dell Brasil",
			ProductTypeID: types[0].ID,
		},
		{
			Name:          "Mouse Wireless Logitech",
			Description:   "Mouse sem fio Logitech MX Anywhere",
			CostPrice:     decimal.NewFromFloat(180),
			SalePrice:     decimal.NewFromFloat(279.90),
			Quantity:      32,
			Supplier:      "Logitech",
			ProductTypeID: types[1].ID,
		},
	}
	for _, p := range products {
		s.nextProductID++
		p.ID = s.nextProductID
		p.CreatedAt = now
		p.UpdatedAt = now
		s.products[p.ID] = p

		s.nextMovementID++
		s.movements[s.nextMovementID] = &entity.StockMovement{
			ID:        s.nextMovementID,
			Type:      entity.MovementTypeEntry,
			Quantity:  p.Quantity,
			ProductID: p.ID,
			Notes:     "Carga inicial de stock",
			CreatedAt: now,
		}
	}
}
