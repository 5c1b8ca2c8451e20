package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity se deriva del libro de movimientos: solo lo muta el motor de stock,
// nunca un PATCH directo. Los precios van en decimal para evitar errores de flotante.
type Product struct {
	ID             int64
	Name           string
	Description    string
	CostPrice      decimal.Decimal // precio de compra
	SalePrice      decimal.Decimal // precio de venta
	Quantity       int64           // derivado: Σ entradas − Σ salidas
	Supplier       string
	ExpirationDate *time.Time // opcional
	ProductTypeID  int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProfitValue ganancia unitaria (salePrice − costPrice). Puede ser negativa.
func (p *Product) ProfitValue() decimal.Decimal {
	return p.SalePrice.Sub(p.CostPrice)
}

// ProfitMargin margen unitario en % sobre el costo. Cero si el costo es cero.
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.CostPrice.IsZero() {
		return decimal.Zero
	}
	return p.ProfitValue().Div(p.CostPrice).Mul(decimal.NewFromInt(100)).Round(2)
}

// SellsAtLoss indica si el precio de venta está por debajo del costo.
func (p *Product) SellsAtLoss() bool {
	return p.SalePrice.LessThan(p.CostPrice)
}
