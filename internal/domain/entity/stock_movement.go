package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry = "entry" // entrada: compra o reposición, suma al stock
	MovementTypeExit  = "exit"  // salida: venta, resta del stock
)

// StockMovement un asiento del libro de stock. ProductID es inmutable
// después de la creación; el historial no se traslada entre productos.
type StockMovement struct {
	ID        int64
	Type      string // entry | exit
	Quantity  int64  // siempre > 0; el signo lo da Type
	ProductID int64
	Notes     string
	CreatedAt time.Time
}

// Delta efecto del movimiento sobre Product.Quantity (+Quantity para entry, −Quantity para exit).
func (m *StockMovement) Delta() int64 {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
