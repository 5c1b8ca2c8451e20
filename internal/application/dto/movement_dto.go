package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest entrada para registrar un movimiento de stock.
// CreatedAt es opcional (por defecto ahora); no puede ser futura ni mayor a un año.
type CreateMovementRequest struct {
	Type      string     `json:"type"` // entry | exit
	Quantity  int64      `json:"quantity"`
	ProductID int64      `json:"productId"`
	CreatedAt *time.Time `json:"createdAt"`
	Notes     string     `json:"notes"`
}

// UpdateMovementRequest entrada PATCH (parcial) de un movimiento.
// ProductID es inmutable: enviarlo con otro valor es error de validación.
type UpdateMovementRequest struct {
	Type      *string    `json:"type"`
	Quantity  *int64     `json:"quantity"`
	ProductID *int64     `json:"productId"`
	CreatedAt *time.Time `json:"createdAt"`
	Notes     *string    `json:"notes"`
}

// MovementProductRef resumen del producto asociado a un movimiento.
type MovementProductRef struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	CostPrice   decimal.Decimal      `json:"costPrice"`
	SalePrice   decimal.Decimal      `json:"salePrice"`
	ProductType *ProductTypeShortRef `json:"productType,omitempty"`
}

// ProductTypeShortRef referencia mínima a un tipo de producto.
type ProductTypeShortRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        int64               `json:"id"`
	Type      string              `json:"type"`
	Quantity  int64               `json:"quantity"`
	ProductID int64               `json:"productId"`
	Product   *MovementProductRef `json:"product,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	Notes     string              `json:"notes,omitempty"`
}

// MovementSummary agregados del período listado. Entries/Exits/Balance van en
// unidades; EntryCount/ExitCount en número de movimientos. Los valores monetarios
// usan el precio vigente del producto (entradas a costo, salidas a venta).
type MovementSummary struct {
	Entries      int64           `json:"entries"`
	Exits        int64           `json:"exits"`
	Balance      int64           `json:"balance"`
	EntryCount   int             `json:"entryCount"`
	ExitCount    int             `json:"exitCount"`
	EntriesValue decimal.Decimal `json:"entriesValue"`
	ExitsValue   decimal.Decimal `json:"exitsValue"`
}

// MovementListResponse respuesta de GET /api/stock-movements.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Summary   MovementSummary    `json:"summary"`
}
