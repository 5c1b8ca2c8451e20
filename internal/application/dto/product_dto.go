package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Quantity > 0 genera un movimiento de entrada inicial para que el stock
// quede respaldado por el libro desde la creación.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CostPrice      decimal.Decimal `json:"costPrice"`
	SalePrice      decimal.Decimal `json:"salePrice"`
	Quantity       int64           `json:"quantity"`
	Supplier       string          `json:"supplier"`
	ExpirationDate *string         `json:"expirationDate"` // formato 2006-01-02
	ProductTypeID  int64           `json:"productTypeId"`
}

// UpdateProductRequest entrada PATCH (parcial). Quantity se rechaza siempre:
// el stock solo lo muta el motor de movimientos.
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	CostPrice      *decimal.Decimal `json:"costPrice"`
	SalePrice      *decimal.Decimal `json:"salePrice"`
	Quantity       *int64           `json:"quantity"`
	Supplier       *string          `json:"supplier"`
	ExpirationDate *string          `json:"expirationDate"`
	ProductTypeID  *int64           `json:"productTypeId"`
}

// ProductResponse salida de un producto, con campos derivados de rentabilidad.
// Warnings trae avisos no bloqueantes (ej. venta con pérdida).
type ProductResponse struct {
	ID             int64                `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	CostPrice      decimal.Decimal      `json:"costPrice"`
	SalePrice      decimal.Decimal      `json:"salePrice"`
	Quantity       int64                `json:"quantity"`
	Supplier       string               `json:"supplier,omitempty"`
	ExpirationDate *string              `json:"expirationDate,omitempty"`
	ProductTypeID  int64                `json:"productTypeId"`
	ProductType    *ProductTypeResponse `json:"productType,omitempty"`
	ProfitValue    decimal.Decimal      `json:"profitValue"`
	ProfitMargin   decimal.Decimal      `json:"profitMargin"`
	Warnings       []string             `json:"warnings,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
