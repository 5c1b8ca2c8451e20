package dto

import "time"

// CreateProductTypeRequest entrada para crear un tipo de producto.
type CreateProductTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProductTypeRequest entrada PATCH (parcial) para un tipo de producto.
type UpdateProductTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ProductTypeResponse salida de un tipo de producto.
type ProductTypeResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductTypeListResponse lista paginada de tipos de producto.
type ProductTypeListResponse struct {
	Data       []ProductTypeResponse `json:"data"`
	Pagination Pagination            `json:"pagination"`
}
