package entity

import "time"

// ProductType categoría a la que pertenece un producto.
// No se puede eliminar mientras algún producto la referencie.
type ProductType struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
