package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementFilter criterios para listar movimientos. From/To acotan por CreatedAt.
type MovementFilter struct {
	ProductID int64 // 0 = todos
	From      *time.Time
	To        *time.Time
	Limit     int // 0 = sin límite
}

// StockMovementRepository define el puerto de persistencia para el libro de movimientos (DIP).
// List devuelve ordenado por CreatedAt descendente.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error // asigna ID
	GetByID(id int64) (*entity.StockMovement, error)
	Update(movement *entity.StockMovement) error
	Delete(id int64) error
	DeleteByProduct(productID int64) error
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
