package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductFilter criterios de búsqueda y paginación para listados de productos.
// Search compara sin distinguir mayúsculas ni acentos ("eletronicos" encuentra "Eletrônicos").
type ProductFilter struct {
	Search        string
	ProductTypeID int64 // 0 = todos los tipos
	Limit         int
	Offset        int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate solo tiene sentido dentro de una transacción del TxRunner:
// bloquea la fila del producto para que el motor de stock serialice movimientos.
type ProductRepository interface {
	Create(product *entity.Product) error // asigna ID
	GetByID(id int64) (*entity.Product, error)
	GetForUpdate(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(id int64, quantity int64) error
	List(filter ProductFilter) ([]*entity.Product, int, error) // items + total sin paginar
	ListAll() ([]*entity.Product, error)
	CountByType(productTypeID int64) (int, error)
	Delete(id int64) error
}
