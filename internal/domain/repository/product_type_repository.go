package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductTypeRepository define el puerto de persistencia para ProductType (DIP).
type ProductTypeRepository interface {
	Create(t *entity.ProductType) error // asigna ID
	GetByID(id int64) (*entity.ProductType, error)
	Update(t *entity.ProductType) error
	List(search string, limit, offset int) ([]*entity.ProductType, int, error)
	ListAll() ([]*entity.ProductType, error)
	Delete(id int64) error
}
