package memory

import (
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
// Con locked=true opera dentro de una transacción del TxRunner (lock ya tomado).
type ProductRepo struct {
	store  *Store
	locked bool
}

// NewProductRepository construye el adaptador sobre el store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) rlock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.RLock()
	return r.store.mu.RUnlock
}

func (r *ProductRepo) wlock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create persiste un producto nuevo y asigna el siguiente id.
func (r *ProductRepo) Create(product *entity.Product) error {
	defer r.wlock()()
	r.store.nextProductID++
	product.ID = r.store.nextProductID
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

// GetByID devuelve una copia del producto, o nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	defer r.rlock()()
	return cloneProduct(r.store.products[id]), nil
}

// GetForUpdate en memoria equivale a GetByID: el TxRunner ya tiene el lock
// de escritura, así que nadie más puede tocar la fila.
func (r *ProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

// Update sobreescribe el producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	defer r.wlock()()
	if _, ok := r.store.products[product.ID]; !ok {
		return nil
	}
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

// UpdateQuantity fija la cantidad derivada del libro (solo la usa el motor de stock).
func (r *ProductRepo) UpdateQuantity(id int64, quantity int64) error {
	defer r.wlock()()
	if p, ok := r.store.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

// List filtra por búsqueda (nombre o descripción, insensible a acentos) y tipo,
// con paginación.
// Devuelve además el total sin paginar. Orden: id ascendente (orden de alta).
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	defer r.rlock()()
	matched := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if filter.ProductTypeID != 0 && p.ProductTypeID != filter.ProductTypeID {
			continue
		}
		if !matchesSearch(p.Name, filter.Search) && !matchesSearch(p.Description, filter.Search) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	matched = paginate(matched, filter.Limit, filter.Offset)
	result := make([]*entity.Product, 0, len(matched))
	for _, p := range matched {
		result = append(result, cloneProduct(p))
	}
	return result, total, nil
}

// ListAll devuelve todos los productos ordenados por id.
func (r *ProductRepo) ListAll() ([]*entity.Product, error) {
	list, _, err := r.List(repository.ProductFilter{})
	return list, err
}

// CountByType cuenta productos que referencian el tipo dado.
func (r *ProductRepo) CountByType(productTypeID int64) (int, error) {
	defer r.rlock()()
	count := 0
	for _, p := range r.store.products {
		if p.ProductTypeID == productTypeID {
			count++
		}
	}
	return count, nil
}

// Delete elimina el producto; silencioso si no existe.
func (r *ProductRepo) Delete(id int64) error {
	defer r.wlock()()
	delete(r.store.products, id)
	return nil
}

// paginate aplica limit/offset sobre un slice ya ordenado. limit 0 = sin límite.
func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
