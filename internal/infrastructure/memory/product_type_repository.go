package memory

import (
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

// ProductTypeRepo implementación en memoria de ProductTypeRepository.
type ProductTypeRepo struct {
	store *Store
}

// NewProductTypeRepository construye el adaptador sobre el store.
func NewProductTypeRepository(store *Store) *ProductTypeRepo {
	return &ProductTypeRepo{store: store}
}

// Create persiste un tipo nuevo y asigna el siguiente id.
func (r *ProductTypeRepo) Create(t *entity.ProductType) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextTypeID++
	t.ID = r.store.nextTypeID
	r.store.productTypes[t.ID] = cloneProductType(t)
	return nil
}

// GetByID devuelve una copia del tipo, o nil si no existe.
func (r *ProductTypeRepo) GetByID(id int64) (*entity.ProductType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return cloneProductType(r.store.productTypes[id]), nil
}

// Update sobreescribe el tipo existente.
func (r *ProductTypeRepo) Update(t *entity.ProductType) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.productTypes[t.ID]; !ok {
		return nil
	}
	r.store.productTypes[t.ID] = cloneProductType(t)
	return nil
}

// List filtra por nombre (insensible a acentos) con paginación; devuelve el total.
func (r *ProductTypeRepo) List(search string, limit, offset int) ([]*entity.ProductType, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]*entity.ProductType, 0, len(r.store.productTypes))
	for _, t := range r.store.productTypes {
		if !matchesSearch(t.Name, search) {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	matched = paginate(matched, limit, offset)
	result := make([]*entity.ProductType, 0, len(matched))
	for _, t := range matched {
		result = append(result, cloneProductType(t))
	}
	return result, total, nil
}

// ListAll devuelve todos los tipos ordenados por id.
func (r *ProductTypeRepo) ListAll() ([]*entity.ProductType, error) {
	list, _, err := r.List("", 0, 0)
	return list, err
}

// Delete elimina el tipo; silencioso si no existe.
func (r *ProductTypeRepo) Delete(id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.productTypes, id)
	return nil
}
