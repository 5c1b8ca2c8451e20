package memory

import (
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria de StockMovementRepository.
// Con locked=true opera dentro de una transacción del TxRunner.
type MovementRepo struct {
	store  *Store
	locked bool
}

// NewMovementRepository construye el adaptador sobre el store.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

func (r *MovementRepo) rlock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.RLock()
	return r.store.mu.RUnlock
}

func (r *MovementRepo) wlock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create persiste un movimiento nuevo y asigna el siguiente id.
func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	defer r.wlock()()
	r.store.nextMovementID++
	movement.ID = r.store.nextMovementID
	r.store.movements[movement.ID] = cloneMovement(movement)
	return nil
}

// GetByID devuelve una copia del movimiento, o nil si no existe.
func (r *MovementRepo) GetByID(id int64) (*entity.StockMovement, error) {
	defer r.rlock()()
	return cloneMovement(r.store.movements[id]), nil
}

// Update sobreescribe el movimiento existente.
func (r *MovementRepo) Update(movement *entity.StockMovement) error {
	defer r.wlock()()
	if _, ok := r.store.movements[movement.ID]; !ok {
		return nil
	}
	r.store.movements[movement.ID] = cloneMovement(movement)
	return nil
}

// Delete elimina el movimiento; silencioso si no existe.
func (r *MovementRepo) Delete(id int64) error {
	defer r.wlock()()
	delete(r.store.movements, id)
	return nil
}

// DeleteByProduct elimina todos los movimientos del producto (cascada al borrarlo).
func (r *MovementRepo) DeleteByProduct(productID int64) error {
	defer r.wlock()()
	for id, m := range r.store.movements {
		if m.ProductID == productID {
			delete(r.store.movements, id)
		}
	}
	return nil
}

// List filtra por producto y rango de fechas, ordenado por CreatedAt descendente
// (a igual fecha, id descendente). Limit 0 = sin límite.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	defer r.rlock()()
	matched := make([]*entity.StockMovement, 0, len(r.store.movements))
	for _, m := range r.store.movements {
		if filter.ProductID != 0 && m.ProductID != filter.ProductID {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, m)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	result := make([]*entity.StockMovement, 0, len(matched))
	for _, m := range matched {
		result = append(result, cloneMovement(m))
	}
	return result, nil
}
