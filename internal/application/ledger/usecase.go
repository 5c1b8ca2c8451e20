// Package ledger implementa el motor del libro de stock: aplicar, revertir y
// actualizar movimientos manteniendo Product.Quantity = Σ entradas − Σ salidas.
//
// Política de stock negativo: se rechaza con domain.ErrInsufficientStock todo
// movimiento (alta, edición o borrado) que dejaría la cantidad por debajo de cero.
// La regla es uniforme en todos los caminos; no se hace clamp a cero.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	maxNotesLen    = 500
	maxMovementAge = 365 * 24 * time.Hour
)

// UseCase motor del libro de stock. Toda mutación pasa por el TxRunner con la
// fila del producto bloqueada (FOR UPDATE en postgres, lock global en memoria).
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	typeRepo     repository.ProductTypeRepository
	movementRepo repository.StockMovementRepository
}

// NewUseCase construye el motor.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	typeRepo repository.ProductTypeRepository,
	movementRepo repository.StockMovementRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		typeRepo:     typeRepo,
		movementRepo: movementRepo,
	}
}

// Register valida y aplica un movimiento nuevo: bloquea el producto, recalcula
// la cantidad (entry suma, exit resta) y persiste el asiento en la misma transacción.
func (uc *UseCase) Register(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	v := &domain.ValidationError{}
	if in.Type != entity.MovementTypeEntry && in.Type != entity.MovementTypeExit {
		v.Add("type", "el tipo de movimiento es obligatorio y debe ser entry o exit")
	}
	if in.Quantity <= 0 {
		v.Add("quantity", "la cantidad debe ser mayor que cero")
	}
	if in.ProductID <= 0 {
		v.Add("productId", "el producto es obligatorio")
	}
	if in.CreatedAt != nil {
		validateMovementDate(v, *in.CreatedAt)
	}
	if len(in.Notes) > maxNotesLen {
		v.Add("notes", fmt.Sprintf("las notas no pueden superar %d caracteres", maxNotesLen))
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	createdAt := time.Now()
	if in.CreatedAt != nil {
		createdAt = *in.CreatedAt
	}
	movement := &entity.StockMovement{
		Type:      in.Type,
		Quantity:  in.Quantity,
		ProductID: in.ProductID,
		Notes:     in.Notes,
		CreatedAt: createdAt,
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		var err error
		product, err = productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newQty := product.Quantity + movement.Delta()
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}
		product.Quantity = newQty
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(movement, product), nil
}

// Update edita un movimiento como revertir-y-aplicar: primero deshace el delta
// original y luego aplica el nuevo, rechazando cualquier paso que deje stock negativo.
// ProductID es inmutable; cambiarlo movería historial entre productos sin relación.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	var updated *entity.StockMovement
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		existing, err := movementRepo.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		v := &domain.ValidationError{}
		if in.ProductID != nil && *in.ProductID != existing.ProductID {
			v.Add("productId", "el producto de un movimiento no se puede cambiar")
		}
		next := *existing
		if in.Type != nil {
			if *in.Type != entity.MovementTypeEntry && *in.Type != entity.MovementTypeExit {
				v.Add("type", "el tipo de movimiento debe ser entry o exit")
			}
			next.Type = *in.Type
		}
		if in.Quantity != nil {
			if *in.Quantity <= 0 {
				v.Add("quantity", "la cantidad debe ser mayor que cero")
			}
			next.Quantity = *in.Quantity
		}
		if in.CreatedAt != nil {
			validateMovementDate(v, *in.CreatedAt)
			next.CreatedAt = *in.CreatedAt
		}
		if in.Notes != nil {
			if len(*in.Notes) > maxNotesLen {
				v.Add("notes", fmt.Sprintf("las notas no pueden superar %d caracteres", maxNotesLen))
			}
			next.Notes = *in.Notes
		}
		if err := v.ErrOrNil(); err != nil {
			return err
		}

		product, err = productRepo.GetForUpdate(existing.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Revertir el delta original antes de aplicar el nuevo
		qty := product.Quantity - existing.Delta()
		if qty < 0 {
			return domain.ErrInsufficientStock
		}
		qty += next.Delta()
		if qty < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateQuantity(product.ID, qty); err != nil {
			return err
		}
		product.Quantity = qty
		if err := movementRepo.Update(&next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(updated, product), nil
}

// Delete elimina un movimiento revirtiendo su efecto: la cantidad vuelve al valor
// que tendría si el movimiento nunca hubiera existido.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		movement, err := movementRepo.GetByID(id)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(movement.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			// Sin producto no hay cantidad que revertir; se borra el asiento huérfano
			return movementRepo.Delete(id)
		}
		qty := product.Quantity - movement.Delta()
		if qty < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateQuantity(product.ID, qty); err != nil {
			return err
		}
		return movementRepo.Delete(id)
	})
}

// ListWithSummary lista movimientos del rango (más reciente primero) con el
// resumen agregado del período: unidades, número de asientos y valores monetarios.
func (uc *UseCase) ListWithSummary(ctx context.Context, from, to *time.Time) (*dto.MovementListResponse, error) {
	movements, err := uc.movementRepo.List(repository.MovementFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	products, err := uc.productIndex()
	if err != nil {
		return nil, err
	}
	types, err := uc.typeIndex()
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *toMovementResponse(m, products[m.ProductID], types))
	}
	return &dto.MovementListResponse{
		Movements: items,
		Summary:   Summarize(movements, products),
	}, nil
}

// OpeningEntry construye el asiento de entrada inicial de un producto creado con
// stock, para que la invariante cantidad = Σ entradas − Σ salidas valga desde el alta.
func OpeningEntry(productID, quantity int64, at time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		Type:      entity.MovementTypeEntry,
		Quantity:  quantity,
		ProductID: productID,
		Notes:     "Carga inicial de stock",
		CreatedAt: at,
	}
}

func validateMovementDate(v *domain.ValidationError, at time.Time) {
	now := time.Now()
	if at.After(now) {
		v.Add("createdAt", "la fecha del movimiento no puede ser futura")
	}
	if at.Before(now.Add(-maxMovementAge)) {
		v.Add("createdAt", "la fecha del movimiento no puede ser anterior a un año")
	}
}

func (uc *UseCase) productIndex() (map[int64]*entity.Product, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	index := make(map[int64]*entity.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index, nil
}

func (uc *UseCase) typeIndex() (map[int64]*entity.ProductType, error) {
	types, err := uc.typeRepo.ListAll()
	if err != nil {
		return nil, err
	}
	index := make(map[int64]*entity.ProductType, len(types))
	for _, t := range types {
		index[t.ID] = t
	}
	return index, nil
}

func (uc *UseCase) toResponse(m *entity.StockMovement, product *entity.Product) *dto.MovementResponse {
	types, err := uc.typeIndex()
	if err != nil {
		types = map[int64]*entity.ProductType{}
	}
	return toMovementResponse(m, product, types)
}

func toMovementResponse(m *entity.StockMovement, product *entity.Product, types map[int64]*entity.ProductType) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:        m.ID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		ProductID: m.ProductID,
		CreatedAt: m.CreatedAt,
		Notes:     m.Notes,
	}
	if product != nil {
		ref := &dto.MovementProductRef{
			ID:        product.ID,
			Name:      product.Name,
			CostPrice: product.CostPrice,
			SalePrice: product.SalePrice,
		}
		if t := types[product.ProductTypeID]; t != nil {
			ref.ProductType = &dto.ProductTypeShortRef{ID: t.ID, Name: t.Name}
		}
		resp.Product = ref
	}
	return resp
}
