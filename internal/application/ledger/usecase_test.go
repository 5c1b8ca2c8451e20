package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// newLedger arma el motor sobre un store en memoria limpio, con un tipo y un
// producto de cantidad inicial cero listos para usar.
func newLedger(t *testing.T) (*ledger.UseCase, *memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	typeRepo := memory.NewProductTypeRepository(store)
	productRepo := memory.NewProductRepository(store)
	movementRepo := memory.NewMovementRepository(store)
	uc := ledger.NewUseCase(memory.NewTxRunner(store), productRepo, typeRepo, movementRepo)

	pt := &entity.ProductType{Name: "Eletrônicos", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, typeRepo.Create(pt))
	p := &entity.Product{
		Name:          "Mouse Wireless Logitech",
		CostPrice:     decimal.NewFromInt(180),
		SalePrice:     decimal.NewFromFloat(279.90),
		ProductTypeID: pt.ID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, productRepo.Create(p))
	return uc, store, p.ID
}

func productQty(t *testing.T, store *memory.Store, id int64) int64 {
	t.Helper()
	p, err := memory.NewProductRepository(store).GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func TestRegister_EntradaSumaStock(t *testing.T) {
	uc, store, productID := newLedger(t)

	out, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 10, ProductID: productID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeEntry, out.Type)
	assert.NotZero(t, out.ID)
	require.NotNil(t, out.Product)
	assert.Equal(t, "Mouse Wireless Logitech", out.Product.Name)
	assert.Equal(t, int64(10), productQty(t, store, productID))
}

func TestRegister_SalidaRestaStock(t *testing.T) {
	uc, store, productID := newLedger(t)
	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 10, ProductID: productID,
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeExit, Quantity: 3, ProductID: productID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), productQty(t, store, productID))
}

// Una salida mayor al stock disponible se rechaza y la cantidad no cambia.
func TestRegister_SalidaMayorAlStock_Rechazada(t *testing.T) {
	uc, store, productID := newLedger(t)
	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 7, ProductID: productID,
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeExit, Quantity: 100, ProductID: productID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(7), productQty(t, store, productID))

	// El asiento rechazado no queda en el libro
	list, err := memory.NewMovementRepository(store).List(repository.MovementFilter{ProductID: productID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegister_ProductoInexistente(t *testing.T) {
	uc, _, _ := newLedger(t)
	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 1, ProductID: 999,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_ValidacionAcumulaErrores(t *testing.T) {
	uc, _, _ := newLedger(t)
	future := time.Now().Add(48 * time.Hour)
	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: "transfer", Quantity: 0, ProductID: 0, CreatedAt: &future,
	})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Fields, 4)
}

func TestRegister_FechaMayorAUnAnio_Rechazada(t *testing.T) {
	uc, _, productID := newLedger(t)
	old := time.Now().AddDate(-1, -1, 0)
	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 1, ProductID: productID, CreatedAt: &old,
	})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
}

// Editar un movimiento revierte el delta original y aplica el nuevo.
func TestUpdate_RevertirYAplicar(t *testing.T) {
	uc, store, productID := newLedger(t)
	entry, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 10, ProductID: productID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(10), productQty(t, store, productID))

	newQty := int64(4)
	out, err := uc.Update(context.Background(), entry.ID, dto.UpdateMovementRequest{Quantity: &newQty})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Quantity)
	assert.Equal(t, int64(4), productQty(t, store, productID))
}

// Cambiar una entrada a salida aplica el doble efecto (deshacer +10, aplicar −10).
func TestUpdate_CambioDeTipo(t *testing.T) {
	uc, store, productID := newLedger(t)
	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 20, ProductID: productID,
	})
	require.NoError(t, err)
	entry, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 5, ProductID: productID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(25), productQty(t, store, productID))

	exit := entity.MovementTypeExit
	_, err = uc.Update(context.Background(), entry.ID, dto.UpdateMovementRequest{Type: &exit})
	require.NoError(t, err)
	assert.Equal(t, int64(15), productQty(t, store, productID))
}

func TestUpdate_RechazaSiDejaStockNegativo(t *testing.T) {
	uc, store, productID := newLedger(t)
	entry, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 10, ProductID: productID,
	})
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeExit, Quantity: 8, ProductID: productID,
	})
	require.NoError(t, err)

	// Reducir la entrada a 5 dejaría el stock en −3
	smaller := int64(5)
	_, err = uc.Update(context.Background(), entry.ID, dto.UpdateMovementRequest{Quantity: &smaller})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), productQty(t, store, productID))
}

func TestUpdate_ProductIDInmutable(t *testing.T) {
	uc, _, productID := newLedger(t)
	entry, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 1, ProductID: productID,
	})
	require.NoError(t, err)

	otro := productID + 1
	_, err = uc.Update(context.Background(), entry.ID, dto.UpdateMovementRequest{ProductID: &otro})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "productId", v.Fields[0].Field)
}

func TestUpdate_MismoProductIDPermitido(t *testing.T) {
	uc, _, productID := newLedger(t)
	entry, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 1, ProductID: productID,
	})
	require.NoError(t, err)

	same := productID
	notes := "ajuste"
	_, err = uc.Update(context.Background(), entry.ID, dto.UpdateMovementRequest{ProductID: &same, Notes: &notes})
	assert.NoError(t, err)
}

// Borrar un movimiento deja la cantidad como si nunca hubiera existido.
func TestDelete_RevierteElEfecto(t *testing.T) {
	uc, store, productID := newLedger(t)
	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 10, ProductID: productID,
	})
	require.NoError(t, err)
	exit, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeExit, Quantity: 4, ProductID: productID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), productQty(t, store, productID))

	require.NoError(t, uc.Delete(context.Background(), exit.ID))
	assert.Equal(t, int64(10), productQty(t, store, productID))
}

func TestDelete_EntradaQueSostieneSalidas_Rechazada(t *testing.T) {
	uc, store, productID := newLedger(t)
	entry, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 10, ProductID: productID,
	})
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeExit, Quantity: 8, ProductID: productID,
	})
	require.NoError(t, err)

	err = uc.Delete(context.Background(), entry.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), productQty(t, store, productID))
}

func TestDelete_MovimientoInexistente(t *testing.T) {
	uc, _, _ := newLedger(t)
	assert.ErrorIs(t, uc.Delete(context.Background(), 999), domain.ErrNotFound)
}

func TestListWithSummary_AgregadosDelPeriodo(t *testing.T) {
	uc, _, productID := newLedger(t)
	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 10, ProductID: productID,
	})
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeExit, Quantity: 3, ProductID: productID,
	})
	require.NoError(t, err)

	out, err := uc.ListWithSummary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, out.Movements, 2)
	assert.Equal(t, int64(10), out.Summary.Entries)
	assert.Equal(t, int64(3), out.Summary.Exits)
	assert.Equal(t, int64(7), out.Summary.Balance)
	assert.Equal(t, 1, out.Summary.EntryCount)
	assert.Equal(t, 1, out.Summary.ExitCount)
	// Entradas a costo (10×180), salidas a venta (3×279.90)
	assert.True(t, out.Summary.EntriesValue.Equal(decimal.NewFromInt(1800)),
		"entriesValue = %s", out.Summary.EntriesValue)
	assert.True(t, out.Summary.ExitsValue.Equal(decimal.NewFromFloat(839.70)),
		"exitsValue = %s", out.Summary.ExitsValue)
}
