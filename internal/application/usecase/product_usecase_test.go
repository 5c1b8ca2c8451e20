package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

func newProductUC(t *testing.T) (*usecase.ProductUseCase, *memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	typeRepo := memory.NewProductTypeRepository(store)
	uc := usecase.NewProductUseCase(
		memory.NewTxRunner(store),
		memory.NewProductRepository(store),
		typeRepo,
	)
	pt := &entity.ProductType{Name: "Periféricos", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, typeRepo.Create(pt))
	return uc, store, pt.ID
}

func validCreate(typeID int64) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:          "Teclado mecánico",
		Description:   "Switches marrones, layout ABNT2",
		CostPrice:     decimal.NewFromInt(120),
		SalePrice:     decimal.NewFromInt(199),
		Quantity:      0,
		Supplier:      "Logitech",
		ProductTypeID: typeID,
	}
}

func TestProductCreate_OK(t *testing.T) {
	uc, _, typeID := newProductUC(t)
	out, err := uc.Create(context.Background(), validCreate(typeID))
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "Teclado mecánico", out.Name)
	require.NotNil(t, out.ProductType)
	assert.Equal(t, "Periféricos", out.ProductType.Name)
	assert.True(t, out.ProfitValue.Equal(decimal.NewFromInt(79)))
	assert.Empty(t, out.Warnings)
}

// Crear con stock inicial deja el asiento de carga en el libro: la cantidad
// queda respaldada por movimientos desde el alta.
func TestProductCreate_ConStockInicial_RegistraEntrada(t *testing.T) {
	uc, store, typeID := newProductUC(t)
	in := validCreate(typeID)
	in.Quantity = 12
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.Quantity)

	movements, err := memory.NewMovementRepository(store).List(repository.MovementFilter{ProductID: out.ID})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementTypeEntry, movements[0].Type)
	assert.Equal(t, int64(12), movements[0].Quantity)
}

func TestProductCreate_SinStockInicial_SinMovimientos(t *testing.T) {
	uc, store, typeID := newProductUC(t)
	out, err := uc.Create(context.Background(), validCreate(typeID))
	require.NoError(t, err)

	movements, err := memory.NewMovementRepository(store).List(repository.MovementFilter{ProductID: out.ID})
	require.NoError(t, err)
	assert.Empty(t, movements)
}

// La validación junta todas las violaciones en una sola respuesta.
func TestProductCreate_ValidacionAcumulada(t *testing.T) {
	uc, _, _ := newProductUC(t)
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:      "",
		CostPrice: decimal.Zero,
		SalePrice: decimal.NewFromInt(-5),
		Quantity:  -1,
	})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	fields := make(map[string]bool)
	for _, f := range v.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["costPrice"])
	assert.True(t, fields["salePrice"])
	assert.True(t, fields["quantity"])
	assert.True(t, fields["productTypeId"])
}

func TestProductCreate_TipoInexistente(t *testing.T) {
	uc, _, _ := newProductUC(t)
	in := validCreate(999)
	_, err := uc.Create(context.Background(), in)
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
}

// Vender por debajo del costo se acepta, pero la respuesta avisa.
func TestProductCreate_VentaConPerdida_AceptadaConAviso(t *testing.T) {
	uc, _, typeID := newProductUC(t)
	in := validCreate(typeID)
	in.CostPrice = decimal.NewFromInt(200)
	in.SalePrice = decimal.NewFromInt(150)
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "pérdida")
	assert.True(t, out.ProfitValue.IsNegative())
}

func TestProductCreate_VencimientoPasado_Rechazado(t *testing.T) {
	uc, _, typeID := newProductUC(t)
	in := validCreate(typeID)
	ayer := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	in.ExpirationDate = &ayer
	_, err := uc.Create(context.Background(), in)
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "expirationDate", v.Fields[0].Field)
}

// PATCH con quantity siempre se rechaza: el stock es derivado del libro.
func TestProductUpdate_QuantityRechazada(t *testing.T) {
	uc, _, typeID := newProductUC(t)
	out, err := uc.Create(context.Background(), validCreate(typeID))
	require.NoError(t, err)

	qty := int64(50)
	_, err = uc.Update(out.ID, dto.UpdateProductRequest{Quantity: &qty})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "quantity", v.Fields[0].Field)

	// La cantidad no cambió
	after, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.Quantity)
}

func TestProductUpdate_Parcial(t *testing.T) {
	uc, _, typeID := newProductUC(t)
	out, err := uc.Create(context.Background(), validCreate(typeID))
	require.NoError(t, err)

	name := "Teclado mecánico RGB"
	price := decimal.NewFromInt(249)
	updated, err := uc.Update(out.ID, dto.UpdateProductRequest{Name: &name, SalePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Teclado mecánico RGB", updated.Name)
	assert.True(t, updated.SalePrice.Equal(decimal.NewFromInt(249)))
	// Lo no enviado queda igual
	assert.True(t, updated.CostPrice.Equal(decimal.NewFromInt(120)))
}

func TestProductUpdate_LimpiarVencimiento(t *testing.T) {
	uc, _, typeID := newProductUC(t)
	in := validCreate(typeID)
	manana := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	in.ExpirationDate = &manana
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, out.ExpirationDate)

	empty := ""
	updated, err := uc.Update(out.ID, dto.UpdateProductRequest{ExpirationDate: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.ExpirationDate)
}

func TestProductUpdate_NoExiste(t *testing.T) {
	uc, _, _ := newProductUC(t)
	name := "x"
	_, err := uc.Update(999, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Borrar el producto arrastra sus movimientos en la misma transacción.
func TestProductDelete_CascadaDeMovimientos(t *testing.T) {
	uc, store, typeID := newProductUC(t)
	in := validCreate(typeID)
	in.Quantity = 5
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), out.ID))

	movements, err := memory.NewMovementRepository(store).List(repository.MovementFilter{ProductID: out.ID})
	require.NoError(t, err)
	assert.Empty(t, movements)
	got, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductList_FiltroYPaginacion(t *testing.T) {
	uc, _, typeID := newProductUC(t)
	for _, name := range []string{"Mouse", "Teclado", "Monitor"} {
		in := validCreate(typeID)
		in.Name = name
		_, err := uc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	out, err := uc.List("", 0, 1, 2)
	require.NoError(t, err)
	assert.Len(t, out.Data, 2)
	assert.Equal(t, 3, out.Pagination.Total)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	assert.True(t, out.Pagination.HasNext)
	assert.False(t, out.Pagination.HasPrev)

	page2, err := uc.List("", 0, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Data, 1)
	assert.True(t, page2.Pagination.HasPrev)
}

// "eletronicos" debe encontrar "Eletrônicos" (búsqueda sin acentos).
func TestProductList_BusquedaSinAcentos(t *testing.T) {
	uc, _, typeID := newProductUC(t)
	in := validCreate(typeID)
	in.Name = "Fone Eletrônico"
	_, err := uc.Create(context.Background(), in)
	require.NoError(t, err)

	out, err := uc.List("eletronico", 0, 1, 10)
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Fone Eletrônico", out.Data[0].Name)
}
