package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

func newTypeUC(t *testing.T) (*usecase.ProductTypeUseCase, *usecase.ProductUseCase) {
	t.Helper()
	store := memory.NewStore()
	typeRepo := memory.NewProductTypeRepository(store)
	productRepo := memory.NewProductRepository(store)
	typeUC := usecase.NewProductTypeUseCase(typeRepo, productRepo)
	productUC := usecase.NewProductUseCase(memory.NewTxRunner(store), productRepo, typeRepo)
	return typeUC, productUC
}

func TestTypeCreate_OK(t *testing.T) {
	uc, _ := newTypeUC(t)
	out, err := uc.Create(dto.CreateProductTypeRequest{Name: "Eletrônicos", Description: "Dispositivos"})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "Eletrônicos", out.Name)
}

func TestTypeCreate_NombreObligatorio(t *testing.T) {
	uc, _ := newTypeUC(t)
	_, err := uc.Create(dto.CreateProductTypeRequest{Name: "   "})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "name", v.Fields[0].Field)
}

func TestTypeCreate_NombreMuyLargo(t *testing.T) {
	uc, _ := newTypeUC(t)
	_, err := uc.Create(dto.CreateProductTypeRequest{Name: strings.Repeat("a", 101)})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
}

func TestTypeUpdate_Parcial(t *testing.T) {
	uc, _ := newTypeUC(t)
	out, err := uc.Create(dto.CreateProductTypeRequest{Name: "Periféricos", Description: "Original"})
	require.NoError(t, err)

	name := "Periféricos PC"
	updated, err := uc.Update(out.ID, dto.UpdateProductTypeRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Periféricos PC", updated.Name)
	assert.Equal(t, "Original", updated.Description)
}

func TestTypeUpdate_NoExiste(t *testing.T) {
	uc, _ := newTypeUC(t)
	name := "x"
	_, err := uc.Update(999, dto.UpdateProductTypeRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un tipo referenciado por productos no se puede eliminar.
func TestTypeDelete_BloqueadoSiEstaEnUso(t *testing.T) {
	typeUC, productUC := newTypeUC(t)
	pt, err := typeUC.Create(dto.CreateProductTypeRequest{Name: "Periféricos"})
	require.NoError(t, err)

	in := validCreate(pt.ID)
	_, err = productUC.Create(context.Background(), in)
	require.NoError(t, err)

	err = typeUC.Delete(pt.ID)
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Error(), "1 producto(s)")

	// Sigue existiendo
	got, err := typeUC.GetByID(pt.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestTypeDelete_SinReferencias(t *testing.T) {
	uc, _ := newTypeUC(t)
	pt, err := uc.Create(dto.CreateProductTypeRequest{Name: "Vacío"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(pt.ID))
	got, err := uc.GetByID(pt.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTypeDelete_NoExiste(t *testing.T) {
	uc, _ := newTypeUC(t)
	assert.ErrorIs(t, uc.Delete(999), domain.ErrNotFound)
}

func TestTypeList_BusquedaYPaginacion(t *testing.T) {
	uc, _ := newTypeUC(t)
	for _, name := range []string{"Eletrônicos", "Periféricos", "Móveis"} {
		_, err := uc.Create(dto.CreateProductTypeRequest{Name: name})
		require.NoError(t, err)
	}

	out, err := uc.List("eletronicos", 1, 10)
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Eletrônicos", out.Data[0].Name)
	assert.Equal(t, 1, out.Pagination.Total)
}
