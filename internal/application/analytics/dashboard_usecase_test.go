package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

type dashboardFixture struct {
	uc       *analytics.DashboardUseCase
	ledger   *ledger.UseCase
	store    *memory.Store
	typeRepo *memory.ProductTypeRepo
	prodRepo *memory.ProductRepo
}

func newDashboard(t *testing.T, threshold int64) *dashboardFixture {
	t.Helper()
	store := memory.NewStore()
	typeRepo := memory.NewProductTypeRepository(store)
	prodRepo := memory.NewProductRepository(store)
	movRepo := memory.NewMovementRepository(store)
	return &dashboardFixture{
		uc:       analytics.NewDashboardUseCase(prodRepo, typeRepo, movRepo, threshold),
		ledger:   ledger.NewUseCase(memory.NewTxRunner(store), prodRepo, typeRepo, movRepo),
		store:    store,
		typeRepo: typeRepo,
		prodRepo: prodRepo,
	}
}

func (f *dashboardFixture) addType(t *testing.T, name string) int64 {
	t.Helper()
	pt := &entity.ProductType{Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, f.typeRepo.Create(pt))
	return pt.ID
}

func (f *dashboardFixture) addProduct(t *testing.T, name string, typeID int64, cost, sale int64) int64 {
	t.Helper()
	p := &entity.Product{
		Name:          name,
		CostPrice:     decimal.NewFromInt(cost),
		SalePrice:     decimal.NewFromInt(sale),
		ProductTypeID: typeID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, f.prodRepo.Create(p))
	return p.ID
}

func (f *dashboardFixture) move(t *testing.T, productID int64, kind string, qty int64) {
	t.Helper()
	_, err := f.ledger.Register(context.Background(), dto.CreateMovementRequest{
		Type: kind, Quantity: qty, ProductID: productID,
	})
	require.NoError(t, err)
}

func TestStats_KPIsDelDia(t *testing.T) {
	f := newDashboard(t, 5)
	typeID := f.addType(t, "Eletrônicos")
	productID := f.addProduct(t, "Notebook", typeID, 100, 150)

	f.move(t, productID, entity.MovementTypeEntry, 10)
	f.move(t, productID, entity.MovementTypeExit, 4)

	stats, err := f.uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalProductTypes)
	assert.Equal(t, int64(10), stats.TodayPurchases)
	assert.Equal(t, int64(4), stats.TodaySales)
	assert.Equal(t, int64(6), stats.TodayBalance)
	// Compras 10×100=1000, ventas 4×150=600, ganancia −400
	assert.True(t, stats.TodayPurchasesValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, stats.TodaySalesValue.Equal(decimal.NewFromInt(600)))
	assert.True(t, stats.TodayProfit.Equal(decimal.NewFromInt(-400)))
	assert.True(t, stats.TodayProfitMargin.Equal(decimal.NewFromInt(-40)),
		"margin = %s", stats.TodayProfitMargin)
}

// La identidad ganancia = ventas − compras se mantiene siempre.
func TestStats_IdentidadDeGanancia(t *testing.T) {
	f := newDashboard(t, 5)
	typeID := f.addType(t, "Periféricos")
	productID := f.addProduct(t, "Mouse", typeID, 180, 280)
	f.move(t, productID, entity.MovementTypeEntry, 3)
	f.move(t, productID, entity.MovementTypeExit, 2)

	stats, err := f.uc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.TodayProfit.Equal(stats.TodaySalesValue.Sub(stats.TodayPurchasesValue)))
}

// Sin compras hoy, el margen es cero (no división por cero).
func TestStats_MargenCeroSinCompras(t *testing.T) {
	f := newDashboard(t, 5)
	typeID := f.addType(t, "Periféricos")
	productID := f.addProduct(t, "Mouse", typeID, 180, 280)
	// Entrada de ayer no cuenta para hoy; solo la salida de hoy
	f.move(t, productID, entity.MovementTypeEntry, 10)
	// Simular que la entrada fue ayer moviendo su fecha
	ayer := time.Now().AddDate(0, 0, -1)
	f.rewriteMovementDates(t, ayer)
	f.move(t, productID, entity.MovementTypeExit, 2)

	stats, err := f.uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TodayPurchases)
	assert.Equal(t, int64(2), stats.TodaySales)
	assert.True(t, stats.TodayProfitMargin.IsZero())
}

// rewriteMovementDates mueve todos los movimientos existentes a la fecha dada.
func (f *dashboardFixture) rewriteMovementDates(t *testing.T, at time.Time) {
	t.Helper()
	movRepo := memory.NewMovementRepository(f.store)
	movements, err := movRepo.List(repository.MovementFilter{})
	require.NoError(t, err)
	for _, m := range movements {
		m.CreatedAt = at
		require.NoError(t, movRepo.Update(m))
	}
}

func TestStats_StockBajo(t *testing.T) {
	f := newDashboard(t, 5)
	typeID := f.addType(t, "Periféricos")
	low := f.addProduct(t, "Casi agotado", typeID, 10, 20)
	ok := f.addProduct(t, "Bien surtido", typeID, 10, 20)
	f.move(t, low, entity.MovementTypeEntry, 3)
	f.move(t, ok, entity.MovementTypeEntry, 50)

	stats, err := f.uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LowStockProducts)
}

func TestTrend_VentanaYOrden(t *testing.T) {
	f := newDashboard(t, 5)
	typeID := f.addType(t, "Periféricos")
	productID := f.addProduct(t, "Mouse", typeID, 10, 20)
	f.move(t, productID, entity.MovementTypeEntry, 8)
	f.move(t, productID, entity.MovementTypeExit, 3)

	points, err := f.uc.Trend(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, points, 7)

	// El último punto es hoy con la etiqueta dd/MM
	today := points[6]
	assert.Equal(t, time.Now().Format("02/01"), today.Date)
	assert.Equal(t, int64(8), today.Entries)
	assert.Equal(t, int64(3), today.Exits)
	assert.Equal(t, int64(5), today.Balance)

	// Los días sin movimientos vienen en cero, no se omiten
	for _, p := range points[:6] {
		assert.Zero(t, p.Entries)
		assert.Zero(t, p.Exits)
	}
}

func TestTrend_DiasInvalidosUsaSiete(t *testing.T) {
	f := newDashboard(t, 5)
	points, err := f.uc.Trend(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, points, 7)
}

func TestRecent_LimiteYNombres(t *testing.T) {
	f := newDashboard(t, 5)
	typeID := f.addType(t, "Periféricos")
	productID := f.addProduct(t, "Mouse", typeID, 10, 20)
	for i := 0; i < 8; i++ {
		f.move(t, productID, entity.MovementTypeEntry, 1)
	}

	items, err := f.uc.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, "Mouse", items[0].Product.Name)
}

func TestDistribution_PorcentajesSuman100(t *testing.T) {
	f := newDashboard(t, 5)
	electronics := f.addType(t, "Eletrônicos")
	peripherals := f.addType(t, "Periféricos")
	f.addProduct(t, "Notebook", electronics, 10, 20)
	f.addProduct(t, "Smartphone", electronics, 10, 20)
	f.addProduct(t, "Mouse", peripherals, 10, 20)
	f.addProduct(t, "Teclado", peripherals, 10, 20)

	dist, err := f.uc.Distribution(context.Background())
	require.NoError(t, err)
	require.Len(t, dist, 2)

	sum := decimal.Zero
	for _, d := range dist {
		sum = sum.Add(d.Percentage)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(100)), "suma = %s", sum)
	assert.Equal(t, 2, dist[0].Value)
}

func TestDistribution_SinProductos(t *testing.T) {
	f := newDashboard(t, 5)
	f.addType(t, "Vacío")
	dist, err := f.uc.Distribution(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, dist)
	assert.Empty(t, dist)
}
