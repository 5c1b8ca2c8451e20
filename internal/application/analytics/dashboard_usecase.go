// Package analytics contiene los casos de uso de lectura del dashboard:
// KPIs del día, tendencia de stock, movimientos recientes y distribución por tipo.
// Todas son vistas derivadas del store y del libro; nunca mutan nada y se
// recalculan completas en cada llamada (sin caché incremental).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	defaultTrendDays     = 7
	defaultRecentLimit   = 5
	trendDateLabelLayout = "02/01" // dd/MM, como lo pinta el gráfico
)

// DashboardUseCase genera los agregados del dashboard.
type DashboardUseCase struct {
	productRepo       repository.ProductRepository
	typeRepo          repository.ProductTypeRepository
	movementRepo      repository.StockMovementRepository
	lowStockThreshold int64
}

// NewDashboardUseCase construye el caso de uso. threshold <= 0 usa el valor por defecto 5.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	typeRepo repository.ProductTypeRepository,
	movementRepo repository.StockMovementRepository,
	lowStockThreshold int64,
) *DashboardUseCase {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	return &DashboardUseCase{
		productRepo:       productRepo,
		typeRepo:          typeRepo,
		movementRepo:      movementRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// Stats construye los KPIs del día: totales de catálogo, stock bajo y el
// resumen de compras/ventas de hoy (frontera de día en hora local).
//
// Tres lecturas en paralelo: productos, tipos y movimientos de hoy.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	todayStart, todayEnd := dayBounds(time.Now())

	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type typesResult struct {
		types []*entity.ProductType
		err   error
	}
	type movementsResult struct {
		movements []*entity.StockMovement
		err       error
	}

	productsCh := make(chan productsResult, 1)
	typesCh := make(chan typesResult, 1)
	movementsCh := make(chan movementsResult, 1)

	go func() {
		products, err := uc.productRepo.ListAll()
		productsCh <- productsResult{products, err}
	}()
	go func() {
		types, err := uc.typeRepo.ListAll()
		typesCh <- typesResult{types, err}
	}()
	go func() {
		movements, err := uc.movementRepo.List(repository.MovementFilter{From: &todayStart, To: &todayEnd})
		movementsCh <- movementsResult{movements, err}
	}()

	products := <-productsCh
	types := <-typesCh
	movements := <-movementsCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if types.err != nil {
		return nil, fmt.Errorf("dashboard: tipos: %w", types.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos de hoy: %w", movements.err)
	}

	lowStock := 0
	productIndex := make(map[int64]*entity.Product, len(products.products))
	for _, p := range products.products {
		productIndex[p.ID] = p
		if p.Quantity <= uc.lowStockThreshold {
			lowStock++
		}
	}

	today := ledger.Summarize(movements.movements, productIndex)
	profit := today.ExitsValue.Sub(today.EntriesValue)
	margin := decimal.Zero
	if !today.EntriesValue.IsZero() {
		margin = profit.Div(today.EntriesValue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &dto.DashboardStats{
		TotalProducts:       len(products.products),
		TotalProductTypes:   len(types.types),
		LowStockProducts:    lowStock,
		TodayPurchases:      today.Entries,
		TodaySales:          today.Exits,
		TodayBalance:        today.Balance,
		TodayPurchasesValue: today.EntriesValue,
		TodaySalesValue:     today.ExitsValue,
		TodayProfit:         profit.Round(2),
		TodayProfitMargin:   margin,
	}, nil
}

// Trend devuelve la serie por día de los últimos days días (hoy incluido),
// del más antiguo al más reciente. days <= 0 usa 7.
func (uc *DashboardUseCase) Trend(ctx context.Context, days int) ([]dto.TrendPoint, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	now := time.Now()
	firstDay := now.AddDate(0, 0, -(days - 1))
	from, _ := dayBounds(firstDay)
	_, to := dayBounds(now)

	movements, err := uc.movementRepo.List(repository.MovementFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	type bucket struct {
		entries int64
		exits   int64
	}
	buckets := make(map[string]*bucket, days)
	for _, m := range movements {
		key := m.CreatedAt.Format(dateKeyLayout)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		switch m.Type {
		case entity.MovementTypeEntry:
			b.entries += m.Quantity
		case entity.MovementTypeExit:
			b.exits += m.Quantity
		}
	}

	points := make([]dto.TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := firstDay.AddDate(0, 0, i)
		point := dto.TrendPoint{Date: day.Format(trendDateLabelLayout)}
		if b := buckets[day.Format(dateKeyLayout)]; b != nil {
			point.Entries = b.entries
			point.Exits = b.exits
			point.Balance = b.entries - b.exits
		}
		points = append(points, point)
	}
	return points, nil
}

// Recent devuelve los últimos limit movimientos con el nombre del producto.
// limit <= 0 usa 5.
func (uc *DashboardUseCase) Recent(ctx context.Context, limit int) ([]dto.RecentMovement, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	movements, err := uc.movementRepo.List(repository.MovementFilter{Limit: limit})
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	items := make([]dto.RecentMovement, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.RecentMovement{
			ID:        m.ID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Product:   dto.RecentMovementProduct{Name: names[m.ProductID]},
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}

// Distribution agrupa productos por tipo con porcentaje sobre el total.
// Con cero productos devuelve la lista vacía; los porcentajes suman 100 (± redondeo).
func (uc *DashboardUseCase) Distribution(ctx context.Context) ([]dto.TypeDistribution, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.TypeDistribution{}, nil
	}
	types, err := uc.typeRepo.ListAll()
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(types))
	for _, p := range products {
		counts[p.ProductTypeID]++
	}

	total := decimal.NewFromInt(int64(len(products)))
	hundred := decimal.NewFromInt(100)
	result := make([]dto.TypeDistribution, 0, len(types))
	for _, t := range types {
		count := counts[t.ID]
		if count == 0 {
			continue
		}
		result = append(result, dto.TypeDistribution{
			ID:         t.ID,
			Name:       t.Name,
			Value:      count,
			Percentage: decimal.NewFromInt(int64(count)).Div(total).Mul(hundred).Round(2),
		})
	}
	return result, nil
}

const dateKeyLayout = "2006-01-02"

// dayBounds devuelve los límites [00:00:00, 23:59:59.999...] del día de t en hora local.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
