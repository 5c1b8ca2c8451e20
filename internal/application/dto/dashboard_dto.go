package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats respuesta de GET /api/dashboard/stats.
// Las entradas del día se leen como compras y las salidas como ventas:
// compras valoradas a costPrice, ventas a salePrice (precio vigente).
type DashboardStats struct {
	TotalProducts       int             `json:"totalProducts"`
	TotalProductTypes   int             `json:"totalProductTypes"`
	LowStockProducts    int             `json:"lowStockProducts"`
	TodayPurchases      int64           `json:"todayPurchases"` // unidades entradas hoy
	TodaySales          int64           `json:"todaySales"`     // unidades salidas hoy
	TodayBalance        int64           `json:"todayBalance"`
	TodayPurchasesValue decimal.Decimal `json:"todayPurchasesValue"`
	TodaySalesValue     decimal.Decimal `json:"todaySalesValue"`
	TodayProfit         decimal.Decimal `json:"todayProfit"`       // salesValue − purchasesValue
	TodayProfitMargin   decimal.Decimal `json:"todayProfitMargin"` // profit / purchasesValue × 100
}

// TrendPoint un día de la serie de GET /api/dashboard/stock-trend.
type TrendPoint struct {
	Date    string `json:"date"` // dd/MM
	Entries int64  `json:"entries"`
	Exits   int64  `json:"exits"`
	Balance int64  `json:"balance"`
}

// TypeDistribution un tipo en GET /api/dashboard/product-type-distribution.
type TypeDistribution struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Value      int             `json:"value"`      // productos de este tipo
	Percentage decimal.Decimal `json:"percentage"` // value / totalProducts × 100
}

// RecentMovement ítem de GET /api/dashboard/recent-movements.
type RecentMovement struct {
	ID        int64                 `json:"id"`
	Type      string                `json:"type"`
	Quantity  int64                 `json:"quantity"`
	Product   RecentMovementProduct `json:"product"`
	CreatedAt time.Time             `json:"createdAt"`
}

// RecentMovementProduct nombre del producto del movimiento reciente.
type RecentMovementProduct struct {
	Name string `json:"name"`
}
