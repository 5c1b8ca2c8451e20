package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
)

// DashboardHandler expone los agregados del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas generales del día
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStats
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// StockTrend godoc
// @Summary      Serie diaria de entradas y salidas
// @Tags         dashboard
// @Produce      json
// @Param        days  query  int  false  "Días hacia atrás incluyendo hoy"  default(7)
// @Success      200   {array}  dto.TrendPoint
// @Router       /api/dashboard/stock-trend [get]
func (h *DashboardHandler) StockTrend(c *fiber.Ctx) error {
	out, err := h.uc.Trend(c.Context(), c.QueryInt("days", 7))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RecentMovements godoc
// @Summary      Últimos movimientos registrados
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Cantidad máxima"  default(5)
// @Success      200    {array}  dto.RecentMovement
// @Router       /api/dashboard/recent-movements [get]
func (h *DashboardHandler) RecentMovements(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.Context(), c.QueryInt("limit", 5))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// TypeDistribution godoc
// @Summary      Distribución de productos por tipo
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.TypeDistribution
// @Router       /api/dashboard/product-type-distribution [get]
func (h *DashboardHandler) TypeDistribution(c *fiber.Ctx) error {
	out, err := h.uc.Distribution(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
