package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/report"
)

// ReportHandler genera informes PDF (protegido con Bearer Token).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Movements godoc
// @Summary      Informe PDF de movimientos de stock
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        startDate  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-movements.pdf [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	from, ok := parseQueryDate(c, "startDate", false)
	if !ok {
		return invalidDate(c, "startDate")
	}
	to, ok := parseQueryDate(c, "endDate", true)
	if !ok {
		return invalidDate(c, "endDate")
	}
	pdf, err := h.uc.GenerateMovements(c.Context(), from, to)
	if err != nil {
		return handleError(c, err)
	}
	filename := fmt.Sprintf("movimientos-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdf)
}
