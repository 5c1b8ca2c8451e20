// Package report genera el informe PDF de movimientos de stock de un período.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MovementsReportGenerator puerto de render del informe (implementado con Maroto).
type MovementsReportGenerator interface {
	GenerateMovementsReport(ctx context.Context, data ReportData) ([]byte, error)
}

// ReportData todo lo que necesita el render: filas ya resueltas y el resumen.
type ReportData struct {
	Title       string
	From        *time.Time
	To          *time.Time
	GeneratedAt time.Time
	Rows        []ReportRow
	Summary     dto.MovementSummary
}

// ReportRow una línea del informe. UnitValue usa el precio vigente del producto:
// costo para entradas, venta para salidas.
type ReportRow struct {
	Date        time.Time
	ProductName string
	Type        string
	Quantity    int64
	UnitValue   decimal.Decimal
	TotalValue  decimal.Decimal
	Notes       string
}

// UseCase arma los datos del informe y delega el render al generador.
type UseCase struct {
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
	generator    MovementsReportGenerator
}

// NewUseCase construye el caso de uso del informe.
func NewUseCase(
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	generator MovementsReportGenerator,
) *UseCase {
	return &UseCase{movementRepo: movementRepo, productRepo: productRepo, generator: generator}
}

// GenerateMovements produce el PDF de movimientos del rango dado (ambos opcionales).
func (uc *UseCase) GenerateMovements(ctx context.Context, from, to *time.Time) ([]byte, error) {
	movements, err := uc.movementRepo.List(repository.MovementFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	index := make(map[int64]*entity.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}

	rows := make([]ReportRow, 0, len(movements))
	for _, m := range movements {
		row := ReportRow{
			Date:     m.CreatedAt,
			Type:     m.Type,
			Quantity: m.Quantity,
			Notes:    m.Notes,
		}
		if p := index[m.ProductID]; p != nil {
			row.ProductName = p.Name
			if m.Type == entity.MovementTypeEntry {
				row.UnitValue = p.CostPrice
			} else {
				row.UnitValue = p.SalePrice
			}
			row.TotalValue = row.UnitValue.Mul(decimal.NewFromInt(m.Quantity))
		}
		rows = append(rows, row)
	}

	return uc.generator.GenerateMovementsReport(ctx, ReportData{
		Title:       "Informe de movimientos de stock",
		From:        from,
		To:          to,
		GeneratedAt: time.Now(),
		Rows:        rows,
		Summary:     ledger.Summarize(movements, index),
	})
}
