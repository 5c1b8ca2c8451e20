package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500

	dateLayout = "2006-01-02"

	lossWarning = "el precio de venta es menor que el costo: este producto se vende con pérdida"
)

// ProductUseCase casos de uso CRUD para productos. Quantity nunca se edita
// directamente: en el alta se respalda con un movimiento de entrada inicial y
// después solo la muta el motor de stock.
type ProductUseCase struct {
	txRunner    ledger.TxRunner
	productRepo repository.ProductRepository
	typeRepo    repository.ProductTypeRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner ledger.TxRunner,
	productRepo repository.ProductRepository,
	typeRepo repository.ProductTypeRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo, typeRepo: typeRepo}
}

// Create valida y crea un producto. Si quantity > 0 registra además la entrada
// inicial en el libro, dentro de la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	v := &domain.ValidationError{}
	validateTypeName(v, in.Name)
	validateDescription(v, in.Description)
	if !in.CostPrice.GreaterThan(decimal.Zero) {
		v.Add("costPrice", "el precio de costo debe ser mayor que cero")
	}
	if !in.SalePrice.GreaterThan(decimal.Zero) {
		v.Add("salePrice", "el precio de venta debe ser mayor que cero")
	}
	if in.Quantity < 0 {
		v.Add("quantity", "la cantidad no puede ser negativa")
	}
	var productType *entity.ProductType
	if in.ProductTypeID <= 0 {
		v.Add("productTypeId", "el tipo de producto es obligatorio")
	} else {
		t, err := uc.typeRepo.GetByID(in.ProductTypeID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			v.Add("productTypeId", "el tipo de producto no existe")
		}
		productType = t
	}
	expiration, ok := parseExpiration(v, in.ExpirationDate)
	if !ok {
		expiration = nil
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		CostPrice:      in.CostPrice,
		SalePrice:      in.SalePrice,
		Quantity:       in.Quantity,
		Supplier:       in.Supplier,
		ExpirationDate: expiration,
		ProductTypeID:  in.ProductTypeID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if product.Quantity > 0 {
			return movementRepo.Create(ledger.OpeningEntry(product.ID, product.Quantity, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, productType), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	productType, err := uc.typeRepo.GetByID(product.ProductTypeID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, productType), nil
}

// Update aplica un PATCH parcial. Editar quantity se rechaza siempre: el stock
// es derivado del libro de movimientos. Un salePrice menor que el costo se
// acepta pero la respuesta lleva el aviso de pérdida.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	v := &domain.ValidationError{}
	if in.Quantity != nil {
		v.Add("quantity", "la cantidad no se edita directamente: registre un movimiento de stock")
	}
	if in.Name != nil {
		validateTypeName(v, *in.Name)
	}
	if in.Description != nil {
		validateDescription(v, *in.Description)
	}
	if in.CostPrice != nil && !in.CostPrice.GreaterThan(decimal.Zero) {
		v.Add("costPrice", "el precio de costo debe ser mayor que cero")
	}
	if in.SalePrice != nil && !in.SalePrice.GreaterThan(decimal.Zero) {
		v.Add("salePrice", "el precio de venta debe ser mayor que cero")
	}
	var newType *entity.ProductType
	if in.ProductTypeID != nil {
		if *in.ProductTypeID <= 0 {
			v.Add("productTypeId", "el tipo de producto es obligatorio")
		} else {
			t, err := uc.typeRepo.GetByID(*in.ProductTypeID)
			if err != nil {
				return nil, err
			}
			if t == nil {
				v.Add("productTypeId", "el tipo de producto no existe")
			}
			newType = t
		}
	}
	var newExpiration *time.Time
	clearExpiration := false
	if in.ExpirationDate != nil {
		if *in.ExpirationDate == "" {
			clearExpiration = true
		} else {
			exp, ok := parseExpiration(v, in.ExpirationDate)
			if ok {
				newExpiration = exp
			}
		}
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if clearExpiration {
		product.ExpirationDate = nil
	} else if newExpiration != nil {
		product.ExpirationDate = newExpiration
	}
	if in.ProductTypeID != nil {
		product.ProductTypeID = *in.ProductTypeID
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}

	productType := newType
	if productType == nil {
		productType, err = uc.typeRepo.GetByID(product.ProductTypeID)
		if err != nil {
			return nil, err
		}
	}
	return toProductResponse(product, productType), nil
}

// List lista productos con búsqueda (insensible a acentos), filtro por tipo y
// paginación (page base 1).
func (uc *ProductUseCase) List(search string, productTypeID int64, page, limit int) (*dto.ProductListResponse, error) {
	page, limit = normalizePage(page, limit)
	list, total, err := uc.productRepo.List(repository.ProductFilter{
		Search:        search,
		ProductTypeID: productTypeID,
		Limit:         limit,
		Offset:        (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	types, err := uc.typeRepo.ListAll()
	if err != nil {
		return nil, err
	}
	typeIndex := make(map[int64]*entity.ProductType, len(types))
	for _, t := range types {
		typeIndex[t.ID] = t
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, typeIndex[p.ProductTypeID]))
	}
	return &dto.ProductListResponse{
		Data:       items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// Delete elimina el producto y todos sus movimientos en una sola transacción
// para no dejar asientos huérfanos en el libro.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := movementRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
}

// parseExpiration valida el formato y que la fecha no sea anterior a hoy.
// Devuelve ok=false si el valor venía pero es inválido.
func parseExpiration(v *domain.ValidationError, raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	parsed, err := time.ParseInLocation(dateLayout, *raw, time.Local)
	if err != nil {
		v.Add("expirationDate", fmt.Sprintf("la fecha de vencimiento debe tener formato %s", dateLayout))
		return nil, false
	}
	today := time.Now()
	startOfToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	if parsed.Before(startOfToday) {
		v.Add("expirationDate", "la fecha de vencimiento no puede ser anterior a hoy")
		return nil, false
	}
	return &parsed, true
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func toProductResponse(p *entity.Product, t *entity.ProductType) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CostPrice:     p.CostPrice,
		SalePrice:     p.SalePrice,
		Quantity:      p.Quantity,
		Supplier:      p.Supplier,
		ProductTypeID: p.ProductTypeID,
		ProductType:   toProductTypeResponse(t),
		ProfitValue:   p.ProfitValue(),
		ProfitMargin:  p.ProfitMargin(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.ExpirationDate != nil {
		formatted := p.ExpirationDate.Format(dateLayout)
		resp.ExpirationDate = &formatted
	}
	if p.SellsAtLoss() {
		resp.Warnings = append(resp.Warnings, lossWarning)
	}
	return resp
}
