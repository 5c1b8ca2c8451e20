package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductTypeUseCase casos de uso CRUD para tipos de producto.
type ProductTypeUseCase struct {
	typeRepo    repository.ProductTypeRepository
	productRepo repository.ProductRepository
}

// NewProductTypeUseCase construye el caso de uso.
func NewProductTypeUseCase(typeRepo repository.ProductTypeRepository, productRepo repository.ProductRepository) *ProductTypeUseCase {
	return &ProductTypeUseCase{typeRepo: typeRepo, productRepo: productRepo}
}

// Create crea un tipo de producto.
func (uc *ProductTypeUseCase) Create(in dto.CreateProductTypeRequest) (*dto.ProductTypeResponse, error) {
	v := &domain.ValidationError{}
	validateTypeName(v, in.Name)
	validateDescription(v, in.Description)
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.ProductType{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.typeRepo.Create(t); err != nil {
		return nil, err
	}
	return toProductTypeResponse(t), nil
}

// GetByID obtiene un tipo por ID. Devuelve nil si no existe.
func (uc *ProductTypeUseCase) GetByID(id int64) (*dto.ProductTypeResponse, error) {
	t, err := uc.typeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return toProductTypeResponse(t), nil
}

// Update aplica un PATCH parcial sobre un tipo de producto.
func (uc *ProductTypeUseCase) Update(id int64, in dto.UpdateProductTypeRequest) (*dto.ProductTypeResponse, error) {
	t, err := uc.typeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	v := &domain.ValidationError{}
	if in.Name != nil {
		validateTypeName(v, *in.Name)
	}
	if in.Description != nil {
		validateDescription(v, *in.Description)
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	t.UpdatedAt = time.Now()
	if err := uc.typeRepo.Update(t); err != nil {
		return nil, err
	}
	return toProductTypeResponse(t), nil
}

// List lista tipos con búsqueda y paginación (page base 1).
func (uc *ProductTypeUseCase) List(search string, page, limit int) (*dto.ProductTypeListResponse, error) {
	page, limit = normalizePage(page, limit)
	list, total, err := uc.typeRepo.List(search, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductTypeResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toProductTypeResponse(t))
	}
	return &dto.ProductTypeListResponse{
		Data:       items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// Delete elimina un tipo si ningún producto lo referencia; si no, error de validación.
// La integridad referencial se verifica en el servidor, no solo en la UI.
func (uc *ProductTypeUseCase) Delete(id int64) error {
	t, err := uc.typeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountByType(id)
	if err != nil {
		return err
	}
	if count > 0 {
		v := &domain.ValidationError{}
		v.Add("id", fmt.Sprintf("no se puede eliminar: %d producto(s) usan este tipo", count))
		return v
	}
	return uc.typeRepo.Delete(id)
}

func validateTypeName(v *domain.ValidationError, name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		v.Add("name", "el nombre es obligatorio")
	} else if len([]rune(name)) > maxNameLen {
		v.Add("name", fmt.Sprintf("el nombre no puede superar %d caracteres", maxNameLen))
	}
}

func validateDescription(v *domain.ValidationError, description string) {
	if len([]rune(description)) > maxDescriptionLen {
		v.Add("description", fmt.Sprintf("la descripción no puede superar %d caracteres", maxDescriptionLen))
	}
}

func toProductTypeResponse(t *entity.ProductType) *dto.ProductTypeResponse {
	if t == nil {
		return nil
	}
	return &dto.ProductTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
