package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ProductTypeHandler maneja las peticiones HTTP para ProductType.
type ProductTypeHandler struct {
	uc *usecase.ProductTypeUseCase
}

// NewProductTypeHandler construye el handler.
func NewProductTypeHandler(uc *usecase.ProductTypeUseCase) *ProductTypeHandler {
	return &ProductTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de producto
// @Tags         product-types
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductTypeRequest  true  "Datos del tipo"
// @Success      201   {object}  dto.ProductTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/product-types [post]
func (h *ProductTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de producto por ID
// @Tags         product-types
// @Produce      json
// @Param        id   path  int  true  "ID del tipo"
// @Success      200  {object}  dto.ProductTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-types/{id} [get]
func (h *ProductTypeHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(int64(id))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de producto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tipos de producto
// @Tags         product-types
// @Produce      json
// @Param        search  query  string  false  "Búsqueda por nombre o descripción"
// @Param        page    query  int     false  "Página (base 1)"  default(1)
// @Param        limit   query  int     false  "Tamaño de página"  default(10)
// @Success      200     {object}  dto.ProductTypeListResponse
// @Router       /api/product-types [get]
func (h *ProductTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("search"), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tipo de producto (parcial)
// @Tags         product-types
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del tipo"
// @Param        body  body  dto.UpdateProductTypeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product-types/{id} [patch]
func (h *ProductTypeHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return invalidID(c)
	}
	var in dto.UpdateProductTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(int64(id), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tipo de producto
// @Tags         product-types
// @Param        id  path  int  true  "ID del tipo"
// @Success      204  "Sin contenido"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-types/{id} [delete]
func (h *ProductTypeHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return invalidID(c)
	}
	if err := h.uc.Delete(int64(id)); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
