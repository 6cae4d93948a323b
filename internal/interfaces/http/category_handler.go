package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// CategoryHandler maneja las peticiones HTTP de categorías (protegido).
type CategoryHandler struct {
	uc *catalog.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *catalog.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        search            query  string  false  "Búsqueda por nombre"
// @Param        with_items        query  bool    false  "Incluir items anidados"
// @Param        with_items_count  query  bool    false  "Incluir conteo de items"
// @Success      200  {object}  dto.Response{data=[]dto.CategoryResponse}
// @Router       /v1/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	f := dto.ListCategoriesFilter{
		Search:         c.Query("search"),
		WithItems:      c.QueryBool("with_items"),
		WithItemsCount: c.QueryBool("with_items_count"),
	}
	out, err := h.uc.List(f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Listado de categorías", out))
}

// ListWithItems godoc
// @Summary      Listar categorías con sus items
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.CategoryResponse}
// @Router       /v1/categories/with-items [get]
func (h *CategoryHandler) ListWithItems(c *fiber.Ctx) error {
	out, err := h.uc.List(dto.ListCategoriesFilter{WithItems: true})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Listado de categorías con items", out))
}

// ListWithCount godoc
// @Summary      Listar categorías con conteo de items
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.CategoryResponse}
// @Router       /v1/categories/with-count [get]
func (h *CategoryHandler) ListWithCount(c *fiber.Ctx) error {
	out, err := h.uc.List(dto.ListCategoriesFilter{WithItemsCount: true})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Listado de categorías con conteo", out))
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID de la categoría"
// @Param        with_items  query  bool    false  "Incluir items anidados"
// @Success      200  {object}  dto.Response{data=dto.CategoryResponse}
// @Failure      404  {object}  dto.Response
// @Router       /v1/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), c.QueryBool("with_items"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Detalle de categoría", out))
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.Response{data=dto.CategoryResponse}
// @Failure      422   {object}  dto.Response
// @Router       /v1/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Categoría creada", out))
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.CategoryResponse}
// @Failure      404   {object}  dto.Response
// @Failure      422   {object}  dto.Response
// @Router       /v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Categoría actualizada", out))
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Categoría eliminada", nil))
}
