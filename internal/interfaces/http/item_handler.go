package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ItemHandler maneja las peticiones HTTP de items (protegido).
type ItemHandler struct {
	uc       *catalog.ItemUseCase
	reportUC *report.LowStockReportUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *catalog.ItemUseCase, reportUC *report.LowStockReportUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, reportUC: reportUC}
}

// List godoc
// @Summary      Listar items
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        search       query  string  false  "Búsqueda por nombre"
// @Param        low_stock    query  bool    false  "Solo items en stock bajo"
// @Success      200  {object}  dto.Response{data=[]dto.ItemResponse}
// @Router       /v1/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	f := repository.ItemFilter{
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
		LowStock:   c.QueryBool("low_stock"),
	}
	out, err := h.uc.List(f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Listado de items", out))
}

// LowStock godoc
// @Summary      Listar items en o bajo su stock mínimo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.ItemResponse}
// @Router       /v1/items/low-stock [get]
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Response{
		Success: true,
		Message: "Items con stock bajo",
		Data:    fiber.Map{"items": out, "count": len(out)},
	})
}

// LowStockReport godoc
// @Summary      Hoja de reposición en PDF (items en stock bajo)
// @Tags         items
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /v1/items/low-stock/report [get]
func (h *ItemHandler) LowStockReport(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.Generate(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-bajo.pdf"`)
	return c.Send(pdfBytes)
}

// GetByID godoc
// @Summary      Obtener item por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  dto.Response{data=dto.ItemResponse}
// @Failure      404  {object}  dto.Response
// @Router       /v1/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Detalle de item", out))
}

// Create godoc
// @Summary      Crear item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del item"
// @Success      201   {object}  dto.Response{data=dto.ItemResponse}
// @Failure      422   {object}  dto.Response
// @Router       /v1/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Item creado", out))
}

// Update godoc
// @Summary      Actualizar item (el stock no se modifica por esta vía)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del item"
// @Param        body  body  dto.UpdateItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.ItemResponse}
// @Failure      404   {object}  dto.Response
// @Failure      422   {object}  dto.Response
// @Router       /v1/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Item actualizado", out))
}

// Delete godoc
// @Summary      Eliminar item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /v1/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Item eliminado", nil))
}

// AdjustStock godoc
// @Summary      Ajuste directo de stock (in/out) sin registrar movimiento
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del item"
// @Param        body  body  dto.AdjustStockRequest  true  "Tipo y cantidad"
// @Success      200   {object}  dto.Response{data=dto.AdjustStockResponse}
// @Failure      400   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      422   {object}  dto.Response
// @Router       /v1/items/{id}/stock [patch]
func (h *ItemHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	out, err := h.uc.AdjustStock(c.UserContext(), c.Params("id"), in)
	if err != nil {
		// El ajuste directo reporta la insuficiencia como 400, con el saldo
		// actual y lo solicitado. Las salidas del ledger usan 422.
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
				Success: false,
				Message: "Stock insuficiente",
				Data: fiber.Map{
					"current_stock":      stockErr.Current,
					"requested_quantity": stockErr.Requested,
				},
			})
		}
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Stock actualizado", out))
}
