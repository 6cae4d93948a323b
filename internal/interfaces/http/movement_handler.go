package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementHandler maneja entradas y salidas de stock. El mismo handler sirve
// ambos recursos: el kind decide el ledger sobre el que opera.
type MovementHandler struct {
	uc   *inventory.MovementUseCase
	kind entity.MovementKind
}

// NewMovementHandler construye el handler para un kind concreto.
func NewMovementHandler(uc *inventory.MovementUseCase, kind entity.MovementKind) *MovementHandler {
	return &MovementHandler{uc: uc, kind: kind}
}

// List godoc
// @Summary      Listar movimientos de stock (fecha descendente)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.MovementResponse}
// @Router       /v1/stock-entries [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(h.kind)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Listado de movimientos", out))
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.Response{data=dto.MovementResponse}
// @Failure      404  {object}  dto.Response
// @Router       /v1/stock-entries/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(h.kind, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Detalle de movimiento", out))
}

// Create godoc
// @Summary      Registrar movimiento (muta el stock del item en la misma transacción)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.Response{data=dto.MovementResponse}
// @Failure      422   {object}  dto.Response
// @Router       /v1/stock-entries [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), h.kind, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Movimiento registrado", out))
}

// Update godoc
// @Summary      Actualizar movimiento (aplica el delta de cantidad al stock)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.MovementResponse}
// @Failure      404   {object}  dto.Response
// @Failure      422   {object}  dto.Response
// @Router       /v1/stock-entries/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), h.kind, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Movimiento actualizado", out))
}

// Delete godoc
// @Summary      Eliminar movimiento (revierte su efecto sobre el stock)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      422  {object}  dto.Response
// @Router       /v1/stock-entries/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), h.kind, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Movimiento eliminado", nil))
}
