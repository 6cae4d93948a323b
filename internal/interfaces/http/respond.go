package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// respondError traduce errores de dominio al sobre uniforme y su status HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FailValidation(vErr.Fields))
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Response{
			Success: false,
			Message: "Stock insuficiente",
			Data: fiber.Map{
				"current_stock":      stockErr.Current,
				"requested_quantity": stockErr.Requested,
			},
		})
	}

	var catErr *domain.CategoryInUseError
	if errors.As(err, &catErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
			Success: false,
			Message: "No se puede eliminar la categoría porque tiene items asociados",
			Data:    fiber.Map{"items_count": catErr.ItemsCount},
		})
	}

	var itemErr *domain.ItemInUseError
	if errors.As(err, &itemErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
			Success: false,
			Message: "No se puede eliminar el item porque tiene movimientos registrados",
			Data:    fiber.Map{"movements_count": itemErr.MovementsCount},
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Recurso no encontrado", err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Credenciales inválidas", ""))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Petición inválida", err.Error()))
	// La unicidad se valida en el use case, pero una carrera puede llegar
	// hasta el constraint de la base
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail("Error de validación", err.Error()))
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error interno del servidor", ""))
}

// respondInvalidBody responde 400 cuando el cuerpo JSON no se puede parsear.
func respondInvalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Cuerpo de la petición inválido", "se esperaba JSON válido"))
}
