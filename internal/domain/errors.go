package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// ValidationError agrupa errores de validación por campo, como los devuelve la API
// en el sobre de respuesta ({"errors": {"campo": ["mensaje", ...]}}).
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string { return "error de validación" }

// Add agrega un mensaje de error para un campo.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors indica si hay al menos un campo con error.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// InsufficientStockError indica que una salida o ajuste excede el stock disponible.
// Lleva el stock actual y la cantidad solicitada para el cuerpo de la respuesta.
type InsufficientStockError struct {
	Current   int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Current, e.Requested)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// CategoryInUseError indica que la categoría no puede eliminarse porque aún tiene items.
type CategoryInUseError struct {
	Name       string
	ItemsCount int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("la categoría '%s' no puede eliminarse: tiene %d item(s)", e.Name, e.ItemsCount)
}

// ItemInUseError indica que el item no puede eliminarse porque tiene movimientos registrados.
type ItemInUseError struct {
	Name           string
	MovementsCount int
}

func (e *ItemInUseError) Error() string {
	return fmt.Sprintf("el item '%s' no puede eliminarse: tiene %d movimiento(s)", e.Name, e.MovementsCount)
}
