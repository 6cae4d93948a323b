package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategoryFilter filtros opcionales para listar categorías.
// El listado siempre ordena por nombre ascendente.
type CategoryFilter struct {
	Search string // substring sobre name
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
	List(filter CategoryFilter) ([]*entity.Category, error)
	// CountItems devuelve cuántos items referencian la categoría (guard de borrado).
	CountItems(categoryID string) (int, error)
	// CountItemsGrouped devuelve el conteo de items por categoría en una sola consulta.
	CountItemsGrouped() (map[string]int, error)
}
