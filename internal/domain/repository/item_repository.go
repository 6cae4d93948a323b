package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ItemFilter filtros opcionales para listar items (reemplaza el encadenado de
// scopes del sistema anterior). El listado siempre ordena por nombre ascendente.
type ItemFilter struct {
	CategoryID string
	Search     string // substring sobre name
	LowStock   bool   // stock <= min_stock
}

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetByIDForUpdate obtiene el item bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetByIDForUpdate(id string) (*entity.Item, error)
	GetByName(name string) (*entity.Item, error)
	Update(item *entity.Item) error
	// UpdateStock escribe el nuevo saldo de stock del item.
	UpdateStock(id string, stock int) error
	Delete(id string) error
	List(filter ItemFilter) ([]*entity.Item, error)
	ListByCategory(categoryID string) ([]*entity.Item, error)
}
