package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para movimientos de
// stock. Entradas y salidas viven en tablas separadas (stock_entries,
// stock_exits); el kind selecciona la tabla.
type MovementRepository interface {
	Create(kind entity.MovementKind, m *entity.StockMovement) error
	GetByID(kind entity.MovementKind, id string) (*entity.StockMovement, error)
	// List devuelve los movimientos ordenados por fecha descendente.
	List(kind entity.MovementKind) ([]*entity.StockMovement, error)
	Update(kind entity.MovementKind, m *entity.StockMovement) error
	Delete(kind entity.MovementKind, id string) error
	// CountByItem cuenta entradas + salidas que referencian el item (guard de borrado).
	CountByItem(itemID string) (int, error)
}
