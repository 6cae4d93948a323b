package entity

import "time"

// Item representa un artículo del inventario. Stock es el saldo vigente del
// libro mayor: después de la creación solo lo mutan los movimientos
// (entradas/salidas) y el endpoint de ajuste directo, nunca un update normal.
type Item struct {
	ID         string
	Name       string // único
	CategoryID string
	Stock      int // >= 0 siempre
	Unit       string
	MinStock   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsLowStock indica si el item está en o bajo su mínimo. Se calcula en cada
// lectura, nunca se persiste.
func (i *Item) IsLowStock() bool { return i.Stock <= i.MinStock }
