package entity

import "time"

// MovementKind distingue entradas (suman stock) de salidas (restan stock).
type MovementKind string

const (
	MovementEntry MovementKind = "entry"
	MovementExit  MovementKind = "exit"
)

// StockMovement es un registro del libro mayor: una entrada o salida de stock
// de un item, con el usuario que la registró. Entradas y salidas comparten
// forma; el tipo (tabla) lo decide MovementKind.
// Qty siempre es >= 1; el signo lo aporta el tipo de movimiento.
type StockMovement struct {
	ID        string
	ItemID    string
	UserID    string
	Qty       int
	Date      time.Time
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
