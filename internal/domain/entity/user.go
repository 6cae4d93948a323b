package entity

import "time"

// User representa un usuario del sistema (registra movimientos de stock).
type User struct {
	ID           string
	Name         string
	Email        string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
