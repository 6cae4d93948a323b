package entity

import "time"

// AuthToken es un token de acceso personal revocable. El JWT emitido lleva el
// ID de esta fila; el middleware solo acepta el token si la fila existe, y
// logout borra únicamente la fila del token usado en la petición.
type AuthToken struct {
	ID        string
	UserID    string
	Name      string // ej. "api-token"
	CreatedAt time.Time
}
