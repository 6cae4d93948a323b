package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// TokenRepository define el puerto de persistencia para tokens de acceso.
type TokenRepository interface {
	Create(token *entity.AuthToken) error
	// Exists indica si el token sigue vigente (no revocado).
	Exists(id string) (bool, error)
	// Delete revoca un token concreto (logout de la sesión actual).
	Delete(id string) error
}
