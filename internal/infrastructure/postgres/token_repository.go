package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo implementación del puerto TokenRepository sobre PostgreSQL.
type TokenRepo struct {
	q Querier
}

// NewTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

// Create persiste la fila del token emitido.
func (r *TokenRepo) Create(token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, token.ID, token.UserID, token.Name, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert auth token: %w", err)
	}
	return nil
}

// Exists indica si el token sigue vigente (la fila no fue borrada por logout).
func (r *TokenRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM auth_tokens WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check auth token: %w", err)
	}
	return exists, nil
}

// Delete revoca un token concreto.
func (r *TokenRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM auth_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete auth token: %w", err)
	}
	return nil
}
