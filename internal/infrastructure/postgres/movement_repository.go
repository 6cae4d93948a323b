package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, item_id, user_id, qty, date, note, created_at, updated_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). Entradas y salidas comparten forma; el kind decide
// la tabla.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func tableFor(kind entity.MovementKind) string {
	if kind == entity.MovementExit {
		return "stock_exits"
	}
	return "stock_entries"
}

// Create persiste un movimiento en la tabla del kind.
func (r *MovementRepo) Create(kind entity.MovementKind, m *entity.StockMovement) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, item_id, user_id, qty, date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, tableFor(kind))
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, m.UserID, m.Qty, m.Date, m.Note, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", tableFor(kind), err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil sin error si no existe.
func (r *MovementRepo) GetByID(kind entity.MovementKind, id string) (*entity.StockMovement, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, movementColumns, tableFor(kind))
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ItemID, &m.UserID, &m.Qty, &m.Date, &m.Note, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", tableFor(kind), err)
	}
	return &m, nil
}

// List lista los movimientos ordenados por fecha descendente.
func (r *MovementRepo) List(kind entity.MovementKind) ([]*entity.StockMovement, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY date DESC`, movementColumns, tableFor(kind))
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", tableFor(kind), err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.UserID, &m.Qty, &m.Date, &m.Note, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Update actualiza qty, date y note de un movimiento.
func (r *MovementRepo) Update(kind entity.MovementKind, m *entity.StockMovement) error {
	query := fmt.Sprintf(`
		UPDATE %s SET qty = $2, date = $3, note = $4, updated_at = $5 WHERE id = $1`, tableFor(kind))
	_, err := r.q.Exec(context.Background(), query, m.ID, m.Qty, m.Date, m.Note, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update %s: %w", tableFor(kind), err)
	}
	return nil
}

// Delete elimina un movimiento. La reversión del saldo la hace el use case en la misma tx.
func (r *MovementRepo) Delete(kind entity.MovementKind, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableFor(kind))
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", tableFor(kind), err)
	}
	return nil
}

// CountByItem cuenta entradas + salidas que referencian el item.
func (r *MovementRepo) CountByItem(itemID string) (int, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM stock_entries WHERE item_id = $1)
		     + (SELECT COUNT(*) FROM stock_exits   WHERE item_id = $1)`
	var n int
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements by item: %w", err)
	}
	return n, nil
}
