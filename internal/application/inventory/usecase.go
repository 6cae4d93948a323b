package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MovementUseCase registra, actualiza y elimina movimientos de stock
// (entradas y salidas) manteniendo el saldo del item de forma transaccional:
// el registro y la mutación del saldo van en la misma transacción, con
// bloqueo de fila (SELECT FOR UPDATE) sobre el item.
type MovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movRepo: movRepo, itemRepo: itemRepo, userRepo: userRepo}
}

// stockDelta devuelve el efecto de qty unidades sobre el saldo según el tipo:
// entrada suma, salida resta.
func stockDelta(kind entity.MovementKind, qty int) int {
	if kind == entity.MovementExit {
		return -qty
	}
	return qty
}

// parseDate acepta "2006-01-02" o RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// List devuelve los movimientos del tipo dado, ordenados por fecha
// descendente, con el item y el usuario que los registró.
func (uc *MovementUseCase) List(kind entity.MovementKind) ([]dto.MovementResponse, error) {
	movs, err := uc.movRepo.List(kind)
	if err != nil {
		return nil, err
	}
	items := map[string]*entity.Item{}
	users := map[string]*entity.User{}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		if _, ok := items[m.ItemID]; !ok {
			it, err := uc.itemRepo.GetByID(m.ItemID)
			if err != nil {
				return nil, err
			}
			items[m.ItemID] = it
		}
		if _, ok := users[m.UserID]; !ok {
			u, err := uc.userRepo.GetByID(m.UserID)
			if err != nil {
				return nil, err
			}
			users[m.UserID] = u
		}
		out = append(out, toMovementResponse(m, items[m.ItemID], users[m.UserID]))
	}
	return out, nil
}

// GetByID devuelve un movimiento con item y usuario.
func (uc *MovementUseCase) GetByID(kind entity.MovementKind, id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(kind, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(m.ItemID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(m.UserID)
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(m, item, user)
	return &resp, nil
}

// Create valida los campos, verifica que item y usuario existan y, dentro de
// una transacción, persiste el movimiento y aplica su efecto al saldo.
// Una salida con qty > stock se rechaza sin mutar nada.
func (uc *MovementUseCase) Create(ctx context.Context, kind entity.MovementKind, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	verr := &domain.ValidationError{}
	if in.ItemID == "" {
		verr.Add("item_id", "el item es requerido")
	}
	if in.UserID == "" {
		verr.Add("user_id", "el usuario es requerido")
	}
	if in.Qty < 1 {
		verr.Add("qty", "la cantidad debe ser un entero mayor o igual a 1")
	}
	var date time.Time
	if in.Date == "" {
		verr.Add("date", "la fecha es requerida")
	} else {
		var err error
		date, err = parseDate(in.Date)
		if err != nil {
			verr.Add("date", "la fecha no es válida")
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	// Referencias deben existir al momento de crear
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		verr.Add("user_id", "el usuario no existe")
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		verr.Add("item_id", "el item no existe")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ItemID:    in.ItemID,
		UserID:    in.UserID,
		Qty:       in.Qty,
		Date:      date,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, itemRepo repository.ItemRepository) error {
		// Bloquea la fila del item: el check de suficiencia y la escritura
		// del saldo van juntos bajo el mismo lock
		locked, err := itemRepo.GetByIDForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		newStock := locked.Stock + stockDelta(kind, in.Qty)
		if newStock < 0 {
			return &domain.InsufficientStockError{Current: locked.Stock, Requested: in.Qty}
		}
		if err := movRepo.Create(kind, mov); err != nil {
			return err
		}
		item = locked
		item.Stock = newStock
		return itemRepo.UpdateStock(in.ItemID, newStock)
	})
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(mov, item, user)
	return &resp, nil
}

// Update modifica qty, date y/o note de un movimiento. item_id y user_id son
// inmutables. Si qty cambia, el delta (nuevo - viejo) se aplica al saldo con
// check de suficiencia, todo en la misma transacción.
func (uc *MovementUseCase) Update(ctx context.Context, kind entity.MovementKind, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	verr := &domain.ValidationError{}
	if in.ItemID != nil {
		verr.Add("item_id", "el item de un movimiento no puede modificarse")
	}
	if in.UserID != nil {
		verr.Add("user_id", "el usuario de un movimiento no puede modificarse")
	}
	if in.Qty != nil && *in.Qty < 1 {
		verr.Add("qty", "la cantidad debe ser un entero mayor o igual a 1")
	}
	var date time.Time
	if in.Date != nil {
		var err error
		date, err = parseDate(*in.Date)
		if err != nil {
			verr.Add("date", "la fecha no es válida")
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	var mov *entity.StockMovement
	var item *entity.Item
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, itemRepo repository.ItemRepository) error {
		var err error
		mov, err = movRepo.GetByID(kind, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		item, err = itemRepo.GetByIDForUpdate(mov.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if in.Qty != nil && *in.Qty != mov.Qty {
			delta := *in.Qty - mov.Qty
			newStock := item.Stock + stockDelta(kind, delta)
			if newStock < 0 {
				requested := delta
				if requested < 0 {
					requested = -requested
				}
				return &domain.InsufficientStockError{Current: item.Stock, Requested: requested}
			}
			if err := itemRepo.UpdateStock(item.ID, newStock); err != nil {
				return err
			}
			item.Stock = newStock
			mov.Qty = *in.Qty
		}
		if in.Date != nil {
			mov.Date = date
		}
		if in.Note != nil {
			mov.Note = *in.Note
		}
		mov.UpdatedAt = time.Now()
		return movRepo.Update(kind, mov)
	})
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(mov.UserID)
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(mov, item, user)
	return &resp, nil
}

// Delete revierte el efecto del movimiento sobre el saldo y elimina el
// registro. Si revertir una entrada dejaría el stock negativo (el stock ya
// fue consumido), la eliminación se rechaza con el contexto del saldo.
func (uc *MovementUseCase) Delete(ctx context.Context, kind entity.MovementKind, id string) error {
	return uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, itemRepo repository.ItemRepository) error {
		mov, err := movRepo.GetByID(kind, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		item, err := itemRepo.GetByIDForUpdate(mov.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		newStock := item.Stock - stockDelta(kind, mov.Qty)
		if newStock < 0 {
			return &domain.InsufficientStockError{Current: item.Stock, Requested: mov.Qty}
		}
		if err := movRepo.Delete(kind, id); err != nil {
			return err
		}
		return itemRepo.UpdateStock(item.ID, newStock)
	})
}

func toMovementResponse(m *entity.StockMovement, item *entity.Item, user *entity.User) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		UserID:    m.UserID,
		Qty:       m.Qty,
		Date:      m.Date,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if item != nil {
		resp.Item = &dto.ItemResponse{
			ID:         item.ID,
			Name:       item.Name,
			CategoryID: item.CategoryID,
			Stock:      item.Stock,
			Unit:       item.Unit,
			MinStock:   item.MinStock,
			IsLowStock: item.IsLowStock(),
			CreatedAt:  item.CreatedAt,
			UpdatedAt:  item.UpdatedAt,
		}
	}
	if user != nil {
		resp.User = &dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		}
	}
	return resp
}
