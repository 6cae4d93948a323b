package dto

import "time"

// CreateMovementRequest entrada para crear una entrada o salida de stock.
// Date acepta "2006-01-02" o RFC 3339.
type CreateMovementRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
	Qty    int    `json:"qty" validate:"required,min=1"`
	Date   string `json:"date" validate:"required"`
	Note   string `json:"note"`
}

// UpdateMovementRequest entrada parcial para actualizar un movimiento.
// Solo qty, date y note son mutables; item_id y user_id son inmutables y si
// vienen en el payload la petición se rechaza con error de campo.
type UpdateMovementRequest struct {
	Qty    *int    `json:"qty" validate:"omitempty,min=1"`
	Date   *string `json:"date"`
	Note   *string `json:"note"`
	ItemID *string `json:"item_id"`
	UserID *string `json:"user_id"`
}

// MovementResponse salida de un movimiento con el item y el usuario que lo registró.
type MovementResponse struct {
	ID        string        `json:"id"`
	ItemID    string        `json:"item_id"`
	UserID    string        `json:"user_id"`
	Qty       int           `json:"qty"`
	Date      time.Time     `json:"date"`
	Note      string        `json:"note,omitempty"`
	Item      *ItemResponse `json:"item,omitempty"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
