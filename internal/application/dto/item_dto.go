package dto

import "time"

// CreateItemRequest entrada para crear un item. Stock es el saldo inicial;
// después de la creación solo lo mutan los movimientos y el ajuste directo.
type CreateItemRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	CategoryID string `json:"category_id" validate:"required"`
	Stock      *int   `json:"stock" validate:"required,min=0"`
	Unit       string `json:"unit" validate:"omitempty,max=50"`
	MinStock   *int   `json:"min_stock" validate:"required,min=0"`
}

// UpdateItemRequest entrada parcial para actualizar un item. No acepta stock:
// el saldo solo cambia vía movimientos o el endpoint de ajuste.
type UpdateItemRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=255"`
	CategoryID *string `json:"category_id"`
	Unit       *string `json:"unit" validate:"omitempty,max=50"`
	MinStock   *int    `json:"min_stock" validate:"omitempty,min=0"`
}

// AdjustStockRequest entrada del ajuste directo de stock (sin registro en el
// libro mayor). Type debe ser "in" u "out"; Quantity >= 1.
type AdjustStockRequest struct {
	Type     string `json:"type" validate:"required,oneof=in out"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// ItemResponse salida de un item. IsLowStock se recalcula en cada lectura.
type ItemResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	CategoryID string            `json:"category_id"`
	Stock      int               `json:"stock"`
	Unit       string            `json:"unit,omitempty"`
	MinStock   int               `json:"min_stock"`
	IsLowStock bool              `json:"is_low_stock"`
	Category   *CategoryResponse `json:"category,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// StockChange resumen del ajuste aplicado, para el cuerpo de la respuesta.
type StockChange struct {
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
	PreviousStock int    `json:"previous_stock"`
	CurrentStock  int    `json:"current_stock"`
}

// AdjustStockResponse salida del ajuste directo de stock.
type AdjustStockResponse struct {
	Item        ItemResponse `json:"item"`
	StockChange StockChange  `json:"stock_change"`
}
