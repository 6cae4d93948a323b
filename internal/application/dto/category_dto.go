package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ListCategoriesFilter opciones del listado de categorías.
type ListCategoriesFilter struct {
	Search         string
	WithItems      bool
	WithItemsCount bool
}

// CategoryResponse salida de una categoría. ItemsCount e Items solo se
// incluyen cuando el listado los pide (with_items_count / with_items).
type CategoryResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ItemsCount *int           `json:"items_count,omitempty"`
	Items      []ItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
