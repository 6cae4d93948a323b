package entity

import "time"

// Category agrupa items del catálogo. El nombre es único.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
