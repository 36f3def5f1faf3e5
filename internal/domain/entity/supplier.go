package entity

import "time"

// Supplier es un proveedor de materiales referenciado por los ítems del catálogo.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
