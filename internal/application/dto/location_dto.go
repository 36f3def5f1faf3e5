package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación de stock.
// Code es opcional: vacío genera el siguiente LOC### desde la secuencia.
type CreateLocationRequest struct {
	Code   string `json:"code" validate:"omitempty,max=20"`
	Name   string `json:"name" validate:"required,min=1,max=200"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type   *string `json:"type"`
	Status *string `json:"status"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
