package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrConstraintViolation = errors.New("eliminación bloqueada por referencias")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrStaleOrderState     = errors.New("la orden fue modificada concurrentemente")
	ErrConfirmationNeeded  = errors.New("la operación requiere confirmación explícita")
)

// LocationScopeAggregate identifica faltantes evaluados sobre el agregado del
// catálogo (todas las ubicaciones), no sobre una ubicación puntual.
const LocationScopeAggregate = "catálogo"

// InsufficientStockError identifica el SKU, el alcance (ubicación o agregado)
// y el faltante numérico. Satisface errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	SKU        string
	LocationID string
	Available  decimal.Decimal
	Required   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	scope := e.LocationID
	if scope == "" {
		scope = LocationScopeAggregate
	}
	return fmt.Sprintf("stock insuficiente para %s en %s: disponible %s, requerido %s",
		e.SKU, scope, e.Available.String(), e.Required.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Shortfall devuelve el faltante (requerido − disponible).
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Available)
}

// StaleOrderError señala que el estado leído dentro de la transacción difiere
// del que el llamador asumía (guardia optimista contra doble aplicación).
// Satisface errors.Is(err, ErrStaleOrderState).
type StaleOrderError struct {
	OrderID  string
	Expected string
	Actual   string
}

func (e *StaleOrderError) Error() string {
	return fmt.Sprintf("orden %s modificada concurrentemente: se esperaba %s, está en %s",
		e.OrderID, e.Expected, e.Actual)
}

func (e *StaleOrderError) Unwrap() error { return ErrStaleOrderState }

// InvalidTransitionError identifica la transición rechazada.
// Satisface errors.Is(err, ErrInvalidTransition).
type InvalidTransitionError struct {
	OrderID string
	From    string
	To      string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("orden %s: transición %s → %s no permitida", e.OrderID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
