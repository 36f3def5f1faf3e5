package manufacturing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/manufacturing"
)

func TestCanTransition_CaminoFeliz(t *testing.T) {
	assert.True(t, manufacturing.CanTransition(entity.OrderStatusRequested, entity.OrderStatusReceived))
	assert.True(t, manufacturing.CanTransition(entity.OrderStatusReceived, entity.OrderStatusInProduction))
	assert.True(t, manufacturing.CanTransition(entity.OrderStatusInProduction, entity.OrderStatusCompleted))

	// requested puede saltar directo a in_production
	assert.True(t, manufacturing.CanTransition(entity.OrderStatusRequested, entity.OrderStatusInProduction))
}

func TestCanTransition_Reversas(t *testing.T) {
	// in_production puede retroceder a requested o received
	assert.True(t, manufacturing.CanTransition(entity.OrderStatusInProduction, entity.OrderStatusRequested))
	assert.True(t, manufacturing.CanTransition(entity.OrderStatusInProduction, entity.OrderStatusReceived))

	// pero received no retrocede a requested
	assert.False(t, manufacturing.CanTransition(entity.OrderStatusReceived, entity.OrderStatusRequested))
}

func TestCanTransition_Cancelacion(t *testing.T) {
	for _, from := range []string{
		entity.OrderStatusRequested,
		entity.OrderStatusReceived,
		entity.OrderStatusInProduction,
	} {
		assert.True(t, manufacturing.CanTransition(from, entity.OrderStatusCancelled),
			"cancelled debe ser alcanzable desde %s", from)
	}
}

func TestCanTransition_EstadosTerminales(t *testing.T) {
	for _, to := range []string{
		entity.OrderStatusRequested,
		entity.OrderStatusReceived,
		entity.OrderStatusInProduction,
		entity.OrderStatusCompleted,
		entity.OrderStatusCancelled,
	} {
		assert.False(t, manufacturing.CanTransition(entity.OrderStatusCompleted, to),
			"completed no debe transicionar a %s", to)
		assert.False(t, manufacturing.CanTransition(entity.OrderStatusCancelled, to),
			"cancelled no debe transicionar a %s", to)
	}
}

func TestCanTransition_SaltosIlegales(t *testing.T) {
	assert.False(t, manufacturing.CanTransition(entity.OrderStatusRequested, entity.OrderStatusCompleted),
		"completar requiere pasar por in_production")
	assert.False(t, manufacturing.CanTransition(entity.OrderStatusReceived, entity.OrderStatusCompleted))
	assert.False(t, manufacturing.CanTransition("desconocido", entity.OrderStatusReceived))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, manufacturing.IsTerminal(entity.OrderStatusCompleted))
	assert.True(t, manufacturing.IsTerminal(entity.OrderStatusCancelled))
	assert.False(t, manufacturing.IsTerminal(entity.OrderStatusRequested))
	assert.False(t, manufacturing.IsTerminal(entity.OrderStatusInProduction))
	assert.False(t, manufacturing.IsTerminal("desconocido"))
}

func TestReservesComponents(t *testing.T) {
	assert.True(t, manufacturing.ReservesComponents(entity.OrderStatusRequested))
	assert.True(t, manufacturing.ReservesComponents(entity.OrderStatusReceived))
	assert.True(t, manufacturing.ReservesComponents(entity.OrderStatusInProduction))
	assert.False(t, manufacturing.ReservesComponents(entity.OrderStatusCompleted))
	assert.False(t, manufacturing.ReservesComponents(entity.OrderStatusCancelled))
}
