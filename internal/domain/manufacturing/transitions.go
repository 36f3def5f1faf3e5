package manufacturing

import "github.com/jhoicas/manufactura-api/internal/domain/entity"

// allowedTransitions enumera las transiciones legales del ciclo de una orden:
// requested → received → in_production → completed; cancelled alcanzable desde
// cualquier estado no terminal; in_production puede retroceder a requested o
// received (reversa de una producción en curso). completed y cancelled son
// terminales.
var allowedTransitions = map[string][]string{
	entity.OrderStatusRequested: {
		entity.OrderStatusReceived,
		entity.OrderStatusInProduction,
		entity.OrderStatusCancelled,
	},
	entity.OrderStatusReceived: {
		entity.OrderStatusInProduction,
		entity.OrderStatusCancelled,
	},
	entity.OrderStatusInProduction: {
		entity.OrderStatusCompleted,
		entity.OrderStatusRequested,
		entity.OrderStatusReceived,
		entity.OrderStatusCancelled,
	},
	entity.OrderStatusCompleted: {},
	entity.OrderStatusCancelled: {},
}

// CanTransition responde si el cambio de estado from → to está permitido.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal responde si el estado no admite transiciones salientes.
func IsTerminal(status string) bool {
	return len(allowedTransitions[status]) == 0 && (status == entity.OrderStatusCompleted || status == entity.OrderStatusCancelled)
}

// ReservesComponents responde si un estado mantiene los componentes de la BOM
// reservados. La entrada a in_production NO re-reserva lo que requested o
// received ya reservaron: la reserva es idempotente por orden.
func ReservesComponents(status string) bool {
	switch status {
	case entity.OrderStatusRequested, entity.OrderStatusReceived, entity.OrderStatusInProduction:
		return true
	default:
		return false
	}
}
