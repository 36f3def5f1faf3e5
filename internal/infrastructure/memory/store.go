// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa en los tests de casos de uso y como backend efímero para
// demos sin PostgreSQL. Un Store comparte todo el estado; los "repositorios"
// son vistas sobre él.
package memory

import (
	"fmt"
	"sync"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// Store contiene todo el estado en memoria bajo un solo mutex: las corridas
// transaccionales serializan sobre él, igual que una transacción de BD
// serializa sobre las filas bloqueadas.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex // serializa corridas transaccionales completas

	locations map[string]*entity.StockLocation
	catalog   map[string]*entity.CatalogItem // por ID
	ledger    map[string]*entity.LocationInventory
	movements map[string]*entity.StockMovement
	boms      map[string]*entity.BOM
	orders    map[string]*entity.ProductionOrder
	suppliers map[string]*entity.Supplier

	// orden de inserción, para listados estables
	locationOrder []string
	catalogOrder  []string
	movementOrder []string
	bomOrder      []string
	orderOrder    []string
	supplierOrder []string

	locationSeq int
	skuSeq      int
	movementSeq int
	workSeq     int
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		locations: map[string]*entity.StockLocation{},
		catalog:   map[string]*entity.CatalogItem{},
		ledger:    map[string]*entity.LocationInventory{},
		movements: map[string]*entity.StockMovement{},
		boms:      map[string]*entity.BOM{},
		orders:    map[string]*entity.ProductionOrder{},
		suppliers: map[string]*entity.Supplier{},
	}
}

func ledgerKey(locationID, sku string) string {
	return locationID + "|" + sku
}

func (s *Store) nextLocationCode() string {
	s.locationSeq++
	return fmt.Sprintf("LOC%03d", s.locationSeq)
}

func (s *Store) nextSKU() string {
	s.skuSeq++
	return fmt.Sprintf("SKU%04d", s.skuSeq)
}

func (s *Store) nextMovementID() string {
	s.movementSeq++
	return fmt.Sprintf("MOV%04d", s.movementSeq)
}

func (s *Store) nextWorkOrder() string {
	s.workSeq++
	return fmt.Sprintf("WO-%04d", s.workSeq)
}

func removeFromOrder(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
