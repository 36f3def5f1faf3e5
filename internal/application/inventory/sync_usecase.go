package inventory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/manufactura-api/internal/domain/repository"
	"github.com/jhoicas/manufactura-api/pkg/logger"
)

// syncKey es el nombre fijo del recurso bajo single-flight: todos los
// disparos concurrentes colapsan en la única corrida en vuelo.
const syncKey = "location-coverage"

// SyncResult resumen de una corrida del sincronizador.
type SyncResult struct {
	LocationsScanned int      `json:"locationsScanned"`
	RowsCreated      int      `json:"rowsCreated"`
	SkippedLocations []string `json:"skippedLocations,omitempty"`
	Ran              bool     `json:"ran"`
}

// SyncUseCase garantiza que cada SKU del catálogo tenga una fila (posiblemente
// en cero) del libro en cada ubicación conocida, para que las lecturas nunca
// fabriquen filas sobre la marcha. Corre como máximo una vez por intervalo
// salvo que se fuerce; los llamadores que esperan mientras hay una corrida en
// vuelo observan su mismo resultado en lugar de disparar otra pasada.
type SyncUseCase struct {
	txRunner  TxRunner
	locations repository.LocationRepository
	catalog   repository.CatalogItemRepository
	log       *logger.Logger
	interval  time.Duration

	group   singleflight.Group
	mu      sync.Mutex
	lastRun time.Time
}

// NewSyncUseCase construye el sincronizador. interval ≤ 0 usa 10 minutos.
func NewSyncUseCase(txRunner TxRunner, locations repository.LocationRepository, catalog repository.CatalogItemRepository, log *logger.Logger, interval time.Duration) *SyncUseCase {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SyncUseCase{
		txRunner:  txRunner,
		locations: locations,
		catalog:   catalog,
		log:       log,
		interval:  interval,
	}
}

// Sync ejecuta la reconciliación de cobertura. Con force=false respeta el
// intervalo mínimo entre corridas; los disparos concurrentes comparten la
// corrida en vuelo vía single-flight.
func (uc *SyncUseCase) Sync(ctx context.Context, force bool) (SyncResult, error) {
	v, err, _ := uc.group.Do(syncKey, func() (interface{}, error) {
		uc.mu.Lock()
		if !force && time.Since(uc.lastRun) < uc.interval {
			uc.mu.Unlock()
			return SyncResult{Ran: false}, nil
		}
		uc.mu.Unlock()

		res, err := uc.runOnce(ctx)
		if err != nil {
			return res, err
		}
		uc.mu.Lock()
		uc.lastRun = time.Now()
		uc.mu.Unlock()
		return res, nil
	})
	res, _ := v.(SyncResult)
	return res, err
}

// runOnce recorre todas las ubicaciones; el fallo de una se registra y se
// salta sin abortar las demás.
func (uc *SyncUseCase) runOnce(ctx context.Context) (SyncResult, error) {
	res := SyncResult{Ran: true}
	locs, err := uc.locations.List(ctx, 0, 0)
	if err != nil {
		return res, err
	}
	skus, err := uc.catalog.ListSKUs(ctx)
	if err != nil {
		return res, err
	}
	for _, loc := range locs {
		res.LocationsScanned++
		created, err := uc.ensureCoverage(ctx, loc.ID, skus)
		if err != nil {
			uc.log.Warn().Err(err).
				Str("location_id", loc.ID).
				Str("location_code", loc.Code).
				Msg("sincronización de cobertura: ubicación saltada")
			res.SkippedLocations = append(res.SkippedLocations, loc.Code)
			continue
		}
		res.RowsCreated += created
	}
	uc.log.Info().
		Int("locations", res.LocationsScanned).
		Int("rows_created", res.RowsCreated).
		Int("skipped", len(res.SkippedLocations)).
		Msg("sincronización de cobertura completada")
	return res, nil
}

// EnsureLocation clona en la ubicación indicada cada SKU del catálogo que aún
// no tenga fila, en cero. Usado perezosamente por la vista por ubicación.
func (uc *SyncUseCase) EnsureLocation(ctx context.Context, locationID string) (int, error) {
	skus, err := uc.catalog.ListSKUs(ctx)
	if err != nil {
		return 0, err
	}
	return uc.ensureCoverage(ctx, locationID, skus)
}

// ensureCoverage crea las filas faltantes de una ubicación en una transacción.
func (uc *SyncUseCase) ensureCoverage(ctx context.Context, locationID string, skus []string) (int, error) {
	created := 0
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		existing, err := r.Ledger.ListByLocation(ctx, locationID)
		if err != nil {
			return err
		}
		have := make(map[string]bool, len(existing))
		for _, row := range existing {
			have[row.SKU] = true
		}
		for _, sku := range skus {
			if have[sku] {
				continue
			}
			item, err := r.Catalog.GetBySKU(ctx, sku)
			if err != nil {
				return err
			}
			if item == nil {
				continue
			}
			cost := item.UnitCost
			rp := item.ReorderPoint
			if _, err := ApplyLocationDelta(ctx, r, ApplyDeltaInput{
				LocationID:   locationID,
				SKU:          sku,
				ItemName:     item.Name,
				UnitCost:     &cost,
				ReorderPoint: &rp,
			}); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
