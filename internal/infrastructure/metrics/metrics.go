// Package metrics expone contadores Prometheus y el servidor lateral que los
// publica, separado del puerto principal de la API.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Contadores de operaciones de dominio.
var (
	MovementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "manufactura_stock_movements_total",
		Help: "Movimientos de stock registrados, por tipo.",
	}, []string{"type"})

	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "manufactura_order_transitions_total",
		Help: "Transiciones de órdenes de producción aplicadas, por estado destino.",
	}, []string{"to"})

	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "manufactura_sync_runs_total",
		Help: "Ejecuciones del sincronizador de cobertura, por resultado.",
	}, []string{"result"})

	InsufficientStock = promauto.NewCounter(prometheus.CounterOpts{
		Name: "manufactura_insufficient_stock_total",
		Help: "Operaciones rechazadas por stock insuficiente.",
	})
)

// Server servidor HTTP lateral con /metrics y /health.
type Server struct {
	srv *http.Server
}

// NewServer construye el servidor lateral en addr.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

// Start bloquea sirviendo hasta Shutdown.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown apaga el servidor respetando el contexto.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
