package adminserver

import (
	"net/http"

	"github.com/dreamware/shardkv/internal/telemetry/logger"
	"github.com/dreamware/shardkv/internal/telemetry/metric"
)

// RouterConfig holds the dependencies needed to build the admin router.
type RouterConfig struct {
	Store   StoreStats
	Orch    OrchestratorStats
	Metrics *metric.Registry
	Logger  logger.Logger
}

// NewRouter builds the admin HTTP handler: /healthz, /metrics, and
// /stats, each wrapped in panic recovery and access logging.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := newHandler(cfg.Store, cfg.Orch)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /stats", h.handleStats)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	return Chain(mux, AccessLog(log), Recover(log))
}
