package adminserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dreamware/shardkv/internal/orchestrator"
	"github.com/dreamware/shardkv/pkg/cmap"
)

// StoreStats is the subset of internal/store.Store needed to report
// per-shard key counts.
type StoreStats interface {
	ShardStats() []cmap.ShardStats
	NumDatastores() int
}

// OrchestratorStats is the subset of internal/orchestrator.Orchestrator
// needed to report connection and worker-pool load.
type OrchestratorStats interface {
	ActiveConnections() int
	PoolStats() []orchestrator.PoolStat
}

type handler struct {
	store StoreStats
	orch  OrchestratorStats
}

func newHandler(store StoreStats, orch OrchestratorStats) *handler {
	return &handler{store: store, orch: orch}
}

func (h *handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

type statsResponse struct {
	ActiveConnections int                      `json:"active_connections"`
	NumDatastores     int                      `json:"num_datastores"`
	Shards            []cmap.ShardStats        `json:"shards"`
	Pools             []orchestrator.PoolStat  `json:"pools"`
}

func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{
		NumDatastores: h.store.NumDatastores(),
		Shards:        h.store.ShardStats(),
	}
	if h.orch != nil {
		resp.ActiveConnections = h.orch.ActiveConnections()
		resp.Pools = h.orch.PoolStats()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
