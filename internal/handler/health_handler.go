package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// Pinger はデータベース疎通確認のインターフェース。
// *sql.DB がこれを満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health はデータベース疎通を含むヘルスチェックを行う。
// GET /health
// DBに到達できない場合は503を返す。
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.db.PingContext(r.Context()); err != nil {
		slog.Error("health check failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
