package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/memberdesk/internal/stats"
)

// StatsServiceInterface は統計ハンドラーが必要とするサービスインターフェース。
type StatsServiceInterface interface {
	Collect(ctx context.Context) (*stats.Statistics, error)
}

// StatsHandler は統計情報のHTTPハンドラー。
type StatsHandler struct {
	service StatsServiceInterface
}

// NewStatsHandler はStatsHandlerを生成する。
func NewStatsHandler(service StatsServiceInterface) *StatsHandler {
	return &StatsHandler{service: service}
}

// statisticsResponse は統計情報のAPIレスポンス。
// 旧実装との互換のため集計値は数値文字列で返す。
type statisticsResponse struct {
	TotalActiveMembers        string `json:"totalActiveMembers"`
	ApplicationsNeedingReview string `json:"applicationsNeedingReview"`
}

// Statistics は会員統計を返す。
// GET /statistics
func (h *StatsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Collect(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statisticsResponse{
		TotalActiveMembers:        result.TotalActiveMembers,
		ApplicationsNeedingReview: result.ApplicationsNeedingReview,
	})
}
