package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/memberdesk/internal/middleware"
	"github.com/hitoshi/memberdesk/internal/model"
	"github.com/hitoshi/memberdesk/internal/view"
)

// ProfileServiceInterface は管理画面ハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	GetProfileByID(ctx context.Context, userID string) (*model.Profile, error)
}

// AdminHandler は管理者向け画面のHTTPハンドラー。
// セッションゲートを通過したリクエストに対してテンプレートをレンダリングする。
type AdminHandler struct {
	profileService ProfileServiceInterface
	renderer       *view.Renderer
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(profileService ProfileServiceInterface, renderer *view.Renderer) *AdminHandler {
	return &AdminHandler{
		profileService: profileService,
		renderer:       renderer,
	}
}

// Admin は管理画面を表示する。
// GET /admin
// セッションゲートを通過した時点でログイン済みが保証される。
func (h *AdminHandler) Admin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderAdmin(w, view.AdminData{LoggedIn: true}); err != nil {
		slog.Error("failed to render admin page", slog.String("error", err.Error()))
	}
}

// Dashboard はダッシュボード画面を表示する。
// GET /dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderDashboard(w); err != nil {
		slog.Error("failed to render dashboard page", slog.String("error", err.Error()))
	}
}

// Profile はログイン中ユーザーのプロフィール画面を表示する。
// GET /profile
// ユーザー行が削除済みの場合は404を返す。
func (h *AdminHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	profile, err := h.profileService.GetProfileByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderProfile(w, view.ProfileData{Profile: *profile}); err != nil {
		slog.Error("failed to render profile page", slog.String("error", err.Error()))
	}
}
