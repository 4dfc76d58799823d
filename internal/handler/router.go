package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/memberdesk/internal/middleware"
	"github.com/hitoshi/memberdesk/internal/view"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 管理画面
	ProfileService ProfileServiceInterface
	Renderer       *view.Renderer

	// 入会申請
	ApplicationService ApplicationServiceInterface

	// 統計
	StatsService StatsServiceInterface

	// 運用
	DB             Pinger
	MetricsHandler http.Handler                      // /metrics のハンドラー。nilの場合はルートを公開しない
	HTTPMetrics    func(next http.Handler) http.Handler // リクエストメトリクス記録ミドルウェア。nil可
	LoginMetrics   LoginMetrics                      // nil可
	AppMetrics     ApplicationMetrics                // nil可

	// 埋め込み静的ファイル（login.html、apply.htmlなど）
	StaticHandler http.Handler
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Logging → CORS → (HTTPMetrics)
//
// 公開APIにはIPベースのレート制限を適用する。/admin-loginには
// さらに厳しいログイン専用のレート制限を重ねる。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics)
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, deps.LoginMetrics)
	adminHandler := NewAdminHandler(deps.ProfileService, deps.Renderer)
	appHandler := NewApplicationHandler(deps.ApplicationService, deps.AppMetrics)
	statsHandler := NewStatsHandler(deps.StatsService)
	healthHandler := NewHealthHandler(deps.DB)

	sessionGate := middleware.NewSessionMiddleware(deps.SessionFinder)
	redirectGate := middleware.NewSessionRedirectMiddleware(deps.SessionFinder, "/login.html")

	// --- 認証不要のルート ---

	// ログインは一般レート制限に加えてログイン専用の制限を重ねる
	r.With(deps.RateLimiter.GeneralMiddleware(), deps.RateLimiter.LoginMiddleware()).
		Post("/admin-login", authHandler.AdminLogin)

	// 公開API（一般レート制限）
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Post("/submit-application", appHandler.Submit)
		r.Get("/get-applications", appHandler.List)
		r.Post("/approve-application/{id}", appHandler.Approve)
		r.Post("/deny-application/{id}", appHandler.Deny)
		r.Get("/statistics", statsHandler.Statistics)
	})

	// --- ブラウザ画面（未認証はログイン画面へリダイレクト） ---
	r.Group(func(r chi.Router) {
		r.Use(redirectGate)

		r.Get("/admin", adminHandler.Admin)
		r.Get("/dashboard", adminHandler.Dashboard)
	})

	// --- 認証必須のルート（未認証は401） ---
	r.Group(func(r chi.Router) {
		r.Use(sessionGate)

		r.Get("/profile", adminHandler.Profile)
		r.Post("/admin-logout", authHandler.AdminLogout)
	})

	// --- 運用ルート ---
	r.Get("/health", healthHandler.Health)
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// 静的ファイル（/login.html、/apply.html、CSS、JS）
	if deps.StaticHandler != nil {
		r.Handle("/*", deps.StaticHandler)
	}

	return r
}

// SetupApplicationRoutes は入会申請関連のルーティングのみを設定したchi.Routerを返す。
// 単体テストや限定的な組み込み用途で使用する。
func SetupApplicationRoutes(service ApplicationServiceInterface) http.Handler {
	r := chi.NewRouter()
	h := NewApplicationHandler(service, nil)

	r.Post("/submit-application", h.Submit)
	r.Get("/get-applications", h.List)
	r.Post("/approve-application/{id}", h.Approve)
	r.Post("/deny-application/{id}", h.Deny)

	return r
}
