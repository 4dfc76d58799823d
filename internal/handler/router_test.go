package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/memberdesk/internal/application"
	"github.com/hitoshi/memberdesk/internal/middleware"
	"github.com/hitoshi/memberdesk/internal/model"
	"github.com/hitoshi/memberdesk/internal/stats"
	"github.com/hitoshi/memberdesk/internal/webassets"
)

// --- モック定義 ---

type mockSessionFinder struct {
	sessions map[string]*model.Session
}

func (m *mockSessionFinder) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, nil
}

// newTestRouter は全ルートを構成したテスト用ルーターを返す。
func newTestRouter(t *testing.T, deps *RouterDeps) http.Handler {
	t.Helper()

	if deps.SessionFinder == nil {
		deps.SessionFinder = &mockSessionFinder{}
	}
	if deps.CORSAllowedOrigin == "" {
		deps.CORSAllowedOrigin = "http://localhost:3000"
	}
	if deps.RateLimiter == nil {
		rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			GeneralRate:     1000,
			GeneralBurst:    1000,
			LoginRate:       1000,
			LoginBurst:      1000,
			CleanupInterval: 1 * time.Minute,
		})
		t.Cleanup(rl.Stop)
		deps.RateLimiter = rl
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if deps.AuthService == nil {
		deps.AuthService = &mockAuthService{}
	}
	if deps.ProfileService == nil {
		deps.ProfileService = &mockProfileService{}
	}
	if deps.Renderer == nil {
		deps.Renderer = newTestRenderer(t)
	}
	if deps.ApplicationService == nil {
		deps.ApplicationService = &mockApplicationService{}
	}
	if deps.StatsService == nil {
		deps.StatsService = &mockStatsService{}
	}
	if deps.DB == nil {
		deps.DB = &mockPinger{}
	}
	if deps.StaticHandler == nil {
		static, err := webassets.Handler()
		if err != nil {
			t.Fatalf("failed to create static handler: %v", err)
		}
		deps.StaticHandler = static
	}

	return NewRouter(deps)
}

// --- 認可ゲートのテスト ---

func TestRouter_AdminWithoutSession_RedirectsToLogin(t *testing.T) {
	router := newTestRouter(t, &RouterDeps{})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusFound)
	}
	if loc := resp.Header.Get("Location"); loc != "/login.html" {
		t.Errorf("Location = %q, want %q", loc, "/login.html")
	}
}

func TestRouter_DashboardWithoutSession_RedirectsToLogin(t *testing.T) {
	router := newTestRouter(t, &RouterDeps{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusFound)
	}
}

func TestRouter_ProfileWithoutSession_Returns401(t *testing.T) {
	router := newTestRouter(t, &RouterDeps{})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestRouter_AdminWithValidSession_RendersView(t *testing.T) {
	finder := &mockSessionFinder{
		sessions: map[string]*model.Session{
			"good-session": {
				ID:        "good-session",
				UserID:    "user-1",
				ExpiresAt: time.Now().Add(1 * time.Hour),
			},
		},
	}
	router := newTestRouter(t, &RouterDeps{SessionFinder: finder})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "good-session"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "入会申請一覧") {
		t.Error("admin view should be rendered")
	}
}

func TestRouter_ProfileWithValidSession_RendersView(t *testing.T) {
	finder := &mockSessionFinder{
		sessions: map[string]*model.Session{
			"good-session": {
				ID:        "good-session",
				UserID:    "user-1",
				ExpiresAt: time.Now().Add(1 * time.Hour),
			},
		},
	}
	profileService := &mockProfileService{
		getProfileByIDFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			return &model.Profile{Username: "admin-user", Email: "a@example.com", Role: "admin"}, nil
		},
	}
	router := newTestRouter(t, &RouterDeps{
		SessionFinder:  finder,
		ProfileService: profileService,
	})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "good-session"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "admin-user") {
		t.Error("profile view should contain the username")
	}
}

// --- 公開APIのテスト ---

func TestRouter_PublicRoutes_NoAuthRequired(t *testing.T) {
	appService := &mockApplicationService{
		listFn: func(ctx context.Context) ([]*model.MembershipApplication, error) {
			return []*model.MembershipApplication{
				{ID: 1, FullName: "申請者", Status: model.StatusPending},
			}, nil
		},
	}
	statsService := &mockStatsService{
		collectFn: func(ctx context.Context) (*stats.Statistics, error) {
			return &stats.Statistics{TotalActiveMembers: "10", ApplicationsNeedingReview: "2"}, nil
		},
	}
	router := newTestRouter(t, &RouterDeps{
		ApplicationService: appService,
		StatsService:       statsService,
	})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/get-applications", http.StatusOK},
		{http.MethodGet, "/statistics", http.StatusOK},
		{http.MethodPost, "/approve-application/1", http.StatusOK},
		{http.MethodPost, "/deny-application/1", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Result().StatusCode != tt.want {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, w.Result().StatusCode, tt.want)
		}
	}
}

func TestRouter_SubmitThenList_FlowWorks(t *testing.T) {
	// インメモリのサービス実装でsubmit→listの流れを通す
	var stored []*model.MembershipApplication
	appService := &mockApplicationService{
		submitFn: func(ctx context.Context, input application.SubmitInput) (*model.MembershipApplication, error) {
			app := &model.MembershipApplication{
				ID:       int64(len(stored) + 1),
				FullName: input.FullName,
				Email:    input.Email,
				Status:   model.StatusPending,
			}
			stored = append(stored, app)
			return app, nil
		},
		listFn: func(ctx context.Context) ([]*model.MembershipApplication, error) {
			return stored, nil
		},
	}
	router := newTestRouter(t, &RouterDeps{ApplicationService: appService})

	// 申請の送信
	body := strings.NewReader(`{"fullName":"田中一郎","email":"ichiro@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/submit-application", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	// 一覧の取得
	req2 := httptest.NewRequest(http.MethodGet, "/get-applications", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	var got []applicationResponse
	if err := json.NewDecoder(w2.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].FullName != "田中一郎" {
		t.Errorf("full_name = %q, want %q", got[0].FullName, "田中一郎")
	}
	if got[0].Status != "pending" {
		t.Errorf("status = %q, want %q", got[0].Status, "pending")
	}
}

func TestRouter_ApproveNonexistent_Returns404(t *testing.T) {
	appService := &mockApplicationService{
		approveFn: func(ctx context.Context, id int64) error {
			return model.NewApplicationNotFoundError(id)
		},
	}
	router := newTestRouter(t, &RouterDeps{ApplicationService: appService})

	req := httptest.NewRequest(http.MethodPost, "/approve-application/12345", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

// --- ログインフローのテスト ---

func TestRouter_LoginFlow_SetsSessionCookieAndOpensAdmin(t *testing.T) {
	finder := &mockSessionFinder{sessions: map[string]*model.Session{}}
	authService := &mockAuthService{
		loginFn: func(ctx context.Context, username, password string) (*model.Session, error) {
			if username != "admin" || password != "secret" {
				return nil, model.NewInvalidCredentialsError()
			}
			session := &model.Session{
				ID:        "issued-session",
				UserID:    "user-1",
				ExpiresAt: time.Now().Add(24 * time.Hour),
			}
			finder.sessions[session.ID] = session
			return session, nil
		},
	}
	router := newTestRouter(t, &RouterDeps{
		SessionFinder: finder,
		AuthService:   authService,
		AuthConfig:    AuthHandlerConfig{SessionMaxAge: 86400},
	})

	// ログイン
	body := strings.NewReader(`{"username":"admin","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin-login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie after login")
	}

	// 発行されたCookieで/adminにアクセスできること
	req2 := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req2.AddCookie(sessionCookie)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	if w2.Result().StatusCode != http.StatusOK {
		t.Errorf("admin status = %d, want %d", w2.Result().StatusCode, http.StatusOK)
	}
}

func TestRouter_LoginRateLimit_Returns429AfterBurst(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate:     1000,
		GeneralBurst:    1000,
		LoginRate:       1,
		LoginBurst:      2,
		CleanupInterval: 1 * time.Minute,
	})
	t.Cleanup(rl.Stop)

	authService := &mockAuthService{
		loginFn: func(ctx context.Context, username, password string) (*model.Session, error) {
			return nil, model.NewInvalidCredentialsError()
		},
	}
	router := newTestRouter(t, &RouterDeps{
		RateLimiter: rl,
		AuthService: authService,
	})

	// バースト2回分は401（認証失敗）
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/admin-login", strings.NewReader(`{"username":"a","password":"b"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "198.51.100.7:1000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusUnauthorized {
			t.Errorf("attempt %d: status = %d, want %d", i, w.Result().StatusCode, http.StatusUnauthorized)
		}
	}

	// 3回目はレート制限
	req := httptest.NewRequest(http.MethodPost, "/admin-login", strings.NewReader(`{"username":"a","password":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "198.51.100.7:1000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusTooManyRequests)
	}
}

// --- 静的ファイルとCORSのテスト ---

func TestRouter_ServesEmbeddedLoginPage(t *testing.T) {
	router := newTestRouter(t, &RouterDeps{})

	req := httptest.NewRequest(http.MethodGet, "/login.html", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "admin-login") {
		t.Error("login page should be served from embedded assets")
	}
}

func TestRouter_OptionsPreflight_Returns204(t *testing.T) {
	router := newTestRouter(t, &RouterDeps{})

	req := httptest.NewRequest(http.MethodOptions, "/submit-application", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:3000")
	}
}

func TestRouter_SecurityHeadersPresent(t *testing.T) {
	router := newTestRouter(t, &RouterDeps{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Result().Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want %q", got, "nosniff")
	}
}

// --- 統計フォーマットのテスト ---

func TestRouter_StatisticsKeepsStringCounts(t *testing.T) {
	statsService := &mockStatsService{
		collectFn: func(ctx context.Context) (*stats.Statistics, error) {
			return &stats.Statistics{TotalActiveMembers: "0", ApplicationsNeedingReview: "0"}, nil
		},
	}
	router := newTestRouter(t, &RouterDeps{StatsService: statsService})

	req := httptest.NewRequest(http.MethodGet, "/statistics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, `"totalActiveMembers":"0"`) {
		t.Errorf("statistics should serialize counts as strings, got: %s", body)
	}
}
