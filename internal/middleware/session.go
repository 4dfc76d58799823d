// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/memberdesk/internal/model"
)

const sessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// SessionFinder はセッションの検索に必要なインターフェース。
// repository.SessionRepositoryの部分集合として定義する。
type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*model.Session, error)
}

// NewSessionMiddleware はHTTP Only Cookieからセッションを読み取り、
// 有効性を検証するミドルウェアを返す。全保護ルートで同一の認可判定を共有する。
// 認証済みユーザーIDをリクエストコンテキストに注入し、
// 未認証リクエストには401 Unauthorizedを返す。
func NewSessionMiddleware(sessionFinder SessionFinder) func(next http.Handler) http.Handler {
	return newSessionGate(sessionFinder, func(w http.ResponseWriter, r *http.Request) {
		WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
	})
}

// NewSessionRedirectMiddleware はブラウザ向け画面用のセッションゲートを返す。
// 判定ロジックはNewSessionMiddlewareと同一で、未認証時の応答のみ
// ログイン画面へのリダイレクトに差し替える。
func NewSessionRedirectMiddleware(sessionFinder SessionFinder, loginPath string) func(next http.Handler) http.Handler {
	return newSessionGate(sessionFinder, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, loginPath, http.StatusFound)
	})
}

// newSessionGate はセッション検証の共通処理。拒否時の応答だけを差し替え可能にする。
func newSessionGate(sessionFinder SessionFinder, reject http.HandlerFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. CookieからセッションIDを取得
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				reject(w, r)
				return
			}

			// 2. セッションの有効性を検証
			session, err := sessionFinder.FindByID(r.Context(), cookie.Value)
			if err != nil {
				slog.Error("failed to find session",
					slog.String("error", err.Error()),
				)
				reject(w, r)
				return
			}
			if session == nil {
				reject(w, r)
				return
			}

			// 3. 認証済みユーザーIDをコンテキストに注入
			ctx := context.WithValue(r.Context(), userIDContextKey, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
