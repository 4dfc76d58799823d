package model

import "time"

// Session はログインセッションを表す。
// IDはHTTP Only Cookieでクライアントに渡される不透明な識別子。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
