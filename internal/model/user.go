// Package model はドメインモデルを定義する。
package model

import "time"

// User は管理画面にログインするユーザーを表す。
// PasswordHashはbcryptハッシュのみを保持し、平文パスワードは一切保存しない。
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile はプロフィール画面に表示するユーザー情報のサブセット。
// username・email・role以外のフィールドは公開しない。
type Profile struct {
	Username string
	Email    string
	Role     string
}
