// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/memberdesk/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// ApplicationRepository は入会申請データの永続化インターフェース。
type ApplicationRepository interface {
	// Create は申請を作成し、採番されたIDとタイムスタンプをappに書き戻す。
	// statusは常にpendingで作成される。
	Create(ctx context.Context, app *model.MembershipApplication) error

	// ListAll は全申請を格納順で返す。ページネーションは行わない。
	ListAll(ctx context.Context) ([]*model.MembershipApplication, error)

	// UpdateStatus は指定IDの申請のステータスを更新し、更新された行数を返す。
	// 該当行が存在しない場合は0を返す（エラーにはしない）。
	UpdateStatus(ctx context.Context, id int64, status model.ApplicationStatus) (int64, error)

	// CountByStatus は指定ステータスの申請数を返す。
	CountByStatus(ctx context.Context, status model.ApplicationStatus) (int, error)
}

// MemberRepository は在籍会員データの永続化インターフェース。
// 統計で参照するのは件数のみ。
type MemberRepository interface {
	// CountActive は在籍会員数を返す。
	CountActive(ctx context.Context) (int, error)
}
