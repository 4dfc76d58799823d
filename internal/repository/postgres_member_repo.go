package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresMemberRepo はPostgreSQLを使用した在籍会員リポジトリ。
type PostgresMemberRepo struct {
	db *sql.DB
}

// NewPostgresMemberRepo はPostgresMemberRepoを生成する。
func NewPostgresMemberRepo(db *sql.DB) *PostgresMemberRepo {
	return &PostgresMemberRepo{db: db}
}

// CountActive は在籍会員数を返す。
func (r *PostgresMemberRepo) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM active_members`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active members: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ MemberRepository = (*PostgresMemberRepo)(nil)
