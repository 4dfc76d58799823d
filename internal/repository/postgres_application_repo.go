package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/memberdesk/internal/model"
)

// PostgresApplicationRepo はPostgreSQLを使用した入会申請リポジトリ。
type PostgresApplicationRepo struct {
	db *sql.DB
}

// NewPostgresApplicationRepo はPostgresApplicationRepoを生成する。
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: db}
}

// Create は申請を作成し、採番されたIDとタイムスタンプをappに書き戻す。
// statusはテーブル定義のデフォルト（pending）に委ねる。
func (r *PostgresApplicationRepo) Create(ctx context.Context, app *model.MembershipApplication) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO membership_applications (full_name, email, phone, emergency_contact, membership_fee)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, status, created_at`,
		app.FullName, app.Email, app.Phone, app.EmergencyContact, app.MembershipFee,
	).Scan(&app.ID, &app.Status, &app.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert membership application: %w", err)
	}
	return nil
}

// ListAll は全申請を格納順（ID昇順）で返す。
func (r *PostgresApplicationRepo) ListAll(ctx context.Context) ([]*model.MembershipApplication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, full_name, email, phone, emergency_contact, membership_fee, status, created_at
		 FROM membership_applications
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership applications: %w", err)
	}
	defer rows.Close()

	var apps []*model.MembershipApplication
	for rows.Next() {
		app := &model.MembershipApplication{}
		if err := rows.Scan(
			&app.ID, &app.FullName, &app.Email, &app.Phone,
			&app.EmergencyContact, &app.MembershipFee, &app.Status, &app.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate membership applications: %w", err)
	}

	return apps, nil
}

// UpdateStatus は指定IDの申請のステータスを更新し、更新された行数を返す。
func (r *PostgresApplicationRepo) UpdateStatus(ctx context.Context, id int64, status model.ApplicationStatus) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE membership_applications SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update application status: %w", err)
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return matched, nil
}

// CountByStatus は指定ステータスの申請数を返す。
func (r *PostgresApplicationRepo) CountByStatus(ctx context.Context, status model.ApplicationStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM membership_applications WHERE status = $1`,
		status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications by status: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
