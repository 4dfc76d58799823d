package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hitoshi/memberdesk/internal/model"
)

func newUserRepoMock(t *testing.T) (*PostgresUserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresUserRepo(db), mock
}

var userColumns = []string{"id", "username", "email", "password_hash", "role", "created_at", "updated_at"}

// FindByUsernameが一致する行をUserに詰めて返すことを検証
func TestPostgresUserRepo_FindByUsername_Found(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("uid-1", "admin", "admin@example.com", "$2a$10$hash", "admin", now, now))

	user, err := repo.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("FindByUsername failed: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Username != "admin" || user.PasswordHash != "$2a$10$hash" {
		t.Errorf("user = %+v", user)
	}
}

// FindByUsernameが0件のときnilを返しエラーにしないことを検証
func TestPostgresUserRepo_FindByUsername_NotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.FindByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("FindByUsername failed: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}

// FindByIDが0件のときnilを返すことを検証
func TestPostgresUserRepo_FindByID_NotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs("missing-id").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.FindByID(context.Background(), "missing-id")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}

// Createが全カラムをバインドしてINSERTすることを検証
func TestPostgresUserRepo_Create(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("uid-1", "admin", "admin@example.com", "$2a$10$hash", "admin", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &model.User{
		ID:           "uid-1",
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
