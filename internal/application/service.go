// Package application は入会申請のドメインロジックを提供する。
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/memberdesk/internal/model"
	"github.com/hitoshi/memberdesk/internal/repository"
)

// SubmitInput は入会申請フォームの入力値。
// 各フィールドは書式検証せずそのまま保存する。
type SubmitInput struct {
	FullName         string
	Email            string
	Phone            string
	EmergencyContact string
	MembershipFee    string
}

// Service は入会申請のサービス層。
type Service struct {
	appRepo repository.ApplicationRepository
}

// NewService はServiceを生成する。
func NewService(appRepo repository.ApplicationRepository) *Service {
	return &Service{appRepo: appRepo}
}

// Submit は入会申請を受理する。statusはpendingで作成される。
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*model.MembershipApplication, error) {
	app := &model.MembershipApplication{
		FullName:         input.FullName,
		Email:            input.Email,
		Phone:            input.Phone,
		EmergencyContact: input.EmergencyContact,
		MembershipFee:    input.MembershipFee,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	slog.Info("membership application submitted",
		slog.Int64("application_id", app.ID),
	)

	return app, nil
}

// List は全申請を格納順で返す。
func (s *Service) List(ctx context.Context) ([]*model.MembershipApplication, error) {
	apps, err := s.appRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Approve は指定IDの申請を承認する。
// 該当行が存在しない場合はNewApplicationNotFoundErrorを返す。
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.SetStatus(ctx, id, model.StatusApproved)
}

// Deny は指定IDの申請を却下する。
// 該当行が存在しない場合はNewApplicationNotFoundErrorを返す。
func (s *Service) Deny(ctx context.Context, id int64) error {
	return s.SetStatus(ctx, id, model.StatusDenied)
}

// SetStatus は指定IDの申請の審査ステータスを更新する。
// 定義外のステータスはNewInvalidStatusErrorで拒否し、
// 更新行数0件は「申請が存在しない」として扱う。
func (s *Service) SetStatus(ctx context.Context, id int64, status model.ApplicationStatus) error {
	if !status.Valid() {
		return model.NewInvalidStatusError(string(status))
	}

	matched, err := s.appRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if matched == 0 {
		return model.NewApplicationNotFoundError(id)
	}

	slog.Info("application status updated",
		slog.Int64("application_id", id),
		slog.String("status", string(status)),
	)

	return nil
}
