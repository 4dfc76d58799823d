// Package stats は会員統計の集計を提供する。
package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hitoshi/memberdesk/internal/model"
	"github.com/hitoshi/memberdesk/internal/repository"
)

// Statistics は統計レスポンスの値。
// 旧実装との互換のため、集計値は数値文字列として保持する
// （旧バックエンドはCOUNT集計を文字列のままJSONに載せていた）。
type Statistics struct {
	TotalActiveMembers        string
	ApplicationsNeedingReview string
}

// Service は統計集計のサービス層。
type Service struct {
	memberRepo repository.MemberRepository
	appRepo    repository.ApplicationRepository
}

// NewService はServiceを生成する。
func NewService(memberRepo repository.MemberRepository, appRepo repository.ApplicationRepository) *Service {
	return &Service{
		memberRepo: memberRepo,
		appRepo:    appRepo,
	}
}

// Collect は在籍会員数と要審査の申請数を集計する。
// 2つの集計は独立したクエリであり、同一スナップショットは保証しない。
// 要審査はstatus=pendingの件数（却下済みは含めない）。
func (s *Service) Collect(ctx context.Context) (*Statistics, error) {
	members, err := s.memberRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}

	pending, err := s.appRepo.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending applications: %w", err)
	}

	return &Statistics{
		TotalActiveMembers:        strconv.Itoa(members),
		ApplicationsNeedingReview: strconv.Itoa(pending),
	}, nil
}
