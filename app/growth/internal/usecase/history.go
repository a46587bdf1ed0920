package usecase

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/growth_radar/app/growth/internal/domain"
	"github.com/iWorld-y/growth_radar/app/growth/internal/repo"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// HistoryUseCase 报告历史查询
type HistoryUseCase struct {
	repo repo.HistoryRepo
	log  *log.Helper
}

func NewHistoryUseCase(repo repo.HistoryRepo, logger log.Logger) *HistoryUseCase {
	return &HistoryUseCase{repo: repo, log: log.NewHelper(logger)}
}

// List 分页列出用户的历史报告摘要
func (uc *HistoryUseCase) List(ctx context.Context, userID string, page, pageSize int) ([]*domain.HistorySummary, int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, 0, domain.ErrInvalidRequest("userId is required")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	list, total, err := uc.repo.List(ctx, userID, page, pageSize)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("查询历史列表失败 user=%s: %v", userID, err)
		return nil, 0, domain.ErrInternal("failed to list history", err)
	}
	return list, total, nil
}

// Get 只能读取自己的记录，不存在或不属于该用户都返回 404
func (uc *HistoryUseCase) Get(ctx context.Context, id, userID string) (*domain.HistoryRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrInvalidRequest("userId is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrHistoryNotFound()
	}

	rec, err := uc.repo.Get(ctx, id, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, err
		}
		uc.log.WithContext(ctx).Errorf("查询历史失败 id=%s: %v", id, err)
		return nil, domain.ErrInternal("failed to load history", err)
	}
	return rec, nil
}
