package repo

import (
	"context"
	"errors"

	"github.com/iWorld-y/growth_radar/app/growth/internal/domain"
)

// ErrInsufficientBalance 扣费会使余额变为负数
var ErrInsufficientBalance = errors.New("insufficient balance")

// CreditLedger 积分账本
type CreditLedger interface {
	// Balance 查询余额，账户不存在时按初始积分创建
	Balance(ctx context.Context, userID string) (int, error)
	// Debit 原子扣减并记录流水，余额不足时返回 ErrInsufficientBalance
	Debit(ctx context.Context, userID string, amount int, reason string) error
}

// HistoryRepo 报告历史仓库
type HistoryRepo interface {
	Record(ctx context.Context, rec *domain.HistoryRecord) error
	// List 按创建时间倒序分页
	List(ctx context.Context, userID string, page, pageSize int) ([]*domain.HistorySummary, int, error)
	Get(ctx context.Context, id, userID string) (*domain.HistoryRecord, error)
}
