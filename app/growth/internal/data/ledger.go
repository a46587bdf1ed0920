package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/growth_radar/app/growth/internal/conf"
	"github.com/iWorld-y/growth_radar/app/growth/internal/repo"
)

type creditLedger struct {
	data         *Data
	startBalance int
	log          *log.Helper
}

func NewCreditLedger(data *Data, c *conf.Growth, logger log.Logger) repo.CreditLedger {
	return &creditLedger{
		data:         data,
		startBalance: c.StartBalance(),
		log:          log.NewHelper(logger),
	}
}

const selectBalance = `SELECT total_credits FROM user_credits WHERE user_id = $1`

func (r *creditLedger) Balance(ctx context.Context, userID string) (int, error) {
	ctx, cancel := r.data.withTimeout(ctx)
	defer cancel()

	var balance int
	err := r.data.db.QueryRowContext(ctx, selectBalance, userID).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to query credits: %w", err)
	}

	// 首次使用，按初始积分创建账户；并发创建时以先写入者为准
	if _, err := r.data.db.ExecContext(ctx,
		`INSERT INTO user_credits (user_id, total_credits) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, r.startBalance); err != nil {
		return 0, fmt.Errorf("failed to provision credits: %w", err)
	}
	r.log.WithContext(ctx).Infof("用户 [%s] 不存在，已创建积分账户: %d", userID, r.startBalance)

	if err := r.data.db.QueryRowContext(ctx, selectBalance, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to query credits: %w", err)
	}
	return balance, nil
}

func (r *creditLedger) Debit(ctx context.Context, userID string, amount int, reason string) error {
	ctx, cancel := r.data.withTimeout(ctx)
	defer cancel()

	tx, err := r.data.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin debit transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE user_credits
		SET total_credits = total_credits - $2, updated_at = NOW()
		WHERE user_id = $1 AND total_credits >= $2`,
		userID, amount)
	if err != nil {
		return fmt.Errorf("failed to debit credits: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read debit result: %w", err)
	}
	if n == 0 {
		return repo.ErrInsufficientBalance
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO credit_transactions (user_id, amount, reason) VALUES ($1, $2, $3)`,
		userID, -amount, reason); err != nil {
		return fmt.Errorf("failed to insert credit transaction: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit debit: %w", err)
	}
	return nil
}
