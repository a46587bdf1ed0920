package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/growth_radar/app/growth/internal/domain"
	"github.com/iWorld-y/growth_radar/app/growth/internal/repo"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

type historyRepo struct {
	data *Data
	log  *log.Helper
}

func NewHistoryRepo(data *Data, logger log.Logger) repo.HistoryRepo {
	return &historyRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *historyRepo) Record(ctx context.Context, rec *domain.HistoryRecord) error {
	ctx, cancel := r.data.withTimeout(ctx)
	defer cancel()

	payload, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = r.data.db.ExecContext(ctx, `
		INSERT INTO growth_dashboard_history (id, user_id, analysis_data, credits_consumed, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.UserID, payload, rec.CreditsConsumed, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert history: %w", err)
	}
	return nil
}

func (r *historyRepo) List(ctx context.Context, userID string, page, pageSize int) ([]*domain.HistorySummary, int, error) {
	ctx, cancel := r.data.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.data.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM growth_dashboard_history WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count history: %w", err)
	}

	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, credits_consumed, created_at,
			COALESCE(analysis_data->'overview'->>'status', ''),
			COALESCE((analysis_data->'overview'->>'score')::float8, 0)
		FROM growth_dashboard_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	list := make([]*domain.HistorySummary, 0, pageSize)
	for rows.Next() {
		s := &domain.HistorySummary{}
		if err := rows.Scan(&s.ID, &s.CreditsConsumed, &s.CreatedAt, &s.OverviewStatus, &s.OverviewScore); err != nil {
			return nil, 0, err
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *historyRepo) Get(ctx context.Context, id, userID string) (*domain.HistoryRecord, error) {
	ctx, cancel := r.data.withTimeout(ctx)
	defer cancel()

	rec := &domain.HistoryRecord{}
	var payload []byte
	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, user_id, analysis_data, credits_consumed, created_at
		FROM growth_dashboard_history
		WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&rec.ID, &rec.UserID, &payload, &rec.CreditsConsumed, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHistoryNotFound()
		}
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	var report model.CompositeReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode history %s: %w", id, err)
	}
	rec.Report = &report
	return rec, nil
}
