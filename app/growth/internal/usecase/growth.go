package usecase

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/growth_radar/app/growth/internal/conf"
	"github.com/iWorld-y/growth_radar/app/growth/internal/domain"
	"github.com/iWorld-y/growth_radar/app/growth/internal/repo"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/engine"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/metrics"
)

// ReportEngine 取数、生成并合成报告，总会返回七个板块
type ReportEngine interface {
	Analyze(ctx context.Context, req engine.Request) *engine.Analysis
}

// GrowthUseCase 增长报告编排：校验 → 查余额 → 生成 → 扣费 → 记录历史
type GrowthUseCase struct {
	ledger  repo.CreditLedger
	history repo.HistoryRepo
	engine  ReportEngine
	cost    int
	log     *log.Helper
}

func NewGrowthUseCase(c *conf.Growth, ledger repo.CreditLedger, history repo.HistoryRepo, eng ReportEngine, logger log.Logger) *GrowthUseCase {
	return &GrowthUseCase{
		ledger:  ledger,
		history: history,
		engine:  eng,
		cost:    c.Cost(),
		log:     log.NewHelper(logger),
	}
}

// Generate 余额不足时在任何外部调用之前拒绝。
// 报告生成后扣费和写历史失败只记录日志，不影响返回结果。
func (uc *GrowthUseCase) Generate(ctx context.Context, req *domain.GenerateRequest) (*domain.GenerateResult, error) {
	userID := strings.TrimSpace(req.UserID)
	channelID := strings.TrimSpace(req.ChannelID)
	keywords := strings.TrimSpace(req.Keywords)
	if userID == "" {
		return nil, domain.ErrInvalidRequest("userId is required")
	}
	if channelID == "" && keywords == "" {
		return nil, domain.ErrInvalidRequest("channelId or keywords is required for the analysis")
	}

	uc.log.WithContext(ctx).Infof("开始为用户 [%s] 生成增长报告", userID)

	balance, err := uc.ledger.Balance(ctx, userID)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("查询用户 [%s] 积分失败: %v", userID, err)
		return nil, domain.ErrInternal("failed to initialize user credits", err)
	}
	if balance < uc.cost {
		return nil, domain.ErrInsufficientCredits(uc.cost, balance)
	}

	// 请求一旦开始就执行到底，客户端断开不取消抓取、生成、扣费和写历史
	bg := context.WithoutCancel(ctx)
	analysis := uc.engine.Analyze(bg, engine.Request{
		AccountID: userID,
		ChannelID: channelID,
		Keywords:  keywords,
	})

	rec := &domain.HistoryRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		Report:          analysis.Report,
		CreditsConsumed: uc.cost,
		CreatedAt:       analysis.Report.GeneratedAt,
	}

	if err := uc.ledger.Debit(bg, userID, uc.cost, domain.ReasonGrowthDashboard); err != nil {
		metrics.CreditDebitFailures.Inc()
		uc.log.WithContext(ctx).Errorf("扣费失败 user=%s amount=%d history=%s: %v", userID, uc.cost, rec.ID, err)
	}
	if err := uc.history.Record(bg, rec); err != nil {
		metrics.HistoryWriteFailures.Inc()
		uc.log.WithContext(ctx).Errorf("保存历史失败 user=%s history=%s: %v", userID, rec.ID, err)
	}

	return &domain.GenerateResult{
		CreditsConsumed:  uc.cost,
		RemainingCredits: balance - uc.cost,
		HistoryID:        rec.ID,
		Report:           analysis.Report,
	}, nil
}

// Quota 查询余额与单次价格，账户不存在时同样会按初始积分创建
func (uc *GrowthUseCase) Quota(ctx context.Context, userID string) (*domain.Quota, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrInvalidRequest("userId is required")
	}
	balance, err := uc.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, domain.ErrInternal("failed to load user credits", err)
	}
	return &domain.Quota{UserID: userID, Credits: balance, Cost: uc.cost}, nil
}
