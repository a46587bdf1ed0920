package domain

import (
	"time"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

// ReasonGrowthDashboard 扣费原因码
const ReasonGrowthDashboard = "growth_dashboard"

// GenerateRequest 生成增长报告请求，ChannelID 与 Keywords 至少一个非空
type GenerateRequest struct {
	UserID    string
	ChannelID string
	Keywords  string
}

// GenerateResult RemainingCredits 基于扣费前余额计算，与扣费是否成功无关
type GenerateResult struct {
	CreditsConsumed  int
	RemainingCredits int
	HistoryID        string
	Report           *model.CompositeReport
}

// HistoryRecord 历史记录，只追加不修改
type HistoryRecord struct {
	ID              string
	UserID          string
	Report          *model.CompositeReport
	CreditsConsumed int
	CreatedAt       time.Time
}

// HistorySummary 历史列表项
type HistorySummary struct {
	ID              string
	CreditsConsumed int
	OverviewStatus  string
	OverviewScore   float64
	CreatedAt       time.Time
}

// Quota 账户积分与单次报告价格
type Quota struct {
	UserID  string
	Credits int
	Cost    int
}
