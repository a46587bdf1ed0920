package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SectionName 报告板块名称，与 JSON 字段名一致
type SectionName string

const (
	SectionOverview      SectionName = "overview"
	SectionICEMatrix     SectionName = "ice_matrix"
	SectionAlertRadar    SectionName = "alert_radar"
	SectionOpportunities SectionName = "opportunity_donut"
	SectionInsightCards  SectionName = "insight_cards"
	SectionPlaybooks     SectionName = "playbooks"
	SectionROIProof      SectionName = "roi_proof"
)

// AllSections 固定的七个板块
var AllSections = []SectionName{
	SectionOverview,
	SectionICEMatrix,
	SectionAlertRadar,
	SectionOpportunities,
	SectionInsightCards,
	SectionPlaybooks,
	SectionROIProof,
}

// FlexString 兼容模型把估算值写成数字或字符串的情况
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("flex string: unsupported value %s", data)
}

// Overview 执行摘要
type Overview struct {
	Status     string      `json:"status"` // excellent|good|warning|critical
	Score      float64     `json:"score"`  // 0-100
	Summary    string      `json:"summary"`
	KeyMetrics []KeyMetric `json:"key_metrics"`
}

type KeyMetric struct {
	Label string     `json:"label"`
	Value FlexString `json:"value"`
	Trend string     `json:"trend"` // up|down|stable
}

// ICETask 优先级矩阵中的一项任务
type ICETask struct {
	Task         string     `json:"task"`
	Impact       float64    `json:"impact"`
	Confidence   float64    `json:"confidence"`
	Ease         float64    `json:"ease"`
	ICEScore     float64    `json:"ice_score"`
	Description  string     `json:"description"`
	EstimatedROI FlexString `json:"estimated_roi"`
}

// AlertRadar 风险/机会雷达
type AlertRadar struct {
	Alerts    []Alert   `json:"alerts"`
	RadarData RadarData `json:"radar_data"`
}

type Alert struct {
	Type     string     `json:"type"`     // risk|opportunity|warning
	Severity string     `json:"severity"` // low|medium|high|critical
	Category string     `json:"category"` // SEO|Content|Engagement|Technical
	Message  string     `json:"message"`
	Action   string     `json:"action"`
	Impact   FlexString `json:"impact"`
}

// RadarData 五个 0-100 维度
type RadarData struct {
	SEO        float64 `json:"SEO"`
	Content    float64 `json:"Content"`
	Engagement float64 `json:"Engagement"`
	Technical  float64 `json:"Technical"`
	Growth     float64 `json:"Growth"`
}

// OpportunityDonut 机会分类
type OpportunityDonut struct {
	Categories []OpportunityCategory `json:"categories"`
}

type OpportunityCategory struct {
	Name             string     `json:"name"`
	PotentialTraffic FlexString `json:"potential_traffic"`
	Difficulty       string     `json:"difficulty"` // low|medium|high
	Keywords         []string   `json:"keywords"`
	Percentage       float64    `json:"percentage"`
}

type InsightCard struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`     // problem|opportunity|tip
	Priority    string     `json:"priority"` // high|medium|low
	Stat        FlexString `json:"stat"`
	Action      string     `json:"action"`
}

type Playbook struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	EstimatedImpact FlexString     `json:"estimated_impact"`
	Duration        FlexString     `json:"duration"`
	Steps           []PlaybookStep `json:"steps"`
	UnlockCost      int            `json:"unlock_cost"`
}

type PlaybookStep struct {
	Step        int      `json:"step"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

// ROIProof 收益差距估算
type ROIProof struct {
	CurrentPerformance   Performance    `json:"current_performance"`
	OptimizedPerformance Performance    `json:"optimized_performance"`
	OpportunityGap       OpportunityGap `json:"opportunity_gap"`
	CaseStudies          []CaseStudy    `json:"case_studies"`
}

type Performance struct {
	MonthlyViews     FlexString `json:"monthly_views"`
	CTR              FlexString `json:"ctr"`
	EstimatedRevenue FlexString `json:"estimated_revenue"`
}

type OpportunityGap struct {
	ViewsGain             FlexString `json:"views_gain"`
	RevenueGain           FlexString `json:"revenue_gain"`
	PercentageImprovement FlexString `json:"percentage_improvement"`
}

type CaseStudy struct {
	Before      FlexString `json:"before"`
	After       FlexString `json:"after"`
	Improvement FlexString `json:"improvement"`
	Timeframe   FlexString `json:"timeframe"`
}
