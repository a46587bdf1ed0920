package model

import "time"

// Sections 七个板块的结算结果
type Sections struct {
	Overview      Overview
	ICEMatrix     []ICETask
	AlertRadar    AlertRadar
	Opportunities OpportunityDonut
	InsightCards  []InsightCard
	Playbooks     []Playbook
	ROIProof      ROIProof
}

// CompositeReport 最终合成报告，构造后不再修改
type CompositeReport struct {
	Overview      Overview         `json:"overview"`
	ICEMatrix     []ICETask        `json:"ice_matrix"`
	AlertRadar    AlertRadar       `json:"alert_radar"`
	Opportunities OpportunityDonut `json:"opportunity_donut"`
	InsightCards  []InsightCard    `json:"insight_cards"`
	Playbooks     []Playbook       `json:"playbooks"`
	ROIProof      ROIProof         `json:"roi_proof"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// Compose 合并七个板块，generatedAt 应在所有生成任务结束后取值
func Compose(s Sections, generatedAt time.Time) *CompositeReport {
	return &CompositeReport{
		Overview:      s.Overview,
		ICEMatrix:     s.ICEMatrix,
		AlertRadar:    s.AlertRadar,
		Opportunities: s.Opportunities,
		InsightCards:  s.InsightCards,
		Playbooks:     s.Playbooks,
		ROIProof:      s.ROIProof,
		GeneratedAt:   generatedAt.UTC(),
	}
}
