package synth

import "github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"

// 各板块生成失败时的固定兜底值，每次调用返回新的副本

func FallbackOverview() model.Overview {
	return model.Overview{
		Status:  "good",
		Score:   75,
		Summary: "Your channel shows stable metrics with room to grow",
		KeyMetrics: []model.KeyMetric{
			{Label: "Engagement", Value: "75%", Trend: "stable"},
			{Label: "Reach", Value: "Medium", Trend: "up"},
		},
	}
}

func FallbackICEMatrix() []model.ICETask {
	return []model.ICETask{
		{Task: "Optimize titles and descriptions for target keywords", Impact: 8, Confidence: 8, Ease: 7, ICEScore: 448, Description: "Align metadata with the queries your audience searches for", EstimatedROI: "+10-20% search traffic"},
		{Task: "Publish on a consistent weekly schedule", Impact: 7, Confidence: 8, Ease: 7, ICEScore: 392, Description: "Regular uploads improve recommendation signals", EstimatedROI: "+10% returning viewers"},
		{Task: "Redesign thumbnails for higher CTR", Impact: 8, Confidence: 7, Ease: 6, ICEScore: 336, Description: "Test high-contrast thumbnails with clear focal points", EstimatedROI: "+1-2 pts CTR"},
		{Task: "Cover trending topics in your niche", Impact: 7, Confidence: 6, Ease: 6, ICEScore: 252, Description: "Ride current news and hashtags while interest peaks", EstimatedROI: "Traffic spikes on timely content"},
		{Task: "Cross-promote content on social channels", Impact: 6, Confidence: 6, Ease: 7, ICEScore: 252, Description: "Share clips and highlights where your audience already is", EstimatedROI: "+5-10% referral traffic"},
	}
}

func FallbackAlertRadar() model.AlertRadar {
	return model.AlertRadar{
		Alerts: []model.Alert{
			{Type: "warning", Severity: "medium", Category: "Content", Message: "Not enough data to detect trends with confidence", Action: "Connect more data sources and regenerate the report", Impact: "Unknown"},
		},
		RadarData: model.RadarData{SEO: 50, Content: 50, Engagement: 50, Technical: 50, Growth: 50},
	}
}

func FallbackOpportunities() model.OpportunityDonut {
	return model.OpportunityDonut{
		Categories: []model.OpportunityCategory{
			{Name: "Evergreen tutorials", PotentialTraffic: "Medium", Difficulty: "low", Keywords: []string{"how to", "guide"}, Percentage: 30},
			{Name: "Trending topics", PotentialTraffic: "High", Difficulty: "medium", Keywords: []string{"news", "trends"}, Percentage: 25},
			{Name: "Comparisons and reviews", PotentialTraffic: "Medium", Difficulty: "medium", Keywords: []string{"vs", "review"}, Percentage: 25},
			{Name: "Community questions", PotentialTraffic: "Low", Difficulty: "low", Keywords: []string{"faq", "tips"}, Percentage: 20},
		},
	}
}

func FallbackInsightCards() []model.InsightCard {
	return []model.InsightCard{
		{Title: "Metadata drives discovery", Description: "Titles and descriptions matching search intent lift organic reach.", Type: "tip", Priority: "high", Stat: "Search is a top traffic source", Action: "Review your last 10 titles"},
		{Title: "Consistency beats volume", Description: "A predictable schedule keeps subscribers coming back.", Type: "opportunity", Priority: "medium", Stat: "Weekly cadence", Action: "Plan a 4-week content calendar"},
		{Title: "Thumbnails decide the click", Description: "Low CTR limits how far the algorithm pushes your videos.", Type: "problem", Priority: "high", Stat: "CTR below 4% is a warning sign", Action: "A/B test new thumbnails"},
		{Title: "Engage early comments", Description: "Replies in the first hours boost engagement signals.", Type: "tip", Priority: "medium", Stat: "First 24h matter most", Action: "Reply to the top comments daily"},
		{Title: "Trends are short-lived", Description: "Timely coverage of news in your niche captures spikes.", Type: "opportunity", Priority: "medium", Stat: "Interest peaks within days", Action: "Set up topic alerts"},
		{Title: "Repurpose long content", Description: "Clips extend the reach of each long-form video.", Type: "tip", Priority: "low", Stat: "One video, many formats", Action: "Cut 3 shorts from your next upload"},
	}
}

func FallbackPlaybooks() []model.Playbook {
	return []model.Playbook{
		{
			Title:           "Search optimization sprint",
			Description:     "Improve discoverability of your existing catalog",
			EstimatedImpact: "+15% organic views",
			Duration:        "2 weeks",
			Steps: []model.PlaybookStep{
				{Step: 1, Title: "Keyword research", Description: "List the queries your audience uses", Resources: []string{"Search suggestions", "Trending hashtags"}},
				{Step: 2, Title: "Rewrite metadata", Description: "Update titles, descriptions and tags of top videos", Resources: []string{"Metadata checklist"}},
				{Step: 3, Title: "Measure", Description: "Compare impressions and CTR after 14 days", Resources: []string{"Analytics dashboard"}},
			},
			UnlockCost: 150,
		},
		{
			Title:           "Content calendar",
			Description:     "Build a sustainable publishing rhythm",
			EstimatedImpact: "+10% returning viewers",
			Duration:        "4 weeks",
			Steps: []model.PlaybookStep{
				{Step: 1, Title: "Pick pillars", Description: "Choose 3 recurring content themes", Resources: []string{"Audience survey"}},
				{Step: 2, Title: "Schedule", Description: "Plan one upload per week per pillar rotation", Resources: []string{"Calendar template"}},
			},
			UnlockCost: 150,
		},
	}
}

func FallbackROIProof() model.ROIProof {
	return model.ROIProof{
		CurrentPerformance:   model.Performance{MonthlyViews: "N/A", CTR: "N/A", EstimatedRevenue: "N/A"},
		OptimizedPerformance: model.Performance{MonthlyViews: "N/A", CTR: "N/A", EstimatedRevenue: "N/A"},
		OpportunityGap:       model.OpportunityGap{ViewsGain: "N/A", RevenueGain: "N/A", PercentageImprovement: "N/A"},
		CaseStudies:          []model.CaseStudy{},
	}
}

// Fallbacks 七个板块全部使用兜底值
func Fallbacks() model.Sections {
	return model.Sections{
		Overview:      FallbackOverview(),
		ICEMatrix:     FallbackICEMatrix(),
		AlertRadar:    FallbackAlertRadar(),
		Opportunities: FallbackOpportunities(),
		InsightCards:  FallbackInsightCards(),
		Playbooks:     FallbackPlaybooks(),
		ROIProof:      FallbackROIProof(),
	}
}
