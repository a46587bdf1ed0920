package synth

import (
	"encoding/json"
	"fmt"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

// jsonOnlyDirective 追加在每个提示词末尾
const jsonOnlyDirective = "\n\nRespond ONLY with valid JSON, no markdown and no extra prose."

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func overviewPrompt(c model.AnalysisContext) string {
	return fmt.Sprintf(`Analyze these KPIs and write an executive summary of the current state:

%s
Return a JSON object:
{
  "status": "excellent|good|warning|critical",
  "score": 0-100,
  "summary": "1-2 line executive summary",
  "key_metrics": [
    {"label": "string", "value": "string", "trend": "up|down|stable"}
  ]
}`, c.Describe()) + jsonOnlyDirective
}

func iceMatrixPrompt(c model.AnalysisContext) string {
	return fmt.Sprintf(`Evaluate SEO and growth tasks for this account and rank them by Impact, Confidence and Ease.

Context: %s

Return a JSON array of tasks:
[
  {
    "task": "Task name",
    "impact": 1-10,
    "confidence": 1-10,
    "ease": 1-10,
    "ice_score": impact * confidence * ease,
    "description": "Short explanation",
    "estimated_roi": "Expected return"
  }
]

Include at least 5 prioritized tasks.`, mustJSON(c.Metrics)) + jsonOnlyDirective
}

func alertRadarPrompt(c model.AnalysisContext) string {
	return fmt.Sprintf(`Detect risk and opportunity patterns in these metrics and produce predictive alerts.

Data: %s

Return a JSON object:
{
  "alerts": [
    {
      "type": "risk|opportunity|warning",
      "severity": "low|medium|high|critical",
      "category": "SEO|Content|Engagement|Technical",
      "message": "What the problem or opportunity is",
      "action": "Recommended action",
      "impact": "Estimated impact"
    }
  ],
  "radar_data": {
    "SEO": 0-100,
    "Content": 0-100,
    "Engagement": 0-100,
    "Technical": 0-100,
    "Growth": 0-100
  }
}`, mustJSON(c)) + jsonOnlyDirective
}

func opportunitiesPrompt(c model.AnalysisContext) string {
	return fmt.Sprintf(`Extract emerging keywords and topics with high traffic potential.

Context: %s
Trending: %s

Return a JSON object:
{
  "categories": [
    {
      "name": "Opportunity category",
      "potential_traffic": "numeric estimate",
      "difficulty": "low|medium|high",
      "keywords": ["keyword1", "keyword2"],
      "percentage": 0-100
    }
  ]
}

Include at least 4 categories.`, mustJSON(c), mustJSON(c.TrendingHashtags)) + jsonOnlyDirective
}

func insightCardsPrompt(c model.AnalysisContext) string {
	return fmt.Sprintf(`Summarize the main problems and opportunities of each area as executive one-liners.

Data: %s

Return a JSON array of insights:
[
  {
    "title": "Insight title",
    "description": "1-2 line explanation",
    "type": "problem|opportunity|tip",
    "priority": "high|medium|low",
    "stat": "Key related statistic",
    "action": "Call to action or next step"
  }
]

Include 6-8 varied insights.`, mustJSON(c)) + jsonOnlyDirective
}

func playbooksPrompt(c model.AnalysisContext) string {
	return fmt.Sprintf(`Write step-by-step playbooks for the most important opportunities.

Context: %s

Return a JSON array:
[
  {
    "title": "Playbook name",
    "description": "What it achieves",
    "estimated_impact": "Expected impact",
    "duration": "Estimated time",
    "steps": [
      {
        "step": 1,
        "title": "Step name",
        "description": "What to do",
        "resources": ["resource1", "resource2"]
      }
    ],
    "unlock_cost": 150
  }
]

Include 2-3 premium playbooks.`, mustJSON(c)) + jsonOnlyDirective
}

func roiProofPrompt(c model.AnalysisContext) string {
	return fmt.Sprintf(`Estimate the potential revenue gap if the current metrics were optimized.

Current metrics: %s

Return a JSON object:
{
  "current_performance": {
    "monthly_views": "estimate",
    "ctr": "estimated percentage",
    "estimated_revenue": "current $ estimate"
  },
  "optimized_performance": {
    "monthly_views": "improved estimate",
    "ctr": "improved percentage",
    "estimated_revenue": "improved $ estimate"
  },
  "opportunity_gap": {
    "views_gain": "difference in views",
    "revenue_gain": "$ being left on the table",
    "percentage_improvement": "possible %% improvement"
  },
  "case_studies": [
    {
      "before": "Initial state",
      "after": "Final state",
      "improvement": "%% or $ improvement",
      "timeframe": "Time it took"
    }
  ]
}`, mustJSON(c.Metrics)) + jsonOnlyDirective
}
