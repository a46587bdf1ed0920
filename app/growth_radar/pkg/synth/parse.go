package synth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

var errEmpty = errors.New("empty section")

// cleanJSON 去掉模型输出中可能包裹的 markdown 代码块
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func decodeObject(text string, v any) error {
	raw := cleanJSON(text)
	if !strings.HasPrefix(raw, "{") {
		return fmt.Errorf("expected json object")
	}
	return json.Unmarshal([]byte(raw), v)
}

// decodeList 数组板块也接受 {"tasks": [...]} 这类单字段包裹
func decodeList[T any](text string) ([]T, error) {
	raw := []byte(cleanJSON(text))
	if len(raw) == 0 {
		return nil, errEmpty
	}
	if raw[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(wrapper))
		for k, v := range wrapper {
			if bytes.HasPrefix(bytes.TrimSpace(v), []byte("[")) {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("expected json array")
		}
		sort.Strings(keys)
		raw = wrapper[keys[0]]
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errEmpty
	}
	return out, nil
}

// 列表板块的最少条目数，不足时按失败处理走兜底
const (
	minICETasks     = 5
	minCategories   = 4
	minInsightCards = 6
	minPlaybooks    = 2
)

func atLeast(n, want int) error {
	if n < want {
		return fmt.Errorf("section has %d items, need at least %d", n, want)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func oneOf(v string, allowed ...string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return ""
}

func parseOverview(text string) (model.Overview, error) {
	var o model.Overview
	if err := decodeObject(text, &o); err != nil {
		return o, err
	}
	if strings.TrimSpace(o.Summary) == "" || len(o.KeyMetrics) == 0 {
		return o, errEmpty
	}
	o.Score = clamp(o.Score, 0, 100)
	if o.Status = oneOf(o.Status, "excellent", "good", "warning", "critical"); o.Status == "" {
		o.Status = statusFromScore(o.Score)
	}
	for i := range o.KeyMetrics {
		if t := oneOf(o.KeyMetrics[i].Trend, "up", "down", "stable"); t != "" {
			o.KeyMetrics[i].Trend = t
		} else {
			o.KeyMetrics[i].Trend = "stable"
		}
	}
	return o, nil
}

func statusFromScore(score float64) string {
	switch {
	case score >= 85:
		return "excellent"
	case score >= 65:
		return "good"
	case score >= 40:
		return "warning"
	default:
		return "critical"
	}
}

// parseICEMatrix 以 impact*confidence*ease 重新计算得分并降序排列
func parseICEMatrix(text string) ([]model.ICETask, error) {
	tasks, err := decodeList[model.ICETask](text)
	if err != nil {
		return nil, err
	}
	out := tasks[:0]
	for _, t := range tasks {
		if strings.TrimSpace(t.Task) == "" {
			continue
		}
		t.Impact = clamp(t.Impact, 1, 10)
		t.Confidence = clamp(t.Confidence, 1, 10)
		t.Ease = clamp(t.Ease, 1, 10)
		t.ICEScore = t.Impact * t.Confidence * t.Ease
		out = append(out, t)
	}
	if err := atLeast(len(out), minICETasks); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ICEScore > out[j].ICEScore
	})
	return out, nil
}

func parseAlertRadar(text string) (model.AlertRadar, error) {
	var a model.AlertRadar
	if err := decodeObject(text, &a); err != nil {
		return a, err
	}
	if len(a.Alerts) == 0 {
		return a, errEmpty
	}
	r := &a.RadarData
	r.SEO = clamp(r.SEO, 0, 100)
	r.Content = clamp(r.Content, 0, 100)
	r.Engagement = clamp(r.Engagement, 0, 100)
	r.Technical = clamp(r.Technical, 0, 100)
	r.Growth = clamp(r.Growth, 0, 100)
	return a, nil
}

func parseOpportunities(text string) (model.OpportunityDonut, error) {
	var d model.OpportunityDonut
	if err := decodeObject(text, &d); err != nil {
		return d, err
	}
	if len(d.Categories) == 0 {
		return d, errEmpty
	}
	if err := atLeast(len(d.Categories), minCategories); err != nil {
		return d, err
	}
	for i := range d.Categories {
		c := &d.Categories[i]
		c.Percentage = clamp(c.Percentage, 0, 100)
		if c.Keywords == nil {
			c.Keywords = []string{}
		}
	}
	return d, nil
}

const maxInsightCards = 8

func parseInsightCards(text string) ([]model.InsightCard, error) {
	cards, err := decodeList[model.InsightCard](text)
	if err != nil {
		return nil, err
	}
	if err := atLeast(len(cards), minInsightCards); err != nil {
		return nil, err
	}
	if len(cards) > maxInsightCards {
		cards = cards[:maxInsightCards]
	}
	return cards, nil
}

const maxPlaybooks = 3

func parsePlaybooks(text string) ([]model.Playbook, error) {
	books, err := decodeList[model.Playbook](text)
	if err != nil {
		return nil, err
	}
	if err := atLeast(len(books), minPlaybooks); err != nil {
		return nil, err
	}
	if len(books) > maxPlaybooks {
		books = books[:maxPlaybooks]
	}
	for i := range books {
		b := &books[i]
		if b.UnlockCost < 0 {
			b.UnlockCost = 0
		}
		if b.Steps == nil {
			b.Steps = []model.PlaybookStep{}
		}
		for j := range b.Steps {
			if b.Steps[j].Step <= 0 {
				b.Steps[j].Step = j + 1
			}
		}
	}
	return books, nil
}

func parseROIProof(text string) (model.ROIProof, error) {
	var r model.ROIProof
	if err := decodeObject(text, &r); err != nil {
		return r, err
	}
	if r.CurrentPerformance == (model.Performance{}) && r.OptimizedPerformance == (model.Performance{}) {
		return r, errEmpty
	}
	if r.CaseStudies == nil {
		r.CaseStudies = []model.CaseStudy{}
	}
	return r, nil
}
