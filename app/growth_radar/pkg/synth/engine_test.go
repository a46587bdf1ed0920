package synth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/llm"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

var testContext = model.AnalysisContext{
	Keywords: "fitness",
	Metrics: model.Metrics{
		YouTube: model.YouTubeMetrics{Available: true, Subscribers: 1200, TotalViews: 50000, VideoCount: 25},
	},
	TrendingHashtags: []model.Hashtag{{Tag: "fitness", Volume: 1000, Growth: "+15%"}},
}

// repeatItems 把同一个 JSON 元素重复 n 次拼成数组内容
func repeatItems(item string, n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = item
	}
	return strings.Join(items, ",")
}

// 按提示词开头区分板块
var validResponses = map[string]string{
	"Analyze these KPIs": "```json\n" + `{"status":"GOOD","score":140,"summary":"Solid","key_metrics":[{"label":"Views","value":50000,"trend":"up"}]}` + "\n```",
	"Evaluate SEO": `[{"task":"A","impact":2,"confidence":2,"ease":2,"ice_score":999},{"task":"B","impact":10,"confidence":10,"ease":20},` +
		repeatItems(`{"task":"C","impact":1,"confidence":1,"ease":1}`, 3) + `]`,
	"Detect risk":        `{"alerts":[{"type":"risk","severity":"high","category":"SEO","message":"m","action":"a","impact":"i"}],"radar_data":{"SEO":120,"Content":-5,"Engagement":40,"Technical":60,"Growth":80}}`,
	"Extract emerging":   `{"categories":[` + repeatItems(`{"name":"n","potential_traffic":12000,"difficulty":"low","keywords":["k"],"percentage":40}`, 4) + `]}`,
	"Summarize the main": `{"insights":[` + repeatItems(`{"title":"t","description":"d","type":"tip","priority":"high","stat":"s","action":"a"}`, 6) + `]}`,
	"Write step-by-step": `[` + repeatItems(`{"title":"p","description":"d","estimated_impact":"x","duration":"1w","steps":[{"title":"s1"},{"title":"s2"}],"unlock_cost":150}`, 2) + `]`,
	"Estimate the":       `{"current_performance":{"monthly_views":"1000","ctr":"2%","estimated_revenue":"$10"},"optimized_performance":{"monthly_views":"2000","ctr":"4%","estimated_revenue":"$20"},"opportunity_gap":{"views_gain":"1000","revenue_gain":"$10","percentage_improvement":"100%"}}`,
}

func responseFor(prompt string) string {
	for prefix, resp := range validResponses {
		if strings.HasPrefix(prompt, prefix) {
			return resp
		}
	}
	return "not json"
}

func TestRun_AllMalformedUsesFallbacks(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := llm.GeneratorFunc(func(context.Context, string) (string, error) {
		return "Sorry, I cannot help with that.", nil
	})
	res := NewEngine(gen, nil, time.Second).Run(context.Background(), testContext)

	assert.Equal(t, Fallbacks(), res.Sections)
	require.Len(t, res.Outcomes, len(model.AllSections))
	for i, o := range res.Outcomes {
		assert.Equal(t, model.AllSections[i], o.Section)
		assert.True(t, o.Fallback)
		assert.Error(t, o.Err)
	}
	assert.Equal(t, 7, res.Fallbacks())
}

func TestRun_ValidResponsesAreNormalized(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := llm.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		return responseFor(prompt), nil
	})
	res := NewEngine(gen, nil, time.Second).Run(context.Background(), testContext)
	require.Zero(t, res.Fallbacks(), "outcomes: %+v", res.Outcomes)

	s := res.Sections
	assert.Equal(t, "good", s.Overview.Status)
	assert.Equal(t, 100.0, s.Overview.Score)
	assert.Equal(t, model.FlexString("50000"), s.Overview.KeyMetrics[0].Value)

	require.Len(t, s.ICEMatrix, 5)
	assert.Equal(t, "B", s.ICEMatrix[0].Task)
	assert.Equal(t, 1000.0, s.ICEMatrix[0].ICEScore)
	assert.Equal(t, 8.0, s.ICEMatrix[1].ICEScore)
	assert.Equal(t, 1.0, s.ICEMatrix[4].ICEScore)

	assert.Equal(t, 100.0, s.AlertRadar.RadarData.SEO)
	assert.Equal(t, 0.0, s.AlertRadar.RadarData.Content)

	assert.Equal(t, model.FlexString("12000"), s.Opportunities.Categories[0].PotentialTraffic)
	assert.Len(t, s.InsightCards, 6)
	assert.Equal(t, 2, s.Playbooks[0].Steps[1].Step)
	assert.NotNil(t, s.ROIProof.CaseStudies)
}

func TestRun_OneFailureDoesNotAffectOthers(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := llm.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		if strings.HasPrefix(prompt, "Detect risk") {
			return "", errors.New("upstream 500")
		}
		return responseFor(prompt), nil
	})
	res := NewEngine(gen, nil, time.Second).Run(context.Background(), testContext)

	assert.Equal(t, 1, res.Fallbacks())
	assert.True(t, res.Outcomes[2].Fallback)
	assert.Equal(t, FallbackAlertRadar(), res.Sections.AlertRadar)
	assert.Equal(t, "good", res.Sections.Overview.Status)
}

func TestRun_TimeoutFallsBack(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := llm.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	start := time.Now()
	res := NewEngine(gen, nil, 50*time.Millisecond).Run(context.Background(), testContext)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 7, res.Fallbacks())
	for _, o := range res.Outcomes {
		assert.ErrorIs(t, o.Err, context.DeadlineExceeded)
	}
}

func TestRun_TasksRunConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t)

	var (
		inFlight atomic.Int32
		once     sync.Once
		all      = make(chan struct{})
	)
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		if inFlight.Add(1) == int32(len(model.AllSections)) {
			once.Do(func() { close(all) })
		}
		select {
		case <-all:
			return responseFor(prompt), nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
	res := NewEngine(gen, nil, 2*time.Second).Run(context.Background(), testContext)
	assert.Zero(t, res.Fallbacks())
}

func TestPrompts_EndWithJSONDirective(t *testing.T) {
	var mu sync.Mutex
	var prompts []string
	gen := llm.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		mu.Lock()
		prompts = append(prompts, prompt)
		mu.Unlock()
		return "", errors.New("skip")
	})
	NewEngine(gen, nil, time.Second).Run(context.Background(), testContext)

	require.Len(t, prompts, 7)
	for _, p := range prompts {
		assert.True(t, strings.HasSuffix(p, jsonOnlyDirective))
		assert.NotContains(t, p, "%!", "格式化占位符未正确转义")
	}
}

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(120, 3)
	assert.InDelta(t, 2.0, float64(l.Limit()), 1e-9)
	assert.Equal(t, 3, l.Burst())
}
