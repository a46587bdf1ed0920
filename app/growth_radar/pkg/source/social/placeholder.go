package social

import (
	"context"
	"encoding/json"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source"
)

// Placeholder 在没有接入真实社交平台接口前使用的数据源。
// 数值随机，但结构与真实接口保持一致，替换时编排层无需改动。
type Placeholder struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPlaceholder src 为 nil 时按当前时间取种子
func NewPlaceholder(src rand.Source) *Placeholder {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1)
	}
	return &Placeholder{rnd: rand.New(src)}
}

var _ source.Fetcher = (*Placeholder)(nil)

func (p *Placeholder) Fetch(_ context.Context, keywords string) (json.RawMessage, error) {
	p.mu.Lock()
	payload := model.SocialPayload{
		Hashtags: []model.Hashtag{
			{Tag: keywords, Volume: p.rnd.IntN(50000) + 10000, Growth: "+15%"},
			{Tag: keywords + "tips", Volume: p.rnd.IntN(20000) + 5000, Growth: "+8%"},
		},
		Engagement: model.Engagement{
			AverageLikes:    p.rnd.IntN(500) + 100,
			AverageRetweets: p.rnd.IntN(100) + 20,
			TrendingScore:   math.Round((p.rnd.Float64()*30+70)*10) / 10,
		},
	}
	p.mu.Unlock()

	return json.Marshal(payload)
}
