package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/growth_radar/app/growth/internal/conf"
	"github.com/iWorld-y/growth_radar/app/growth/internal/domain"
	"github.com/iWorld-y/growth_radar/app/growth/internal/repo"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/engine"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/llm"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/synth"
)

// fakeLedger 模拟积分账本
type fakeLedger struct {
	mu         sync.Mutex
	balances   map[string]int
	balanceErr error
	debitErr   error
	balanceN   int
	debits     []int
}

func (l *fakeLedger) Balance(_ context.Context, userID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balanceN++
	if l.balanceErr != nil {
		return 0, l.balanceErr
	}
	b, ok := l.balances[userID]
	if !ok {
		b = conf.DefaultStartBalance
		l.balances[userID] = b
	}
	return b, nil
}

func (l *fakeLedger) Debit(_ context.Context, userID string, amount int, _ string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.debitErr != nil {
		return l.debitErr
	}
	if l.balances[userID] < amount {
		return repo.ErrInsufficientBalance
	}
	l.balances[userID] -= amount
	l.debits = append(l.debits, amount)
	return nil
}

// fakeHistory 模拟历史仓库
type fakeHistory struct {
	mu      sync.Mutex
	records []*domain.HistoryRecord
	err     error
}

func (h *fakeHistory) Record(_ context.Context, rec *domain.HistoryRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, rec)
	return nil
}

func (h *fakeHistory) List(context.Context, string, int, int) ([]*domain.HistorySummary, int, error) {
	return nil, 0, nil
}

func (h *fakeHistory) Get(context.Context, string, string) (*domain.HistoryRecord, error) {
	return nil, domain.ErrHistoryNotFound()
}

type countingFetcher struct {
	calls   atomic.Int32
	payload string
	err     error
}

func (f *countingFetcher) Fetch(context.Context, string) (json.RawMessage, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.payload), nil
}

type harness struct {
	ledger  *fakeLedger
	history *fakeHistory
	yt      *countingFetcher
	so      *countingFetcher
	nw      *countingFetcher
	gen     atomic.Int32
	uc      *GrowthUseCase
}

func newHarness(balances map[string]int) *harness {
	h := &harness{
		ledger:  &fakeLedger{balances: balances},
		history: &fakeHistory{},
		yt:      &countingFetcher{payload: `{"channel":{"statistics":{"subscriberCount":"10","viewCount":"100","videoCount":"2"}}}`},
		so:      &countingFetcher{payload: `{"hashtags":[],"engagement":{"average_likes":100,"average_retweets":20,"trending_score":75}}`},
		nw:      &countingFetcher{payload: `{"articles":[{"title":"a"}],"totalResults":3}`},
	}
	gen := llm.GeneratorFunc(func(context.Context, string) (string, error) {
		h.gen.Add(1)
		return "this is not json", nil
	})
	eng := engine.New(engine.Components{
		YouTube: h.yt,
		Social:  h.so,
		News:    h.nw,
		Store:   source.NewMemoryStore(),
		TTL:     time.Hour,
		Synth:   synth.NewEngine(gen, nil, time.Second),
	})
	h.uc = NewGrowthUseCase(&conf.Growth{}, h.ledger, h.history, eng, log.DefaultLogger)
	return h
}

func (h *harness) externalCalls() int32 {
	return h.yt.calls.Load() + h.so.calls.Load() + h.nw.calls.Load() + h.gen.Load()
}

func TestGenerate_SufficientBalance(t *testing.T) {
	h := newHarness(map[string]int{"u1": 400})

	res, err := h.uc.Generate(context.Background(), &domain.GenerateRequest{UserID: "u1", Keywords: "fitness"})
	require.NoError(t, err)

	assert.Equal(t, 380, res.CreditsConsumed)
	assert.Equal(t, 20, res.RemainingCredits)
	assert.Equal(t, []int{380}, h.ledger.debits)
	require.Len(t, h.history.records, 1)
	assert.Equal(t, res.HistoryID, h.history.records[0].ID)
	assert.Equal(t, 380, h.history.records[0].CreditsConsumed)
	assert.Same(t, res.Report, h.history.records[0].Report)
}

func TestGenerate_AllSectionsFallBack(t *testing.T) {
	h := newHarness(map[string]int{"u1": 1000})

	res, err := h.uc.Generate(context.Background(), &domain.GenerateRequest{UserID: "u1", ChannelID: "UC1"})
	require.NoError(t, err)

	want := synth.Fallbacks()
	r := res.Report
	assert.Equal(t, want.Overview, r.Overview)
	assert.Equal(t, want.ICEMatrix, r.ICEMatrix)
	assert.Equal(t, want.AlertRadar, r.AlertRadar)
	assert.Equal(t, want.Opportunities, r.Opportunities)
	assert.Equal(t, want.InsightCards, r.InsightCards)
	assert.Equal(t, want.Playbooks, r.Playbooks)
	assert.Equal(t, want.ROIProof, r.ROIProof)
	assert.EqualValues(t, 7, h.gen.Load())
}

func TestGenerate_InsufficientBalance(t *testing.T) {
	h := newHarness(map[string]int{"u1": 100})

	_, err := h.uc.Generate(context.Background(), &domain.GenerateRequest{UserID: "u1", ChannelID: "UC1", Keywords: "fitness"})
	require.Error(t, err)

	se := kerrors.FromError(err)
	assert.EqualValues(t, domain.StatusPaymentRequired, se.Code)
	assert.Equal(t, domain.ReasonInsufficientCredits, se.Reason)
	assert.Equal(t, map[string]string{"required": "380", "available": "100", "missing": "280"}, se.Metadata)

	assert.Zero(t, h.externalCalls())
	assert.Empty(t, h.ledger.debits)
	assert.Empty(t, h.history.records)
}

func TestGenerate_LazyProvisioningStillInsufficient(t *testing.T) {
	h := newHarness(map[string]int{})

	_, err := h.uc.Generate(context.Background(), &domain.GenerateRequest{UserID: "new-user", Keywords: "fitness"})
	se := kerrors.FromError(err)
	assert.Equal(t, domain.ReasonInsufficientCredits, se.Reason)
	assert.Equal(t, conf.DefaultStartBalance, h.ledger.balances["new-user"])
}

func TestGenerate_ValidationNeverReachesLedger(t *testing.T) {
	cases := []*domain.GenerateRequest{
		{ChannelID: "UC1"},
		{UserID: "   ", Keywords: "fitness"},
		{UserID: "u1"},
		{UserID: "u1", ChannelID: " ", Keywords: "\t"},
	}
	for _, req := range cases {
		h := newHarness(map[string]int{"u1": 1000})
		_, err := h.uc.Generate(context.Background(), req)

		se := kerrors.FromError(err)
		assert.EqualValues(t, 400, se.Code, "request %+v", req)
		assert.Equal(t, domain.ReasonInvalidRequest, se.Reason)
		assert.Zero(t, h.ledger.balanceN)
		assert.Zero(t, h.externalCalls())
	}
}

func TestGenerate_DebitFailureStillReturnsReport(t *testing.T) {
	h := newHarness(map[string]int{"u1": 400})
	h.ledger.debitErr = errors.New("connection reset")

	res, err := h.uc.Generate(context.Background(), &domain.GenerateRequest{UserID: "u1", Keywords: "fitness"})
	require.NoError(t, err)
	assert.Equal(t, 20, res.RemainingCredits)
	assert.NotNil(t, res.Report)
	assert.Len(t, h.history.records, 1)
}

func TestGenerate_HistoryFailureIsSilent(t *testing.T) {
	h := newHarness(map[string]int{"u1": 400})
	h.history.err = errors.New("disk full")

	res, err := h.uc.Generate(context.Background(), &domain.GenerateRequest{UserID: "u1", Keywords: "fitness"})
	require.NoError(t, err)
	assert.Equal(t, 20, res.RemainingCredits)
	assert.Equal(t, []int{380}, h.ledger.debits)
}

func TestGenerate_NewsProviderFailure(t *testing.T) {
	h := newHarness(map[string]int{"u1": 400})
	h.nw.err = errors.New("news api unreachable")

	res, err := h.uc.Generate(context.Background(), &domain.GenerateRequest{UserID: "u1", Keywords: "fitness"})
	require.NoError(t, err)
	assert.NotNil(t, res.Report)
	assert.EqualValues(t, 1, h.nw.calls.Load())
}

func TestGenerate_LedgerLookupFailure(t *testing.T) {
	h := newHarness(map[string]int{})
	h.ledger.balanceErr = errors.New("db down")

	_, err := h.uc.Generate(context.Background(), &domain.GenerateRequest{UserID: "u1", Keywords: "fitness"})
	se := kerrors.FromError(err)
	assert.EqualValues(t, 500, se.Code)
	assert.Equal(t, "db down", se.Metadata["details"])
	assert.Zero(t, h.externalCalls())
}

func TestGenerate_CanceledRequestRunsToCompletion(t *testing.T) {
	h := newHarness(map[string]int{"u1": 400})
	ctx, cancel := context.WithCancel(context.Background())

	const overview = `{"status":"good","score":72,"summary":"Steady growth","key_metrics":[{"label":"Views","value":"100","trend":"up"}]}`
	gen := llm.GeneratorFunc(func(gctx context.Context, prompt string) (string, error) {
		cancel()
		select {
		case <-gctx.Done():
			return "", gctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
		if strings.HasPrefix(prompt, "Analyze these KPIs") {
			return overview, nil
		}
		return "not json", nil
	})
	h.uc.engine = engine.New(engine.Components{
		Social: h.so, News: h.nw, YouTube: h.yt,
		Synth: synth.NewEngine(gen, nil, time.Second),
	})

	res, err := h.uc.Generate(ctx, &domain.GenerateRequest{UserID: "u1", Keywords: "fitness"})
	require.NoError(t, err)
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, "Steady growth", res.Report.Overview.Summary)
	assert.NotEqual(t, synth.FallbackOverview(), res.Report.Overview)
	assert.Equal(t, 20, res.RemainingCredits)
	assert.Equal(t, []int{380}, h.ledger.debits)
	assert.Len(t, h.history.records, 1)
}

func TestQuota(t *testing.T) {
	h := newHarness(map[string]int{"u1": 500})
	q, err := h.uc.Quota(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &domain.Quota{UserID: "u1", Credits: 500, Cost: 380}, q)
}
