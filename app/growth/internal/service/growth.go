package service

import (
	"context"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/growth_radar/app/growth/internal/domain"
	"github.com/iWorld-y/growth_radar/app/growth/internal/usecase"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/model"
)

const (
	OperationGenerateReport = "/growth.v1.Growth/GenerateReport"
	OperationListHistory    = "/growth.v1.Growth/ListHistory"
	OperationGetHistory     = "/growth.v1.Growth/GetHistory"
	OperationGetCredits     = "/growth.v1.Growth/GetCredits"
)

type GrowthService struct {
	ucGrowth  *usecase.GrowthUseCase
	ucHistory *usecase.HistoryUseCase
	log       *log.Helper
}

func NewGrowthService(ucGrowth *usecase.GrowthUseCase, ucHistory *usecase.HistoryUseCase, logger log.Logger) *GrowthService {
	return &GrowthService{
		ucGrowth:  ucGrowth,
		ucHistory: ucHistory,
		log:       log.NewHelper(logger),
	}
}

type GenerateReportRequest struct {
	UserID    string `json:"userId"`
	ChannelID string `json:"channelId"`
	Keywords  string `json:"keywords"`
}

type GenerateReportReply struct {
	Success          bool                   `json:"success"`
	CreditsConsumed  int                    `json:"creditsConsumed"`
	RemainingCredits int                    `json:"remainingCredits"`
	HistoryID        string                 `json:"historyId"`
	Data             *model.CompositeReport `json:"data"`
}

type HistorySummary struct {
	ID              string    `json:"id"`
	CreditsConsumed int       `json:"creditsConsumed"`
	Status          string    `json:"status"`
	Score           float64   `json:"score"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ListHistoryReply struct {
	Reports []*HistorySummary `json:"reports"`
	Total   int               `json:"total"`
}

type GetHistoryReply struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"userId"`
	CreditsConsumed int                    `json:"creditsConsumed"`
	CreatedAt       time.Time              `json:"createdAt"`
	Data            *model.CompositeReport `json:"data"`
}

type CreditsReply struct {
	UserID  string `json:"userId"`
	Credits int    `json:"credits"`
	Cost    int    `json:"cost"`
}

// ErrorReply 错误响应体，402 时附带 required/available/missing，5xx 时附带 details
type ErrorReply struct {
	Error     string `json:"error"`
	Required  *int   `json:"required,omitempty"`
	Available *int   `json:"available,omitempty"`
	Missing   *int   `json:"missing,omitempty"`
	Details   string `json:"details,omitempty"`
}

// GenerateReport POST /v1/growth/report
func (s *GrowthService) GenerateReport(ctx http.Context) error {
	var in GenerateReportRequest
	if err := ctx.Bind(&in); err != nil {
		return s.writeError(ctx, domain.ErrInvalidRequest("invalid request body"))
	}
	http.SetOperation(ctx, OperationGenerateReport)
	h := ctx.Middleware(func(c context.Context, req any) (any, error) {
		r := req.(*GenerateReportRequest)
		res, err := s.ucGrowth.Generate(c, &domain.GenerateRequest{
			UserID:    r.UserID,
			ChannelID: r.ChannelID,
			Keywords:  r.Keywords,
		})
		if err != nil {
			return nil, err
		}
		return &GenerateReportReply{
			Success:          true,
			CreditsConsumed:  res.CreditsConsumed,
			RemainingCredits: res.RemainingCredits,
			HistoryID:        res.HistoryID,
			Data:             res.Report,
		}, nil
	})
	out, err := h(ctx, &in)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

// ListHistory GET /v1/growth/history?userId=&page=&pageSize=
func (s *GrowthService) ListHistory(ctx http.Context) error {
	q := ctx.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	userID := q.Get("userId")

	http.SetOperation(ctx, OperationListHistory)
	h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		list, total, err := s.ucHistory.List(c, userID, page, pageSize)
		if err != nil {
			return nil, err
		}
		reply := &ListHistoryReply{Reports: make([]*HistorySummary, 0, len(list)), Total: total}
		for _, r := range list {
			reply.Reports = append(reply.Reports, &HistorySummary{
				ID:              r.ID,
				CreditsConsumed: r.CreditsConsumed,
				Status:          r.OverviewStatus,
				Score:           r.OverviewScore,
				CreatedAt:       r.CreatedAt,
			})
		}
		return reply, nil
	})
	out, err := h(ctx, nil)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

// GetHistory GET /v1/growth/history/{id}?userId=
func (s *GrowthService) GetHistory(ctx http.Context) error {
	id := ctx.Vars().Get("id")
	userID := ctx.Query().Get("userId")

	http.SetOperation(ctx, OperationGetHistory)
	h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		rec, err := s.ucHistory.Get(c, id, userID)
		if err != nil {
			return nil, err
		}
		return &GetHistoryReply{
			ID:              rec.ID,
			UserID:          rec.UserID,
			CreditsConsumed: rec.CreditsConsumed,
			CreatedAt:       rec.CreatedAt,
			Data:            rec.Report,
		}, nil
	})
	out, err := h(ctx, nil)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

// GetCredits GET /v1/credits/{userId}
func (s *GrowthService) GetCredits(ctx http.Context) error {
	userID := ctx.Vars().Get("userId")

	http.SetOperation(ctx, OperationGetCredits)
	h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		q, err := s.ucGrowth.Quota(c, userID)
		if err != nil {
			return nil, err
		}
		return &CreditsReply{UserID: q.UserID, Credits: q.Credits, Cost: q.Cost}, nil
	})
	out, err := h(ctx, nil)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

func (s *GrowthService) writeError(ctx http.Context, err error) error {
	se := errors.FromError(err)
	reply := &ErrorReply{Error: se.Message}

	switch {
	case se.Reason == domain.ReasonInsufficientCredits:
		reply.Required = metaInt(se.Metadata, "required")
		reply.Available = metaInt(se.Metadata, "available")
		reply.Missing = metaInt(se.Metadata, "missing")
	case se.Code >= nethttp.StatusInternalServerError:
		reply.Details = se.Metadata["details"]
		s.log.WithContext(ctx).Errorf("请求处理失败: %v", err)
	}
	return ctx.JSON(int(se.Code), reply)
}

func metaInt(md map[string]string, key string) *int {
	v, err := strconv.Atoi(md[key])
	if err != nil {
		return nil
	}
	return &v
}
