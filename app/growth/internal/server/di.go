package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/growth_radar/app/growth/internal/data"
	"github.com/iWorld-y/growth_radar/app/growth/internal/service"
	"github.com/iWorld-y/growth_radar/app/growth/internal/usecase"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/engine"
)

// ProviderSet 是增长报告服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewGrowthEngine,
	wire.Bind(new(usecase.ReportEngine), new(*engine.Engine)),

	// Data providers
	data.NewData,
	data.NewCreditLedger,
	data.NewHistoryRepo,
	data.NewCacheStore,

	// UseCase providers
	usecase.NewGrowthUseCase,
	usecase.NewHistoryUseCase,

	// Service providers
	service.NewGrowthService,
)
