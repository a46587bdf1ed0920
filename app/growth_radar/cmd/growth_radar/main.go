package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/config"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/engine"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/logger"
	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/source"
)

func main() {
	var (
		cfgPath string
		req     engine.Request
	)

	root := &cobra.Command{
		Use:          "growth_radar",
		Short:        "Growth report engine (dry run, no billing)",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "engine config file")
	root.PersistentFlags().StringVar(&req.AccountID, "account", "cli", "account id used as cache namespace")
	root.PersistentFlags().StringVar(&req.ChannelID, "channel", "", "video channel id")
	root.PersistentFlags().StringVar(&req.Keywords, "keywords", "", "keywords or topic")

	report := &cobra.Command{
		Use:   "report",
		Short: "Fetch sources, generate all sections and print the composite report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cfgPath, req)
			if err != nil {
				return err
			}
			eng, err := engine.NewEngine(cmd.Context(), cfg, source.NewMemoryStore())
			if err != nil {
				return err
			}
			return printJSON(eng.Analyze(cmd.Context(), req).Report)
		},
	}

	contextCmd := &cobra.Command{
		Use:   "context",
		Short: "Fetch sources and print the analysis context only",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cfgPath, req)
			if err != nil {
				return err
			}
			// 只抓取数据源，不需要文本生成的配置
			eng, err := engine.NewCollector(cfg, source.NewMemoryStore())
			if err != nil {
				return err
			}
			_, actx := eng.BuildContext(cmd.Context(), req)
			return printJSON(actx)
		},
	}

	root.AddCommand(report, contextCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// setup 校验参数并加载配置和日志，CLI 只使用进程内缓存
func setup(cfgPath string, req engine.Request) (*config.Config, error) {
	if req.ChannelID == "" && req.Keywords == "" {
		return nil, fmt.Errorf("--channel or --keywords is required")
	}

	// 1. 加载配置
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("无法加载配置文件: %w", err)
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Printf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动增长雷达...")
	return cfg, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
