package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/site_radar/internal/config"
	"github.com/iWorld-y/site_radar/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "site_radar",
	Short: "Analyze a company website and propose AI use cases",
	Long: `site_radar crawls a company website, asks an LLM for a company and
market analysis, proposes AI/ML use cases with matching datasets and renders
the results as PDF and HTML reports.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("无法加载配置文件: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("配置错误: %w", err)
		}
		if err := logger.InitLogger(c.Log.Level, c.Log.File); err != nil {
			return fmt.Errorf("无法初始化日志: %w", err)
		}
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "config file path")
	rootCmd.AddCommand(analyzeCmd, serveCmd)
}
