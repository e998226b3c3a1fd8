package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/site_radar/internal/logger"
	"github.com/iWorld-y/site_radar/pkg/engine"
)

var (
	outDir     string
	jsonOutput bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Run one analysis and write the reports",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: output.dir from config)")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full result as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := engine.NewFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("初始化引擎失败: %w", err)
	}

	res, err := eng.Run(ctx, engine.RunOptions{
		Website:   args[0],
		OutputDir: outDir,
		ProgressCallback: func(status string, progress int) {
			logger.Log.Infof("[%3d%%] %s", progress, status)
		},
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analysis of %s complete: %d use cases, %d competitors\n",
		res.Website, len(res.UseCases), len(res.Competitors))
	fmt.Fprintf(out, "  %s\n  %s\n  %s\n  %s\n",
		res.Files.CompanyPDF, res.Files.UseCasesPDF, res.Files.HTML, res.Files.Bundle)
	return nil
}
