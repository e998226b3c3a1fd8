package main

import (
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/site_radar/internal/server"
	"github.com/iWorld-y/site_radar/pkg/engine"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form and analysis API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	id, _ := os.Hostname()
	kl := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	eng, err := engine.NewFromConfig(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("初始化引擎失败: %w", err)
	}

	srv := server.NewHTTPServer(server.Options{
		Addr:    cfg.Server.Addr,
		Timeout: cfg.ServerTimeout(),
	}, eng, kl)

	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(kl),
		kratos.Server(srv),
	)
	return app.Run()
}
