// Package server 提供网页表单与分析接口
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/site_radar/pkg/engine"
	"github.com/iWorld-y/site_radar/pkg/model"
	"github.com/iWorld-y/site_radar/pkg/report"
)

//go:embed assets/*
var assets embed.FS

// Runner 执行一次完整分析
type Runner interface {
	Run(ctx context.Context, opts engine.RunOptions) (*model.Result, error)
	OutputDir() string
}

// Options HTTP 服务参数
type Options struct {
	Addr    string
	Timeout time.Duration
}

// AnalyzeRequest POST /api/analyze 请求体
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeReply POST /api/analyze 响应体
type AnalyzeReply struct {
	RunID   string        `json:"run_id"`
	Message string        `json:"message"`
	Result  *model.Result `json:"result"`
}

type handler struct {
	runner Runner
	log    *log.Helper
}

func NewHTTPServer(opts Options, runner Runner, logger log.Logger) *http.Server {
	var srvOpts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if opts.Addr != "" {
		srvOpts = append(srvOpts, http.Address(opts.Addr))
	}
	if opts.Timeout > 0 {
		srvOpts = append(srvOpts, http.Timeout(opts.Timeout))
	}

	srv := http.NewServer(srvOpts...)
	h := &handler{runner: runner, log: log.NewHelper(logger)}

	r := srv.Route("/")
	r.GET("/health", h.health)
	r.POST("/api/analyze", h.analyze)
	r.GET("/api/reports/download", h.download)

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, _ := assets.ReadFile("assets/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	return srv
}

func (h *handler) health(ctx http.Context) error {
	return ctx.JSON(nethttp.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) analyze(ctx http.Context) error {
	var in AnalyzeRequest
	if err := ctx.Bind(&in); err != nil {
		return kerrors.BadRequest("INVALID_BODY", err.Error())
	}
	if strings.TrimSpace(in.URL) == "" {
		return kerrors.BadRequest("INVALID_URL", "url is required")
	}

	m := ctx.Middleware(func(c context.Context, req any) (any, error) {
		return h.run(c, req.(*AnalyzeRequest))
	})
	out, err := m(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(nethttp.StatusOK, out)
}

func (h *handler) run(ctx context.Context, in *AnalyzeRequest) (*AnalyzeReply, error) {
	runID := uuid.NewString()
	dir := filepath.Join(h.runner.OutputDir(), runID)
	h.log.Infof("开始分析 run_id=%s url=%s", runID, in.URL)

	res, err := h.runner.Run(ctx, engine.RunOptions{
		Website:   in.URL,
		OutputDir: dir,
		ProgressCallback: func(status string, progress int) {
			h.log.Debugf("run_id=%s progress=%d status=%s", runID, progress, status)
		},
	})
	if err != nil {
		h.log.Errorf("分析失败 run_id=%s: %v", runID, err)
		if errors.Is(err, engine.ErrInvalidURL) {
			return nil, kerrors.BadRequest("INVALID_URL", err.Error())
		}
		return nil, kerrors.InternalServer("ANALYSIS_FAILED", err.Error())
	}

	return &AnalyzeReply{
		RunID:   runID,
		Message: "Analysis complete",
		Result:  res,
	}, nil
}

func (h *handler) download(ctx http.Context) error {
	runID := ctx.Query().Get("run_id")
	if _, err := uuid.Parse(runID); err != nil {
		return kerrors.BadRequest("INVALID_RUN_ID", "run_id must be a uuid")
	}

	path := filepath.Join(h.runner.OutputDir(), runID, report.BundleName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return kerrors.NotFound("REPORT_NOT_FOUND", "report not found")
		}
		return kerrors.InternalServer("READ_FAILED", err.Error())
	}

	ctx.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.BundleName))
	return ctx.Blob(nethttp.StatusOK, "application/zip", data)
}
