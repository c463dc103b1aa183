package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/Image-To-3D/config"
	"github.com/andreyxaxa/Image-To-3D/internal/controller/restapi"
	"github.com/andreyxaxa/Image-To-3D/internal/controller/worker/janitor"
	"github.com/andreyxaxa/Image-To-3D/internal/infrastructure/converter"
	"github.com/andreyxaxa/Image-To-3D/internal/infrastructure/preview"
	"github.com/andreyxaxa/Image-To-3D/internal/repo/memory"
	"github.com/andreyxaxa/Image-To-3D/internal/usecase/presenter"
	"github.com/andreyxaxa/Image-To-3D/internal/usecase/selector"
	"github.com/andreyxaxa/Image-To-3D/internal/usecase/workflow"
	"github.com/andreyxaxa/Image-To-3D/pkg/httpserver"
	"github.com/andreyxaxa/Image-To-3D/pkg/logger"
)

// multipart framing on top of the largest accepted image
const _formOverhead = 64 * 1024

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository
	assets := memory.NewAssetRepo()

	// Infrastructure
	conv := converter.New(
		cfg.Converter.Endpoint,
		cfg.Converter.Token,
		converter.Timeout(cfg.Converter.Timeout),
		converter.Format(cfg.Converter.ModelFormat),
		converter.MaxModelSize(cfg.Converter.MaxModelSize),
	)

	// Use-Case
	sessions := workflow.NewRegistry(conv, assets, cfg.Session.IdleTTL, l)
	selectorUseCase := selector.New(preview.New(cfg.Preview.MaxWidth, cfg.Preview.MaxHeight), cfg.Upload.MaxFileSize, l)
	presenterUseCase := presenter.New(assets, cfg.Viewer.ScriptURL, "/v1")

	// Session Janitor Worker
	sessionJanitor := janitor.New(sessions, l, cfg.Session.JanitorInterval)

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
		httpserver.BodyLimit(int(cfg.Upload.MaxFileSize)+_formOverhead),
	)
	restapi.NewRouter(httpServer.App, cfg, sessions, selectorUseCase, presenterUseCase, l)

	// Start Components
	err := sessionJanitor.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - sessionJanitor.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	sjShutdownCtx, sjShutdownCancel := context.WithTimeout(ctx, cfg.Session.ShutdownTimeout)
	defer sjShutdownCancel()
	err = sessionJanitor.Shutdown(sjShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - sessionJanitor.Shutdown: %w", err))
	}

	l.Info("app - Run - released assets, %d left", assets.Len())
}
