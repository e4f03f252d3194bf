package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"blogging/config"
	"blogging/internal/cron"
	"blogging/internal/handler"
	"blogging/internal/middleware"
	"blogging/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	conf          *config.Configuration
	logger        *zap.Logger
	cronSrv       *cron.Cron
	httpSrv       *http.Server
	auditLogger   *middleware.Logger
	healthService *service.HealthService
	version       *handler.VersionHandler
}

func newHttpServer(
	conf *config.Configuration,
	router *gin.Engine,
) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.FormatUint(uint64(conf.App.Port), 10),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newApp(
	conf *config.Configuration,
	logger *zap.Logger,
	httpSrv *http.Server,
	auditLogger *middleware.Logger,
	healthService *service.HealthService,
	cronSrv *cron.Cron,
	version *handler.VersionHandler,
) *App {
	return &App{
		conf:          conf,
		logger:        logger,
		httpSrv:       httpSrv,
		auditLogger:   auditLogger,
		healthService: healthService,
		cronSrv:       cronSrv,
		version:       version,
	}
}

func (a *App) Run() error {
	// 1) 啟動時寫入版本/環境資訊
	info := a.version.Info()
	a.logger.Info("app runtime info",
		zap.String("env", info.Env),
		zap.String("name", info.Name),
		zap.String("version", info.Version),
		zap.String("go_version", info.GoVersion),
		zap.Time("start_at", info.StartAt),
	)

	// 2) 啟動 cron（readiness 檢查）
	if err := a.cronSrv.Run(); err != nil {
		return err
	}
	a.logger.Info("cron server started")

	// 3) 啟動 http server
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	return nil
}

// Close 依序：停止 cron → 標記未就緒 → 關閉 http → 等待稽核紀錄寫完
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.cronSrv != nil {
		if err := a.cronSrv.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
		a.logger.Info("cron server has been stop")
	}
	if a.healthService != nil {
		a.healthService.SetReady(false)
	}
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		a.logger.Info("http server has been stop")
	}
	if a.auditLogger != nil {
		if err := a.auditLogger.Wait(ctx); err != nil {
			errs = append(errs, err)
		}
		a.logger.Info("audit log writer drained")
	}
	return errors.Join(errs...)
}

func (a *App) Stop(ctx context.Context) error {
	return a.Close(ctx)
}
