package cron

import (
	"context"

	"blogging/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

// 每 15 秒 ping 一次資料庫
const readinessSpec = "*/15 * * * * *"

type Cron struct {
	logger        *zap.Logger
	server        *cron.Cron
	healthService *service.HealthService
}

// NewCron .
func NewCron(logger *zap.Logger, healthService *service.HealthService) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Cron{
		logger:        logger,
		server:        server,
		healthService: healthService,
	}
}

func (c *Cron) Run() error {
	// 啟動時先檢查一次，避免第一個週期前 readiness 一直是 false
	c.checkReadiness()
	if _, err := c.server.AddFunc(readinessSpec, c.checkReadiness); err != nil {
		return err
	}

	c.server.Start()
	return nil
}

// Stop 等待執行中的 job 結束或 ctx 逾時
func (c *Cron) Stop(ctx context.Context) error {
	done := c.server.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cron) checkReadiness() {
	if err := c.healthService.Check(context.Background()); err != nil {
		c.logger.Warn("[Cron] readiness check failed", zap.Error(err))
	}
}
