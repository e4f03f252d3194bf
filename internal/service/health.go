package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type HealthService struct {
	live   atomic.Bool
	ready  atomic.Bool
	pinger Pinger
	logger *zap.Logger
}

func NewHealthService(pinger Pinger, logger *zap.Logger) *HealthService {
	s := &HealthService{pinger: pinger, logger: logger}
	s.live.Store(true)
	s.ready.Store(false) // 啟動完成後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

// Check ping 資料庫並更新 readiness
func (s *HealthService) Check(ctx context.Context) error {
	if s.pinger == nil {
		s.SetReady(true)
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		if s.IsReady() && s.logger != nil {
			s.logger.Warn("database ping failed, marking not ready", zap.Error(err))
		}
		s.SetReady(false)
		return err
	}
	s.SetReady(true)
	return nil
}
