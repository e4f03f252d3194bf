package service

import (
	"context"

	"blogging/internal/core"
	"blogging/internal/database/mongodb/model"
	cErr "blogging/internal/pkg/error"
	"blogging/internal/telemetry"

	"go.uber.org/zap"
)

type LogService struct {
	trace  *telemetry.Trace
	logger *zap.Logger
	store  LogStore
	mirror LogMirror
}

func NewLogService(
	trace *telemetry.Trace,
	logger *zap.Logger,
	store LogStore,
	mirror LogMirror,
) *LogService {
	return &LogService{
		trace:  trace,
		logger: logger,
		store:  store,
		mirror: mirror,
	}
}

// Record 寫入主儲存；Fluentd 鏡像失敗只記錄不回傳
func (s *LogService) Record(ctx context.Context, entry *model.LogEntry) (mirrored bool, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx, string(core.SpanAuditPersist))
	defer func() { end(returnedError) }()

	if err := s.store.Create(ctx, entry); err != nil {
		return false, err
	}
	if s.mirror == nil {
		return false, nil
	}
	if err := s.mirror.LogRequest(ctx, entry); err != nil {
		s.logger.Warn("mirror audit log to fluentd failed",
			zap.String("logId", entry.ID.Hex()),
			zap.Error(err),
		)
		return false, nil
	}
	return true, nil
}

// List 依請求時間新到舊分頁
func (s *LogService) List(ctx context.Context, opts core.ListOptions) (_ []*model.LogEntry, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	entries, err := s.store.List(ctx, opts)
	if err != nil {
		return nil, cErr.DatabaseError(err.Error())
	}
	s.trace.ApplyTraceAttributes(span, core.TraceLogListMeta{Page: opts.Page, Size: opts.Size, ResultCount: len(entries)})
	return entries, nil
}
