package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogging/internal/core"
	"blogging/internal/database/memory"
	"blogging/internal/database/mongodb/model"
	"blogging/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMirror struct {
	err   error
	calls int
}

func (m *stubMirror) LogRequest(ctx context.Context, entry *model.LogEntry) error {
	m.calls++
	return m.err
}

func TestLogService_RecordMirrors(t *testing.T) {
	store := memory.NewLogStore()
	mirror := &stubMirror{}
	s := NewLogService(telemetry.NewNoopTrace(), zap.NewNop(), store, mirror)

	mirrored, err := s.Record(context.Background(), &model.LogEntry{RequestInfo: model.RequestInfo{Method: "GET", URL: "/getBlog"}})
	require.NoError(t, err)
	assert.True(t, mirrored)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, mirror.calls)
}

func TestLogService_MirrorFailureIsSwallowed(t *testing.T) {
	store := memory.NewLogStore()
	mirror := &stubMirror{err: errors.New("fluentd down")}
	s := NewLogService(telemetry.NewNoopTrace(), zap.NewNop(), store, mirror)

	mirrored, err := s.Record(context.Background(), &model.LogEntry{})
	require.NoError(t, err)
	assert.False(t, mirrored)
	assert.Equal(t, 1, store.Len())
}

func TestLogService_StoreFailureSkipsMirror(t *testing.T) {
	store := memory.NewLogStore()
	store.SetFailing(true)
	mirror := &stubMirror{}
	s := NewLogService(telemetry.NewNoopTrace(), zap.NewNop(), store, mirror)

	_, err := s.Record(context.Background(), &model.LogEntry{})
	assert.ErrorIs(t, err, memory.ErrLogStoreUnavailable)
	assert.Equal(t, 0, mirror.calls)
}

func TestLogService_List(t *testing.T) {
	store := memory.NewLogStore()
	s := NewLogService(telemetry.NewNoopTrace(), zap.NewNop(), store, nil)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		_, err := s.Record(ctx, &model.LogEntry{RequestInfo: model.RequestInfo{Timestamp: base.Add(time.Duration(i) * time.Second)}})
		require.NoError(t, err)
	}

	entries, err := s.List(ctx, core.ListOptions{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].RequestInfo.Timestamp.After(entries[1].RequestInfo.Timestamp))
}
