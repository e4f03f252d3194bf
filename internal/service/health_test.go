package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubPinger struct{ err error }

func (p *stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthService_Check(t *testing.T) {
	pinger := &stubPinger{}
	s := NewHealthService(pinger, zap.NewNop())

	assert.True(t, s.IsLive())
	assert.False(t, s.IsReady())

	assert.NoError(t, s.Check(context.Background()))
	assert.True(t, s.IsReady())

	pinger.err = errors.New("no primary")
	assert.Error(t, s.Check(context.Background()))
	assert.False(t, s.IsReady())
}
