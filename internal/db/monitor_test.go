package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) PingContext(ctx context.Context) error {
	return p.err
}

func TestMonitor_StartsConnected(t *testing.T) {
	m := NewMonitor(&stubPinger{}, 0)

	assert.True(t, m.Connected())
	assert.NoError(t, m.LastError())
}

func TestMonitor_TracksTransitions(t *testing.T) {
	pinger := &stubPinger{err: errors.New("dial tcp: connection refused")}
	m := NewMonitor(pinger, 0)

	assert.False(t, m.Check(context.Background()))
	assert.False(t, m.Connected())
	assert.Error(t, m.LastError())

	pinger.err = nil
	assert.True(t, m.Check(context.Background()))
	assert.True(t, m.Connected())
	assert.NoError(t, m.LastError())
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	m := NewMonitor(&stubPinger{}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()
	<-done
}
