package goroutine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reported struct {
	task  string
	value any
	stack []byte
}

func TestRunner_RecoversPanic(t *testing.T) {
	got := make(chan reported, 1)
	r := NewRunner(func(task string, v any, stack []byte) {
		got <- reported{task, v, stack}
	})

	r.Go("hub", func() { panic("boom") })

	select {
	case rep := <-got:
		assert.Equal(t, "hub", rep.task)
		assert.Equal(t, "boom", rep.value)
		assert.NotEmpty(t, rep.stack)
	case <-time.After(time.Second):
		t.Fatal("panic was not reported")
	}
}

func TestRunner_PassesContext(t *testing.T) {
	r := NewRunner(func(string, any, []byte) {})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	r.GoContext(ctx, "monitor", func(ctx context.Context) {
		<-ctx.Done()
		close(done)
	})
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "goroutine did not observe cancellation")
	}
}
