package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/logger"
)

// PanicReporter получает имя задачи, значение из recover и стек.
type PanicReporter func(task string, recovered any, stack []byte)

// Runner запускает фоновые задачи так, что panic в одной из них не роняет процесс.
type Runner struct {
	report PanicReporter
}

func NewRunner(report PanicReporter) *Runner {
	return &Runner{report: report}
}

func (r *Runner) Go(task string, fn func()) {
	go func() {
		defer r.recover(task)
		fn()
	}()
}

func (r *Runner) GoContext(ctx context.Context, task string, fn func(context.Context)) {
	go func() {
		defer r.recover(task)
		fn(ctx)
	}()
}

func (r *Runner) recover(task string) {
	if v := recover(); v != nil {
		r.report(task, v, debug.Stack())
	}
}

func logPanic(task string, recovered any, stack []byte) {
	logger.Log.WithFields(logrus.Fields{
		"task":  task,
		"panic": recovered,
		"stack": string(stack),
	}).Error("goroutine: panic recovered")
}

var defaultRunner = NewRunner(logPanic)

// SafeGo запускает fn в отдельной горутине с перехватом panic.
func SafeGo(task string, fn func()) {
	defaultRunner.Go(task, fn)
}

// SafeGoWithContext то же, что SafeGo, но передаёт ctx в fn.
func SafeGoWithContext(ctx context.Context, task string, fn func(context.Context)) {
	defaultRunner.GoContext(ctx, task, fn)
}
