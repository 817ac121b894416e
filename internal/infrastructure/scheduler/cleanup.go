// Package scheduler периодически удаляет устаревшие результаты обработки.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Cleaner удаляет результаты старше ttl и возвращает их количество
type Cleaner interface {
	Cleanup(ctx context.Context, ttl time.Duration) (int, error)
}

// Cleanup cron-задача очистки кэша результатов
type Cleanup struct {
	cron    *cron.Cron
	cleaner Cleaner
	ttl     time.Duration
}

// NewCleanup регистрирует задачу по расписанию schedule (формат cron или @every).
func NewCleanup(schedule string, ttl time.Duration, cleaner Cleaner) (*Cleanup, error) {
	c := &Cleanup{
		cron:    cron.New(),
		cleaner: cleaner,
		ttl:     ttl,
	}
	if _, err := c.cron.AddFunc(schedule, c.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	return c, nil
}

// RunOnce выполняет одну очистку.
func (c *Cleanup) RunOnce() {
	removed, err := c.cleaner.Cleanup(context.Background(), c.ttl)
	if err != nil {
		slog.Error("cleanup results", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("expired results removed", "count", removed, "ttl", c.ttl)
	}
}

func (c *Cleanup) Start() {
	c.cron.Start()
}

// Stop останавливает расписание и ждёт завершения запущенной задачи.
func (c *Cleanup) Stop(ctx context.Context) {
	select {
	case <-c.cron.Stop().Done():
	case <-ctx.Done():
	}
}
