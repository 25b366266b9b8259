package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
)

const refreshTimeout = 30 * time.Second

// DirectoryRefresher периодически перечитывает список филиалов из МИС в кэш,
// чтобы первый шаг записи не ждал ответа МИС
type DirectoryRefresher struct {
	service   DirectoryService
	logger    Logger
	interval  time.Duration
	scheduler *gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewDirectoryRefresher создает новый экземпляр обновления справочников
func NewDirectoryRefresher(service DirectoryService, logger Logger, interval time.Duration) *DirectoryRefresher {
	ctx, cancel := context.WithCancel(context.Background())

	return &DirectoryRefresher{
		service:   service,
		logger:    logger,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.UTC),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start первый запуск сразу, затем раз в interval; запуски не перекрываются
func (r *DirectoryRefresher) Start() error {
	if _, err := r.scheduler.Every(r.interval).SingletonMode().Do(r.refresh); err != nil {
		return fmt.Errorf("worker: schedule directory refresh: %w", err)
	}

	r.logger.Info("Starting directory refresher (interval: %s)", r.interval)
	r.scheduler.StartAsync()
	return nil
}

// Stop останавливает планировщик и прерывает текущее обновление
func (r *DirectoryRefresher) Stop() {
	r.logger.Info("Stopping directory refresher")
	r.cancel()
	r.scheduler.Stop()
	r.logger.Info("Directory refresher stopped")
}

func (r *DirectoryRefresher) refresh() {
	ctx, cancel := context.WithTimeout(r.ctx, refreshTimeout)
	defer cancel()

	branches, err := r.service.RefreshBranches(ctx)
	if err != nil {
		r.logger.Error("Failed to refresh branches: %v", err)
		return
	}
	r.logger.Info("Branches refreshed: %d", len(branches))
}
