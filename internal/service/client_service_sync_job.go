package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
)

type clientSyncJob struct {
	syncService ClientSyncService
	session     *SyncSession
	logger      *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	current *SyncContext
	wg      sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that runs a pull followed by a
// push on a ticker. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, session *SyncSession, logger *logger.Logger) ClientSyncJob {
	if session == nil {
		session = NewSyncSession()
	}
	return &clientSyncJob{syncService: syncService, session: session, logger: logger}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that syncs every interval. If interval is
// zero or negative it defaults to 5 minutes. The goroutine exits when ctx
// is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runCycle(jobCtx)
			}
		}
	}()
}

func (j *clientSyncJob) runCycle(ctx context.Context) {
	sc := j.session.Begin(nil)
	j.mu.Lock()
	j.current = sc
	j.mu.Unlock()

	defer func() {
		j.session.End(sc)
		j.mu.Lock()
		j.current = nil
		j.mu.Unlock()
	}()

	online := j.syncService.IsOnline(ctx)
	if !online {
		j.logger.Debug().Msg("sync job: offline, cycle skipped")
		return
	}

	if _, err := j.syncService.PullAll(ctx, sc); err != nil {
		j.logger.Warn().Err(err).Msg("sync job: pull finished with errors")
	}
	if sc.Cancelled() || ctx.Err() != nil {
		return
	}

	if res := j.syncService.PushAll(ctx, sc, online); !res.Success {
		j.logger.Warn().Strs("failed_tasks", res.Errors).Msg("sync job: push finished with errors")
	}
}

// Stop implements ClientSyncJob. It cancels the running cycle and the
// background goroutine's context and blocks until the goroutine has fully
// exited. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.current.Cancel()
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
