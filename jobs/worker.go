package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Worker runs the background queue: the low-stock digest handler plus its
// daily schedule.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// WorkerConfig collects what the worker needs to start.
type WorkerConfig struct {
	RedisOpts  asynq.RedisClientOpt
	Logger     *slog.Logger
	Digest     *LowStockDigestJob
	DigestCron string
}

// NewWorker builds the queue server. When DigestCron is set, a scheduler is
// started alongside it that enqueues a full digest (out-of-stock included) on
// that cron expression, evaluated in UTC.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Digest == nil {
		return nil, errors.New("jobs: digest job is required")
	}

	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskLowStockDigest, cfg.Digest.Handle)

	var scheduler *asynq.Scheduler
	if cfg.DigestCron != "" {
		task, err := NewLowStockDigestTask(LowStockDigestPayload{IncludeOutOfStock: true})
		if err != nil {
			return nil, err
		}
		scheduler = asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
		if _, err := scheduler.Register(cfg.DigestCron, task, asynq.MaxRetry(3)); err != nil {
			return nil, err
		}
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run processes tasks until the context is cancelled or the server fails.
func (w *Worker) Run(ctx context.Context) error {
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-errCh:
	}
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
	w.server.Shutdown()
	return err
}

// Client enqueues digest runs outside the schedule.
type Client struct {
	client *asynq.Client
}

func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueLowStockDigest submits an on-demand digest run.
func (c *Client) EnqueueLowStockDigest(ctx context.Context, payload LowStockDigestPayload) (*asynq.TaskInfo, error) {
	task, err := NewLowStockDigestTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

func (c *Client) Close() error {
	return c.client.Close()
}
