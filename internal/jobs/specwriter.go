package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/shopbot-backend/internal/platform/logger"
	"github.com/yungbote/shopbot-backend/internal/services"
)

const specWriteQueueKey = "shopbot:spec_write_queue"

// SpecWriter drains deferred cache writes scheduled after successful crawls.
// Jobs go through redis when a client is configured, so writes survive a
// restart; without redis they fall back to an in-process buffered channel.
// Either way Enqueue never blocks a turn, and a lost write just leaves the
// cache miss in place for the next crawl.
type SpecWriter struct {
	rdb      *redis.Client
	fallback chan services.SpecWriteJob
	cache    services.SpecCache
	log      *logger.Logger
}

func NewSpecWriter(rdb *redis.Client, cache services.SpecCache, backlog int, baseLog *logger.Logger) *SpecWriter {
	if backlog <= 0 {
		backlog = 64
	}
	return &SpecWriter{
		rdb:      rdb,
		fallback: make(chan services.SpecWriteJob, backlog),
		cache:    cache,
		log:      baseLog.With("worker", "SpecWriter"),
	}
}

// Enqueue schedules one deferred write. Never blocks; a full backlog drops
// the job with a warning.
func (w *SpecWriter) Enqueue(job services.SpecWriteJob) {
	if w.rdb != nil {
		payload, err := json.Marshal(job)
		if err != nil {
			w.log.Error("spec write job marshal failed", "job_id", job.ID, "error", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err = w.rdb.LPush(ctx, specWriteQueueKey, payload).Err()
		if err == nil {
			return
		}
		w.log.Warn("redis enqueue failed, using in-process fallback",
			"job_id", job.ID, "error", err)
	}

	select {
	case w.fallback <- job:
	default:
		w.log.Warn("spec write backlog full, dropping job",
			"job_id", job.ID, "detail_name", job.DetailName)
	}
}

// Run consumes jobs until ctx is cancelled.
func (w *SpecWriter) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.drainFallback(ctx) })
	if w.rdb != nil {
		g.Go(func() error { return w.drainRedis(ctx) })
	}
	return g.Wait()
}

func (w *SpecWriter) drainFallback(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job := <-w.fallback:
			w.process(ctx, job)
		}
	}
}

func (w *SpecWriter) drainRedis(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := w.rdb.BRPop(ctx, 5*time.Second, specWriteQueueKey).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Warn("redis dequeue failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, payload].
		if len(res) != 2 {
			continue
		}
		var job services.SpecWriteJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			w.log.Error("spec write job undecodable, dropping", "error", err)
			continue
		}
		w.process(ctx, job)
	}
}

func (w *SpecWriter) process(ctx context.Context, job services.SpecWriteJob) {
	err := w.cache.Save(ctx, job.MidKey, job.DetailName, job.URL, job.Data)
	switch {
	case err == nil:
		w.log.Info("spec cached", "job_id", job.ID, "detail_name", job.DetailName)
	case errors.Is(err, services.ErrSpecConflict), errors.Is(err, services.ErrEmptySanitizedName):
		// Not retryable; the entry simply cannot be cached under this name.
		w.log.Warn("spec write rejected", "job_id", job.ID,
			"detail_name", job.DetailName, "error", err)
	default:
		// Dropped writes are safe: the miss path re-crawls next time.
		w.log.Error("spec write failed", "job_id", job.ID,
			"detail_name", job.DetailName, "error", err)
	}
}
