package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shopbot-backend/internal/data/repos/testutil"
	"github.com/yungbote/shopbot-backend/internal/services"
)

type recordingCache struct {
	mu    sync.Mutex
	saved []string
	err   error
	done  chan struct{}
}

func (c *recordingCache) Exists(ctx context.Context, detailName string) bool { return false }

func (c *recordingCache) Load(ctx context.Context, detailName string) (services.SpecData, error) {
	return services.SpecData{}, services.ErrSpecNotFound
}

func (c *recordingCache) Save(ctx context.Context, midKey, detailName, url string, data services.SpecData) error {
	c.mu.Lock()
	c.saved = append(c.saved, detailName)
	c.mu.Unlock()
	if c.done != nil {
		c.done <- struct{}{}
	}
	return c.err
}

func sampleJob(detail string) services.SpecWriteJob {
	return services.SpecWriteJob{
		ID:         uuid.New(),
		URL:        "https://shop.example/filter",
		MidKey:     "오일/첨가제/필터",
		DetailName: detail,
		Data: services.SpecData{
			Order: []string{"색상"},
			Attrs: map[string]services.AttributeOptions{"색상": {Labels: []string{"빨강"}}},
		},
	}
}

func TestFallbackQueueProcessesJobs(t *testing.T) {
	cache := &recordingCache{done: make(chan struct{}, 2)}
	w := NewSpecWriter(nil, cache, 4, testutil.Logger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Enqueue(sampleJob("에어필터"))
	w.Enqueue(sampleJob("엔진오일"))

	for i := 0; i < 2; i++ {
		select {
		case <-cache.done:
		case <-time.After(2 * time.Second):
			t.Fatal("deferred write not processed in time")
		}
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()
	if len(cache.saved) != 2 || cache.saved[0] != "에어필터" {
		t.Fatalf("jobs processed wrong: %v", cache.saved)
	}
}

func TestEnqueueNeverBlocksOnFullBacklog(t *testing.T) {
	// No consumer running: the backlog fills, the rest must be dropped
	// without blocking the caller.
	w := NewSpecWriter(nil, &recordingCache{}, 2, testutil.Logger(t))

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			w.Enqueue(sampleJob("에어필터"))
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full backlog")
	}
}

func TestSaveErrorDoesNotStopWorker(t *testing.T) {
	cache := &recordingCache{done: make(chan struct{}, 2), err: services.ErrSpecConflict}
	w := NewSpecWriter(nil, cache, 4, testutil.Logger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Enqueue(sampleJob("a b"))
	w.Enqueue(sampleJob("a/b"))

	for i := 0; i < 2; i++ {
		select {
		case <-cache.done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after a failed save")
		}
	}
}
