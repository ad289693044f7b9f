package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher moves audit writes off the request path. Events are
// sharded by entity and id, so the events of one entity are written in
// the order they were recorded. It implements ports.AuditLog; History
// reads straight from the underlying log.
type AuditDispatcher struct {
	workers []chan domain.AuditEvent
	sink    ports.AuditLog
	log     zerolog.Logger

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, sink ports.AuditLog, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Writes use ctx; workers exit once
// Close has been called and their queue is drained.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues the event. It blocks only when the shard's buffer is full.
// After Close the event is written synchronously to the sink.
func (d *AuditDispatcher) Record(ctx context.Context, event domain.AuditEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return d.sink.Record(ctx, event)
	}
	d.workers[d.shardIndex(event.Entity+":"+event.EntityID)] <- event
	return nil
}

func (d *AuditDispatcher) History(ctx context.Context, entity, id string) ([]domain.AuditEvent, error) {
	return d.sink.History(ctx, entity, id)
}

// Close stops accepting events and waits until queued ones are written.
func (d *AuditDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a key deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()
	for event := range ch {
		if err := d.sink.Record(ctx, event); err != nil {
			d.log.Warn().Err(err).
				Str("entity", event.Entity).
				Str("entity_id", event.EntityID).
				Str("action", event.Action).
				Int("worker_id", id).
				Msg("failed to record audit event")
		}
	}
}
