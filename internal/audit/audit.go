package audit

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/metrics"
)

const (
	defaultShards = 4
	writeTimeout  = 3 * time.Second
)

type Store interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}

// Logger writes audit events in the background. Events of one username always land
// on the same queue, so they are stored in the order they were recorded.
type Logger struct {
	store   Store
	metrics *metrics.Registry
	queues  []chan domain.AuditEvent
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func New(store Store, reg *metrics.Registry, shards, buffer int) *Logger {
	if shards <= 0 {
		shards = defaultShards
	}
	if buffer <= 0 {
		buffer = 1
	}
	l := &Logger{
		store:   store,
		metrics: reg,
		queues:  make([]chan domain.AuditEvent, shards),
		now:     time.Now,
	}
	for i := range l.queues {
		l.queues[i] = make(chan domain.AuditEvent, buffer)
		l.wg.Add(1)
		go l.worker(l.queues[i])
	}
	return l
}

// Record enqueues an event and returns immediately. Events are dropped when the
// queue is full or the logger is closed.
func (l *Logger) Record(ctx context.Context, username string, kind domain.AuditKind, sourceAddress string) {
	event := domain.AuditEvent{
		Username:      username,
		Kind:          kind,
		SourceAddress: sourceAddress,
		OccurredAt:    l.now(),
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		l.drop(ctx, event, "logger closed")
		return
	}

	select {
	case l.queues[l.shard(username)] <- event:
	default:
		l.drop(ctx, event, "queue full")
	}
}

func (l *Logger) shard(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(l.queues)))
}

func (l *Logger) drop(ctx context.Context, event domain.AuditEvent, reason string) {
	l.metrics.Audit("dropped")
	zap.L().Warn("audit event dropped",
		zap.String("reason", reason),
		zap.String("event", string(event.Kind)),
		zap.String("username", event.Username),
		zap.String("request_id", middleware.GetReqID(ctx)),
	)
}

func (l *Logger) worker(queue <-chan domain.AuditEvent) {
	defer l.wg.Done()
	for event := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := l.store.Insert(ctx, event)
		cancel()
		if err != nil {
			l.metrics.Audit("failed")
			zap.L().Warn("audit event not stored", zap.String("event", string(event.Kind)), zap.Error(err))
			continue
		}
		l.metrics.Audit("stored")
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (l *Logger) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	for _, q := range l.queues {
		close(q)
	}
	l.mu.Unlock()
	l.wg.Wait()
}
