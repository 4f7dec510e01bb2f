// Package audit records API and pipeline events without blocking request
// handling. Events are buffered and written by a background worker; when the
// buffer fills, new events are dropped instead of stalling a request.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/db"
)

// Event type constants
const (
	EventTypeAPI       = "api_request"
	EventTypeMatch     = "match"
	EventTypeIngestion = "ingestion"
	EventTypeRetention = "retention"
	EventTypeAuth      = "auth"
)

const (
	defaultBuffer = 256
	writeTimeout  = 5 * time.Second
)

// Store persists audit events. *db.DB satisfies it.
type Store interface {
	SaveAuditEvent(ctx context.Context, event db.AuditEvent) (uuid.UUID, error)
}

// Publisher broadcasts audit events to an external broker
type Publisher interface {
	Publish(event db.AuditEvent) error
}

// Recorder buffers audit events and writes them in the background. Both the
// store and the publisher are optional; a Recorder with neither is a no-op.
type Recorder struct {
	store     Store
	publisher Publisher
	logger    *zap.Logger

	events chan db.AuditEvent
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewRecorder starts the background writer and returns the recorder
func NewRecorder(store Store, publisher Publisher, logger *zap.Logger) *Recorder {
	return newRecorder(store, publisher, logger, defaultBuffer)
}

func newRecorder(store Store, publisher Publisher, logger *zap.Logger, buffer int) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Recorder{
		store:     store,
		publisher: publisher,
		logger:    logger,
		events:    make(chan db.AuditEvent, buffer),
		done:      make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues an event. It never blocks: when the buffer is full the
// event is dropped and the drop is logged.
func (r *Recorder) Record(event db.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	select {
	case r.events <- event:
	default:
		r.logger.Debug("audit buffer full, dropping event",
			zap.String("event_type", event.EventType),
			zap.String("action", event.Action))
	}
}

// Close drains the buffer and stops the background writer
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.events)
	r.mu.Unlock()

	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for event := range r.events {
		r.write(event)
	}
}

func (r *Recorder) write(event db.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if r.store != nil {
		if _, err := r.store.SaveAuditEvent(ctx, event); err != nil {
			r.logger.Warn("failed to persist audit event",
				zap.String("event_type", event.EventType),
				zap.String("action", event.Action),
				zap.Error(err))
		}
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(event); err != nil {
			r.logger.Debug("failed to publish audit event",
				zap.String("event_type", event.EventType),
				zap.Error(err))
		}
	}
}
