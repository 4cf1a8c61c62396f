package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Skotchmaster/employee_registry/pkg/logging"
)

const (
	publishTimeout = 5 * time.Second
	queueSize      = 256
)

type notification struct {
	ctx   context.Context
	log   *slog.Logger
	topic string
	key   string
	event map[string]any
}

// Notifier delivers change events in order on a single background worker, so
// request handlers never wait on the publisher. Events offered while the queue
// is full are dropped and logged.
type Notifier struct {
	events  EventPublisher
	queue   chan notification
	pending sync.WaitGroup
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewNotifier(events EventPublisher) *Notifier {
	n := &Notifier{
		events: events,
		queue:  make(chan notification, queueSize),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *Notifier) run() {
	defer close(n.done)
	for job := range n.queue {
		ctx, cancel := context.WithTimeout(job.ctx, publishTimeout)
		if err := n.events.PublishEvent(ctx, job.topic, job.key, job.event); err != nil {
			job.log.Error("publish_event_failed", "topic", job.topic, "type", job.event["type"], "error", err)
		}
		cancel()
		n.pending.Done()
	}
}

// Publish queues event and returns immediately. A nil Notifier discards it.
func (n *Notifier) Publish(ctx context.Context, topic, key string, event map[string]any) {
	if n == nil {
		return
	}
	l := logging.FromContext(ctx)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		l.Warn("publish_event_dropped", "topic", topic, "type", event["type"], "reason", "notifier closed")
		return
	}

	n.pending.Add(1)
	select {
	case n.queue <- notification{ctx: context.WithoutCancel(ctx), log: l, topic: topic, key: key, event: event}:
	default:
		n.pending.Done()
		l.Warn("publish_event_dropped", "topic", topic, "type", event["type"], "reason", "queue full")
	}
}

// Wait blocks until every queued event has been handed to the publisher.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.pending.Wait()
}

// Close stops accepting events and waits for the queue to drain.
func (n *Notifier) Close() {
	if n == nil {
		return
	}
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()
	<-n.done
}
