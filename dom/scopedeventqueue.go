package dom

import (
	"github.com/sirupsen/logrus"
)

// ScopedEventQueue defers event dispatch while a scope is open. Code that
// mutates the tree opens a scope so listeners never observe a half-finished
// mutation; the queued events are dispatched in order once the outermost
// scope closes.
//
// Each Document owns one queue, see Document.EventQueue.
type ScopedEventQueue struct {
	scopingLevel    uint
	queuedMediators []*EventDispatchMediator
}

// NewScopedEventQueue creates an empty queue with no open scope.
func NewScopedEventQueue() *ScopedEventQueue {
	return &ScopedEventQueue{}
}

// ScopingLevel returns the number of open scopes.
func (q *ScopedEventQueue) ScopingLevel() uint {
	return q.scopingLevel
}

// Len returns the number of mediators waiting for the scope to close.
func (q *ScopedEventQueue) Len() int {
	return len(q.queuedMediators)
}

// IncrementScopingLevel opens a scope.
func (q *ScopedEventQueue) IncrementScopingLevel() {
	q.scopingLevel++
}

// DecrementScopingLevel closes a scope. Closing the outermost scope
// dispatches everything queued while it was open.
func (q *ScopedEventQueue) DecrementScopingLevel() {
	if q.scopingLevel == 0 {
		assertFailed("event queue scope closed more often than opened", logrus.Fields{"queued": len(q.queuedMediators)})
		return
	}
	q.scopingLevel--
	if q.scopingLevel == 0 {
		q.dispatchAllEvents()
	}
}

// EnqueueEventDispatchMediator queues the mediator while a scope is open and
// dispatches it at its event's target otherwise.
func (q *ScopedEventQueue) EnqueueEventDispatchMediator(mediator *EventDispatchMediator) {
	if mediator == nil {
		return
	}
	if q.scopingLevel > 0 {
		q.queuedMediators = append(q.queuedMediators, mediator)
		return
	}
	q.dispatchEvent(mediator)
}

// DispatchScopedEvent targets the mediator's event at node and enqueues it.
func (q *ScopedEventQueue) DispatchScopedEvent(node *Node, mediator *EventDispatchMediator) {
	if ev := mediator.Event(); ev != nil {
		ev.AsEvent().SetTarget(node)
	}
	q.EnqueueEventDispatchMediator(mediator)
}

func (q *ScopedEventQueue) dispatchEvent(mediator *EventDispatchMediator) {
	ev := mediator.Event()
	if ev == nil {
		return
	}
	DispatchEvent(ev.AsEvent().Target(), mediator)
}

// dispatchAllEvents drains the queue. Listeners run inside a scope of their
// own, so events they enqueue form the next batch instead of being spliced
// into the current one.
func (q *ScopedEventQueue) dispatchAllEvents() {
	for len(q.queuedMediators) > 0 {
		batch := q.queuedMediators
		q.queuedMediators = nil

		logger.WithField("queued", len(batch)).Debug("draining scoped event queue")

		q.dispatchBatch(batch)
	}
}

// dispatchBatch dispatches batch inside a scope. When a listener panics, the
// rest of the batch goes back to the head of the queue and is dispatched
// before the panic continues, so nothing stays queued without a scope.
func (q *ScopedEventQueue) dispatchBatch(batch []*EventDispatchMediator) {
	next := 0
	q.scopingLevel++
	defer func() {
		q.scopingLevel--
		p := recover()
		if p == nil {
			return
		}
		rest := append([]*EventDispatchMediator(nil), batch[next:]...)
		q.queuedMediators = append(rest, q.queuedMediators...)
		logger.WithField("remaining", len(q.queuedMediators)).Warn("listener panicked while draining scoped event queue")
		if q.scopingLevel == 0 {
			q.dispatchAllEvents()
		}
		panic(p)
	}()
	for next < len(batch) {
		mediator := batch[next]
		next++
		q.dispatchEvent(mediator)
	}
}

// EventQueueScope is an open scope of a ScopedEventQueue.
type EventQueueScope struct {
	queue  *ScopedEventQueue
	exited bool
}

// EnterScope opens a scope, to be closed with Exit, usually deferred.
func (q *ScopedEventQueue) EnterScope() *EventQueueScope {
	q.IncrementScopingLevel()
	return &EventQueueScope{queue: q}
}

// Exit closes the scope. Calling Exit again has no effect.
func (s *EventQueueScope) Exit() {
	if s.exited {
		return
	}
	s.exited = true
	s.queue.DecrementScopingLevel()
}

// RunScoped runs fn inside a scope. Events enqueued by fn are dispatched
// after it returns, or after the enclosing scope closes.
func (q *ScopedEventQueue) RunScoped(fn func()) {
	scope := q.EnterScope()
	defer scope.Exit()
	fn()
}
