package dom

import (
	"github.com/sirupsen/logrus"
)

// dispatchState tracks a dispatcher through its single, linear run.
type dispatchState uint8

const (
	stateCreated dispatchState = iota
	statePreProcess
	stateCapturing
	stateAtTarget
	stateBubbling
	statePostProcess
	stateDone
)

// EventDispatcher runs one dispatch of one event at one node. It is created
// by DispatchEvent and handed to the event's mediator, which may adjust the
// path before calling Dispatch.
type EventDispatcher struct {
	node  *Node
	event DOMEvent
	path  *EventPath
	state dispatchState
}

func newEventDispatcher(node *Node, event DOMEvent) *EventDispatcher {
	return &EventDispatcher{
		node:  node,
		event: event,
		path:  NewEventPath(node),
	}
}

// DispatchEvent dispatches the mediator's event at node. It returns true
// when the caller should go on with the default action, i.e. the event was
// neither prevented nor handled. A mediator without an event has nothing to
// prevent and returns true.
func DispatchEvent(node *Node, mediator *EventDispatchMediator) bool {
	if mediator == nil || mediator.Event() == nil {
		return true
	}
	return mediator.dispatchEvent(newEventDispatcher(node, mediator.Event()))
}

// DispatchScopedEvent dispatches the mediator's event at node through the
// event queue of node's document, so it waits while a scope is open. Nodes
// without a document dispatch immediately.
func DispatchScopedEvent(node *Node, mediator *EventDispatchMediator) {
	if node == nil {
		assertFailed("scoped event dispatched without a target", nil)
		return
	}
	if doc := node.document(); doc != nil {
		doc.EventQueue().DispatchScopedEvent(node, mediator)
		return
	}
	DispatchEvent(node, mediator)
}

// Node returns the node the event is dispatched at.
func (d *EventDispatcher) Node() *Node {
	return d.node
}

// Event returns the event being dispatched.
func (d *EventDispatcher) Event() DOMEvent {
	return d.event
}

// Path returns the event path, for mediators to adjust before Dispatch.
func (d *EventDispatcher) Path() *EventPath {
	return d.path
}

// savedEventState holds the values handleLocalEvents overwrites per context,
// restored once the phases are over.
type savedEventState struct {
	relatedTarget  *Node
	touches        *TouchList
	targetTouches  *TouchList
	changedTouches *TouchList
}

// Dispatch runs the capture, target and bubble phases and then the default
// event handlers. An event that was already dispatched, or a dispatcher
// without a node, is reported and left untouched.
func (d *EventDispatcher) Dispatch() bool {
	ev := d.event.AsEvent()
	if d.state != stateCreated {
		assertFailed("event dispatcher reused", logrus.Fields{"event": ev.eventType})
		return !ev.defaultPrevented && !ev.defaultHandled
	}

	d.state = statePreProcess
	if ev.dispatched {
		assertFailed("event dispatched twice", logrus.Fields{
			"event": ev.eventType,
			"node":  d.node.describe(),
		})
		d.state = stateDone
		return !ev.defaultPrevented && !ev.defaultHandled
	}
	if d.node == nil {
		assertFailed("event dispatched without a target", logrus.Fields{"event": ev.eventType})
		d.state = stateDone
		return true
	}
	ev.dispatched = true
	if ev.target == nil {
		ev.target = d.node
	}
	saved := d.saveEventState()

	logger.WithFields(logrus.Fields{
		"event": ev.eventType,
		"node":  d.node.describe(),
		"path":  d.path.Len(),
	}).Debug("dispatching event")

	d.dispatchEventInPath()
	d.postProcess(saved)
	return !ev.defaultPrevented && !ev.defaultHandled
}

func (d *EventDispatcher) saveEventState() savedEventState {
	var saved savedEventState
	if rt, ok := d.event.(relatedTargetEvent); ok {
		saved.relatedTarget = rt.RelatedTarget()
	}
	if te, ok := d.event.(*TouchEvent); ok {
		saved.touches = te.touches
		saved.targetTouches = te.targetTouches
		saved.changedTouches = te.changedTouches
	}
	return saved
}

func (d *EventDispatcher) dispatchEventInPath() {
	ev := d.event.AsEvent()
	size := d.path.Len()
	if size == 0 {
		return
	}

	d.state = stateCapturing
	for i := 0; i < size-1; i++ {
		if ev.propagationStopped {
			return
		}
		c := d.path.contexts[i]
		if c.currentTargetSameAsTarget() {
			ev.eventPhase = EventPhaseAtTarget
		} else {
			ev.eventPhase = EventPhaseCapturing
		}
		d.invoke(c, capturingPass)
	}

	d.state = stateAtTarget
	target := d.path.contexts[size-1]
	ev.eventPhase = EventPhaseAtTarget
	for _, pass := range []invokePass{capturingPass, bubblingPass} {
		if ev.propagationStopped {
			return
		}
		d.invoke(target, pass)
	}

	d.state = stateBubbling
	for i := size - 2; i >= 0; i-- {
		if ev.propagationStopped {
			return
		}
		c := d.path.contexts[i]
		if c.currentTargetSameAsTarget() {
			ev.eventPhase = EventPhaseAtTarget
		} else if ev.bubbles {
			ev.eventPhase = EventPhaseBubbling
		} else {
			continue
		}
		d.invoke(c, bubblingPass)
	}
}

func (d *EventDispatcher) invoke(c *NodeEventContext, pass invokePass) {
	d.event.AsEvent().currentTarget = c.currentTarget
	c.handleLocalEvents(d.event, pass)
}

func (d *EventDispatcher) postProcess(saved savedEventState) {
	d.state = statePostProcess
	ev := d.event.AsEvent()
	ev.eventPhase = EventPhaseNone
	ev.currentTarget = nil
	ev.target = d.node
	if rt, ok := d.event.(relatedTargetEvent); ok {
		rt.setRelatedTarget(saved.relatedTarget)
	}
	if te, ok := d.event.(*TouchEvent); ok {
		te.setTouchLists(saved.touches, saved.targetTouches, saved.changedTouches)
	}
	ev.propagationStopped = false
	ev.immediatePropagationStopped = false

	if !ev.defaultPrevented && !ev.defaultHandled {
		d.callDefaultEventHandlers()
	}
	d.state = stateDone
}

// callDefaultEventHandlers runs the target's default handler, then, for
// bubbling events, each ancestor's until one handles the event.
func (d *EventDispatcher) callDefaultEventHandlers() {
	ev := d.event.AsEvent()
	size := d.path.Len()
	for i := size - 1; i >= 0; i-- {
		if i < size-1 && !ev.bubbles {
			return
		}
		if handler := d.path.contexts[i].node.defaultHandler; handler != nil {
			handler(d.event)
		}
		if ev.defaultHandled {
			return
		}
	}
}

// SimulatedClickMouseEvents selects which mouse events precede a simulated click.
type SimulatedClickMouseEvents uint8

const (
	SendNoEvents SimulatedClickMouseEvents = iota
	SendMouseUpDownEvents
	SendMouseOverUpDownEvents
)

// SimulatedClickOptions configures DispatchSimulatedClick.
type SimulatedClickOptions struct {
	MouseEvents SimulatedClickMouseEvents
}

// DispatchSimulatedClick fires a click at node that does not come from hit
// testing, as element.click() or an activation key does. Modifier state and,
// for mouse events, positions are copied from underlying. Disabled form
// controls are skipped, and a node already dispatching a simulated click
// ignores nested requests.
func DispatchSimulatedClick(node *Node, underlying DOMEvent, opts SimulatedClickOptions) {
	if node == nil {
		return
	}
	if node.nodeType == ElementNode && (*Element)(node).IsDisabledFormControl() {
		return
	}
	if node.dispatchingSimulatedClick {
		return
	}
	node.dispatchingSimulatedClick = true
	defer func() { node.dispatchingSimulatedClick = false }()

	view := node.document()
	fire := func(eventType string) {
		ev := NewSimulatedMouseEvent(eventType, view, underlying)
		DispatchEvent(node, NewMouseEventDispatchMediator(ev, SyntheticMouseEvent))
	}

	if opts.MouseEvents == SendMouseOverUpDownEvents {
		fire(EventTypeMouseOver)
	}
	if opts.MouseEvents != SendNoEvents {
		fire(EventTypeMouseDown)
		fire(EventTypeMouseUp)
	}
	fire(EventTypeClick)
}
