package dom

import "time"

// EventPhase represents the phase of event dispatch.
type EventPhase uint16

const (
	EventPhaseNone      EventPhase = 0
	EventPhaseCapturing EventPhase = 1
	EventPhaseAtTarget  EventPhase = 2
	EventPhaseBubbling  EventPhase = 3
)

// String returns the DOM constant name of the phase.
func (p EventPhase) String() string {
	switch p {
	case EventPhaseCapturing:
		return "CAPTURING_PHASE"
	case EventPhaseAtTarget:
		return "AT_TARGET"
	case EventPhaseBubbling:
		return "BUBBLING_PHASE"
	default:
		return "NONE"
	}
}

// Event types the dispatch core gives special treatment to.
const (
	EventTypeClick      = "click"
	EventTypeDblClick   = "dblclick"
	EventTypeMouseDown  = "mousedown"
	EventTypeMouseUp    = "mouseup"
	EventTypeMouseOver  = "mouseover"
	EventTypeMouseOut   = "mouseout"
	EventTypeMouseMove  = "mousemove"
	EventTypeMouseEnter = "mouseenter"
	EventTypeMouseLeave = "mouseleave"
	EventTypeWheel      = "wheel"
	EventTypeFocus      = "focus"
	EventTypeBlur       = "blur"
	EventTypeFocusIn    = "focusin"
	EventTypeFocusOut   = "focusout"
	EventTypeTouchStart = "touchstart"
	EventTypeTouchMove  = "touchmove"
	EventTypeTouchEnd   = "touchend"
)

// DOMEvent is implemented by every event type. Concrete events embed Event,
// which provides AsEvent.
type DOMEvent interface {
	AsEvent() *Event
}

// Event is the base of every dispatched event.
// https://dom.spec.whatwg.org/#interface-event
type Event struct {
	eventType     string
	bubbles       bool
	cancelable    bool
	target        *Node
	currentTarget *Node
	eventPhase    EventPhase

	defaultPrevented            bool
	defaultHandled              bool
	propagationStopped          bool
	immediatePropagationStopped bool
	inPassiveListener           bool

	// dispatched is set when dispatch begins and never cleared; init calls
	// are ignored afterwards and a second dispatch is refused.
	dispatched bool
	isTrusted  bool
	timeStamp  time.Time

	underlyingEvent DOMEvent

	// binding is owned by whichever script runtime wraps the event.
	binding interface{}
}

// NewEvent creates a plain event.
func NewEvent(eventType string, bubbles, cancelable bool) *Event {
	return &Event{
		eventType:  eventType,
		bubbles:    bubbles,
		cancelable: cancelable,
		timeStamp:  time.Now(),
	}
}

func (e *Event) init(eventType string, bubbles, cancelable bool) {
	e.eventType = eventType
	e.bubbles = bubbles
	e.cancelable = cancelable
	if e.timeStamp.IsZero() {
		e.timeStamp = time.Now()
	}
}

// AsEvent returns the event itself. It is promoted to every event type.
func (e *Event) AsEvent() *Event {
	return e
}

// InitEvent reinitializes the event. It has no effect once dispatched.
func (e *Event) InitEvent(eventType string, bubbles, cancelable bool) {
	if e.dispatched {
		return
	}
	e.init(eventType, bubbles, cancelable)
}

// Type returns the event type.
func (e *Event) Type() string {
	return e.eventType
}

// Bubbles reports whether the event runs the bubbling phase.
func (e *Event) Bubbles() bool {
	return e.bubbles
}

// Cancelable reports whether PreventDefault has an effect.
func (e *Event) Cancelable() bool {
	return e.cancelable
}

// Target returns the node the event is dispatched to, retargeted for the
// listener currently running.
func (e *Event) Target() *Node {
	return e.target
}

// CurrentTarget returns the node whose listeners are running, or nil
// outside of dispatch.
func (e *Event) CurrentTarget() *Node {
	return e.currentTarget
}

// EventPhase returns the current dispatch phase.
func (e *Event) EventPhase() EventPhase {
	return e.eventPhase
}

// PreventDefault cancels the default action if the event is cancelable and
// the running listener is not passive. It does not stop propagation.
func (e *Event) PreventDefault() {
	if e.cancelable && !e.inPassiveListener {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether the default action was canceled.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// SetDefaultHandled marks the default action as already performed.
func (e *Event) SetDefaultHandled() {
	e.defaultHandled = true
}

// DefaultHandled reports whether a default event handler handled the event.
func (e *Event) DefaultHandled() bool {
	return e.defaultHandled
}

// StopPropagation prevents the event from reaching further nodes.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation also skips the remaining listeners of the
// current node.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediatePropagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called during the
// current dispatch.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// ImmediatePropagationStopped reports whether StopImmediatePropagation was
// called during the current dispatch.
func (e *Event) ImmediatePropagationStopped() bool {
	return e.immediatePropagationStopped
}

// IsDispatched reports whether the event has been handed to a dispatcher.
func (e *Event) IsDispatched() bool {
	return e.dispatched
}

// IsTrusted reports whether the event was generated from platform input.
func (e *Event) IsTrusted() bool {
	return e.isTrusted
}

// SetTrusted marks the event as generated by the user agent.
func (e *Event) SetTrusted(trusted bool) {
	e.isTrusted = trusted
}

// TimeStamp returns the creation time of the event.
func (e *Event) TimeStamp() time.Time {
	return e.timeStamp
}

// UnderlyingEvent returns the event a simulated event was created from.
func (e *Event) UnderlyingEvent() DOMEvent {
	return e.underlyingEvent
}

// SetUnderlyingEvent records the event this one was simulated from.
func (e *Event) SetUnderlyingEvent(underlying DOMEvent) {
	e.underlyingEvent = underlying
}

// Binding returns the value stored with SetBinding, or nil.
func (e *Event) Binding() interface{} {
	return e.binding
}

// SetBinding attaches an opaque value, such as a script wrapper, that lives
// exactly as long as the event.
func (e *Event) SetBinding(v interface{}) {
	e.binding = v
}

// SetTarget sets the dispatch target ahead of dispatch. Ignored once dispatched.
func (e *Event) SetTarget(target *Node) {
	if e.dispatched {
		return
	}
	e.target = target
}

// relatedTargetEvent is implemented by events that carry a related target
// (mouse, wheel and focus events).
type relatedTargetEvent interface {
	DOMEvent
	RelatedTarget() *Node
	setRelatedTarget(target *Node)
}
