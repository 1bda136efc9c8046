package dom

import (
	"github.com/sirupsen/logrus"
)

// MediatorKind selects how an EventDispatchMediator adjusts the event path
// and post-processes the dispatch result.
type MediatorKind uint8

const (
	DefaultMediator MediatorKind = iota
	FocusMediator
	BlurMediator
	FocusInMediator
	FocusOutMediator
	MouseMediator
	TouchMediator
	WheelMediator
	GestureMediator
)

var mediatorKindNames = [...]string{
	DefaultMediator:  "default",
	FocusMediator:    "focus",
	BlurMediator:     "blur",
	FocusInMediator:  "focusin",
	FocusOutMediator: "focusout",
	MouseMediator:    "mouse",
	TouchMediator:    "touch",
	WheelMediator:    "wheel",
	GestureMediator:  "gesture",
}

func (k MediatorKind) String() string {
	if int(k) < len(mediatorKindNames) {
		return mediatorKindNames[k]
	}
	return "unknown"
}

// MouseEventMode tells a mouse mediator whether its event came from real
// input or was simulated.
type MouseEventMode uint8

const (
	NonSyntheticMouseEvent MouseEventMode = iota
	SyntheticMouseEvent
)

// EventDispatchMediator binds one event to the per-kind rules used to
// dispatch it. A mediator is used for a single dispatch.
type EventDispatchMediator struct {
	kind      MediatorKind
	event     DOMEvent
	mouseMode MouseEventMode
}

// NewEventDispatchMediator wraps an event that needs no path adjustment.
func NewEventDispatchMediator(event DOMEvent) *EventDispatchMediator {
	return &EventDispatchMediator{kind: DefaultMediator, event: event}
}

func newFocusKindMediator(kind MediatorKind, event *FocusEvent) *EventDispatchMediator {
	m := &EventDispatchMediator{kind: kind}
	if event != nil {
		m.event = event
	}
	return m
}

// NewFocusEventDispatchMediator wraps a focus event.
func NewFocusEventDispatchMediator(event *FocusEvent) *EventDispatchMediator {
	return newFocusKindMediator(FocusMediator, event)
}

// NewBlurEventDispatchMediator wraps a blur event.
func NewBlurEventDispatchMediator(event *FocusEvent) *EventDispatchMediator {
	return newFocusKindMediator(BlurMediator, event)
}

// NewFocusInEventDispatchMediator wraps a focusin event.
func NewFocusInEventDispatchMediator(event *FocusEvent) *EventDispatchMediator {
	return newFocusKindMediator(FocusInMediator, event)
}

// NewFocusOutEventDispatchMediator wraps a focusout event.
func NewFocusOutEventDispatchMediator(event *FocusEvent) *EventDispatchMediator {
	return newFocusKindMediator(FocusOutMediator, event)
}

// NewMouseEventDispatchMediator wraps a mouse event. Real input uses
// NonSyntheticMouseEvent, which checks the event and synthesizes dblclick.
func NewMouseEventDispatchMediator(event *MouseEvent, mode MouseEventMode) *EventDispatchMediator {
	m := &EventDispatchMediator{kind: MouseMediator, mouseMode: mode}
	if event != nil {
		m.event = event
	}
	return m
}

// NewTouchEventDispatchMediator wraps a touch event.
func NewTouchEventDispatchMediator(event *TouchEvent) *EventDispatchMediator {
	m := &EventDispatchMediator{kind: TouchMediator}
	if event != nil {
		m.event = event
	}
	return m
}

// NewWheelEventDispatchMediator builds the wheel event for platform input.
// Input that scrolls neither axis yields a mediator without an event.
func NewWheelEventDispatchMediator(pe PlatformWheelEvent, view *Document) *EventDispatchMediator {
	m := &EventDispatchMediator{kind: WheelMediator}
	if !pe.IsZero() {
		m.event = NewWheelEventFromPlatform(pe, view)
	}
	return m
}

// NewGestureEventDispatchMediator wraps a gesture event.
func NewGestureEventDispatchMediator(event *GestureEvent) *EventDispatchMediator {
	m := &EventDispatchMediator{kind: GestureMediator}
	if event != nil {
		m.event = event
	}
	return m
}

// Kind returns the mediator's kind.
func (m *EventDispatchMediator) Kind() MediatorKind {
	return m.kind
}

// Event returns the mediated event, or nil for an empty wheel mediator.
func (m *EventDispatchMediator) Event() DOMEvent {
	if m == nil {
		return nil
	}
	return m.event
}

func (m *EventDispatchMediator) dispatchEvent(d *EventDispatcher) bool {
	if m.event == nil {
		return true
	}
	switch m.kind {
	case FocusMediator, BlurMediator, FocusInMediator, FocusOutMediator:
		if rt, ok := m.event.(relatedTargetEvent); ok {
			d.Path().AdjustForRelatedTarget(rt.RelatedTarget())
		}
		return d.Dispatch()
	case MouseMediator:
		return m.dispatchMouseEvent(d)
	case TouchMediator:
		if te, ok := m.event.(*TouchEvent); ok {
			d.Path().AdjustForTouchEvent(te)
		}
		return d.Dispatch()
	case WheelMediator:
		return d.Dispatch() && !m.event.AsEvent().DefaultHandled()
	default:
		return d.Dispatch()
	}
}

func (m *EventDispatchMediator) dispatchMouseEvent(d *EventDispatcher) bool {
	me, ok := m.event.(mouseEventer)
	if !ok {
		assertFailed("mouse mediator holds a non-mouse event", logrus.Fields{"event": m.event.AsEvent().Type()})
		return d.Dispatch()
	}
	event := me.AsMouseEvent()
	relatedTarget := event.RelatedTarget()

	if m.mouseMode == SyntheticMouseEvent {
		d.Path().AdjustForRelatedTarget(relatedTarget)
		return d.Dispatch()
	}

	if event.Type() == "" {
		assertFailed("mouse event without a type", nil)
	}
	if relatedTarget != nil && relatedTarget == d.Node() {
		assertFailed("mouse event targets its own related target", logrus.Fields{
			"event": event.Type(),
			"node":  d.Node().describe(),
		})
	}

	d.Path().AdjustForRelatedTarget(relatedTarget)
	d.Dispatch()
	swallowEvent := event.DefaultHandled() || event.DefaultPrevented()

	if event.Type() != EventTypeClick || event.Detail() != 2 {
		return !swallowEvent
	}

	dblclick := newDoubleClickEvent(event)
	if !DispatchEvent(d.Node(), NewMouseEventDispatchMediator(dblclick, NonSyntheticMouseEvent)) {
		return false
	}
	return !swallowEvent
}

// newDoubleClickEvent builds the dblclick that follows a click with detail 2.
func newDoubleClickEvent(click *MouseEvent) *MouseEvent {
	dblclick := NewMouseEvent(EventTypeDblClick, MouseEventInit{
		Bubbles:       true,
		Cancelable:    true,
		View:          click.View(),
		Detail:        click.Detail(),
		ScreenX:       click.screenX,
		ScreenY:       click.screenY,
		ClientX:       click.clientX,
		ClientY:       click.clientY,
		Modifiers:     click.modifiers,
		Button:        click.rawButton(),
		RelatedTarget: click.RelatedTarget(),
		SyntheticType: click.syntheticType,
	})
	dblclick.isTrusted = click.isTrusted
	dblclick.underlyingEvent = click.underlyingEvent
	if click.DefaultHandled() {
		dblclick.SetDefaultHandled()
	}
	return dblclick
}
