package dom

// MouseButton identifies a mouse button. NoButton is the sentinel for events
// that are not caused by a button, such as mousemove.
type MouseButton int16

const (
	NoButton     MouseButton = -1
	LeftButton   MouseButton = 0
	MiddleButton MouseButton = 1
	RightButton  MouseButton = 2
)

// SyntheticClickType records where a mouse event really came from.
type SyntheticClickType uint8

const (
	RealOrIndistinguishable SyntheticClickType = iota
	FromTouch
)

// MouseEvent is a pointer event with coordinates, button and related target.
// https://w3c.github.io/uievents/#interface-mouseevent
type MouseEvent struct {
	UIEvent
	keyState

	screenX, screenY int
	clientX, clientY int

	button     MouseButton
	buttonDown bool

	relatedTarget *Node
	syntheticType SyntheticClickType
	simulated     bool
}

// MouseEventInit holds the construction parameters of a MouseEvent.
// Button defaults to LeftButton; pass NoButton for button-less events.
type MouseEventInit struct {
	Bubbles    bool
	Cancelable bool
	View       *Document
	Detail     int

	ScreenX, ScreenY int
	ClientX, ClientY int
	Modifiers        KeyModifiers
	Button           MouseButton
	RelatedTarget    *Node
	SyntheticType    SyntheticClickType
}

// NewMouseEvent creates a mouse event.
func NewMouseEvent(eventType string, init MouseEventInit) *MouseEvent {
	e := &MouseEvent{}
	e.initMouseEvent(eventType, init)
	return e
}

func (e *MouseEvent) initMouseEvent(eventType string, init MouseEventInit) {
	e.init(eventType, init.Bubbles, init.Cancelable)
	e.view = init.View
	e.detail = init.Detail
	e.screenX, e.screenY = init.ScreenX, init.ScreenY
	e.clientX, e.clientY = init.ClientX, init.ClientY
	e.modifiers = init.Modifiers
	e.setButton(init.Button)
	e.relatedTarget = init.RelatedTarget
	e.syntheticType = init.SyntheticType
}

func (e *MouseEvent) setButton(button MouseButton) {
	if button == NoButton {
		e.button = 0
		e.buttonDown = false
		return
	}
	e.button = button
	e.buttonDown = true
}

// InitMouseEvent reinitializes the event. It has no effect once dispatched.
func (e *MouseEvent) InitMouseEvent(eventType string, init MouseEventInit) {
	if e.dispatched {
		return
	}
	e.initMouseEvent(eventType, init)
}

// NewMouseEventFromPlatform builds a trusted mouse event from platform input.
// mouseenter and mouseleave do not bubble; they and mousemove are not cancelable.
func NewMouseEventFromPlatform(eventType string, view *Document, pe PlatformMouseEvent, detail int, relatedTarget *Node) *MouseEvent {
	enterOrLeave := eventType == EventTypeMouseEnter || eventType == EventTypeMouseLeave
	syntheticType := RealOrIndistinguishable
	if pe.FromTouch {
		syntheticType = FromTouch
	}
	e := NewMouseEvent(eventType, MouseEventInit{
		Bubbles:       !enterOrLeave,
		Cancelable:    eventType != EventTypeMouseMove && !enterOrLeave,
		View:          view,
		Detail:        detail,
		ScreenX:       pe.GlobalPosition.X,
		ScreenY:       pe.GlobalPosition.Y,
		ClientX:       pe.Position.X,
		ClientY:       pe.Position.Y,
		Modifiers:     pe.Modifiers,
		Button:        pe.Button,
		RelatedTarget: relatedTarget,
		SyntheticType: syntheticType,
	})
	if !pe.Timestamp.IsZero() {
		e.timeStamp = pe.Timestamp
	}
	e.isTrusted = true
	return e
}

// NewSimulatedMouseEvent creates a bubbling, cancelable mouse event standing
// in for underlying, e.g. a click produced by a key press. Modifier state is
// copied from underlying, and its positions too when it is a mouse event.
func NewSimulatedMouseEvent(eventType string, view *Document, underlying DOMEvent) *MouseEvent {
	init := MouseEventInit{
		Bubbles:    true,
		Cancelable: true,
		View:       view,
	}
	if ks, ok := underlying.(keyStateEvent); ok {
		init.Modifiers = ks.Modifiers()
	}
	if me, ok := underlying.(mouseEventer); ok {
		m := me.AsMouseEvent()
		init.ScreenX, init.ScreenY = m.screenX, m.screenY
		init.ClientX, init.ClientY = m.clientX, m.clientY
	}
	e := NewMouseEvent(eventType, init)
	e.simulated = true
	if underlying != nil {
		e.underlyingEvent = underlying
		e.isTrusted = underlying.AsEvent().isTrusted
	}
	return e
}

// mouseEventer is implemented by MouseEvent and every type embedding it.
type mouseEventer interface {
	DOMEvent
	AsMouseEvent() *MouseEvent
}

// AsMouseEvent returns the embedded MouseEvent of a mouse-derived event.
func (e *MouseEvent) AsMouseEvent() *MouseEvent {
	return e
}

// ScreenX returns the horizontal position relative to the screen.
func (e *MouseEvent) ScreenX() int { return e.screenX }

// ScreenY returns the vertical position relative to the screen.
func (e *MouseEvent) ScreenY() int { return e.screenY }

// ClientX returns the horizontal position relative to the viewport.
func (e *MouseEvent) ClientX() int { return e.clientX }

// ClientY returns the vertical position relative to the viewport.
func (e *MouseEvent) ClientY() int { return e.clientY }

// PageX returns the horizontal position relative to the document. The
// viewport is never scrolled here, so it equals ClientX.
func (e *MouseEvent) PageX() int { return e.clientX }

// PageY returns the vertical position relative to the document.
func (e *MouseEvent) PageY() int { return e.clientY }

// Button returns the button that changed state, or 0 when no button did.
func (e *MouseEvent) Button() MouseButton {
	return e.button
}

// ButtonDown reports whether the event was caused by a button.
func (e *MouseEvent) ButtonDown() bool {
	return e.buttonDown
}

// Which returns the legacy 1-based button number.
func (e *MouseEvent) Which() int {
	return int(e.button) + 1
}

// rawButton returns the button including the NoButton sentinel, for copying
// into a new event.
func (e *MouseEvent) rawButton() MouseButton {
	if !e.buttonDown {
		return NoButton
	}
	return e.button
}

// RelatedTarget returns the secondary target, as seen by the running listener.
func (e *MouseEvent) RelatedTarget() *Node {
	return e.relatedTarget
}

func (e *MouseEvent) setRelatedTarget(target *Node) {
	e.relatedTarget = target
}

// SyntheticType reports whether the event was synthesized from touch input.
func (e *MouseEvent) SyntheticType() SyntheticClickType {
	return e.syntheticType
}

// IsSimulated reports whether the event was created by DispatchSimulatedClick
// or NewSimulatedMouseEvent.
func (e *MouseEvent) IsSimulated() bool {
	return e.simulated
}
