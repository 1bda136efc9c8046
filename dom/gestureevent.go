package dom

// GestureEvent carries a recognized gesture such as a tap or a scroll.
type GestureEvent struct {
	UIEvent
	keyState

	screenX, screenY int
	clientX, clientY int
	deltaX, deltaY   float64
}

// GestureEventInit holds the construction parameters of a GestureEvent.
type GestureEventInit struct {
	View             *Document
	ScreenX, ScreenY int
	ClientX, ClientY int
	DeltaX, DeltaY   float64
	Modifiers        KeyModifiers
}

// NewGestureEvent creates a bubbling, cancelable gesture event.
func NewGestureEvent(eventType string, init GestureEventInit) *GestureEvent {
	e := &GestureEvent{
		screenX: init.ScreenX,
		screenY: init.ScreenY,
		clientX: init.ClientX,
		clientY: init.ClientY,
		deltaX:  init.DeltaX,
		deltaY:  init.DeltaY,
	}
	e.init(eventType, true, true)
	e.view = init.View
	e.modifiers = init.Modifiers
	return e
}

// ScreenX returns the horizontal screen coordinate of the gesture.
func (e *GestureEvent) ScreenX() int { return e.screenX }

// ScreenY returns the vertical screen coordinate of the gesture.
func (e *GestureEvent) ScreenY() int { return e.screenY }

// ClientX returns the horizontal viewport coordinate of the gesture.
func (e *GestureEvent) ClientX() int { return e.clientX }

// ClientY returns the vertical viewport coordinate of the gesture.
func (e *GestureEvent) ClientY() int { return e.clientY }

// DeltaX returns the horizontal scroll amount.
func (e *GestureEvent) DeltaX() float64 { return e.deltaX }

// DeltaY returns the vertical scroll amount.
func (e *GestureEvent) DeltaY() float64 { return e.deltaY }
