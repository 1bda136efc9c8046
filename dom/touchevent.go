package dom

// Touch is a single contact point. Its target is the node the touch
// started on and does not change while the touch moves.
// https://w3c.github.io/touch-events/#touch-interface
type Touch struct {
	identifier int
	target     *Node

	screenX, screenY int
	clientX, clientY int
	radiusX, radiusY int

	rotationAngle float64
	force         float64
}

// TouchInit holds the construction parameters of a Touch.
type TouchInit struct {
	Identifier       int
	Target           *Node
	ScreenX, ScreenY int
	ClientX, ClientY int
	RadiusX, RadiusY int
	RotationAngle    float64
	Force            float64
}

// NewTouch creates a touch point.
func NewTouch(init TouchInit) *Touch {
	return &Touch{
		identifier:    init.Identifier,
		target:        init.Target,
		screenX:       init.ScreenX,
		screenY:       init.ScreenY,
		clientX:       init.ClientX,
		clientY:       init.ClientY,
		radiusX:       init.RadiusX,
		radiusY:       init.RadiusY,
		rotationAngle: init.RotationAngle,
		force:         init.Force,
	}
}

func (t *Touch) cloneWithTarget(target *Node) *Touch {
	clone := *t
	clone.target = target
	return &clone
}

// Identifier returns the identifier of the contact point.
func (t *Touch) Identifier() int { return t.identifier }

// Target returns the node the touch started on, retargeted for the scope of
// the TouchList it was read from.
func (t *Touch) Target() *Node { return t.target }

// ScreenX returns the horizontal screen coordinate.
func (t *Touch) ScreenX() int { return t.screenX }

// ScreenY returns the vertical screen coordinate.
func (t *Touch) ScreenY() int { return t.screenY }

// ClientX returns the horizontal viewport coordinate.
func (t *Touch) ClientX() int { return t.clientX }

// ClientY returns the vertical viewport coordinate.
func (t *Touch) ClientY() int { return t.clientY }

// PageX returns the horizontal document coordinate.
func (t *Touch) PageX() int { return t.clientX }

// PageY returns the vertical document coordinate.
func (t *Touch) PageY() int { return t.clientY }

// RadiusX returns the horizontal radius of the contact ellipse.
func (t *Touch) RadiusX() int { return t.radiusX }

// RadiusY returns the vertical radius of the contact ellipse.
func (t *Touch) RadiusY() int { return t.radiusY }

// RotationAngle returns the rotation of the contact ellipse in degrees.
func (t *Touch) RotationAngle() float64 { return t.rotationAngle }

// Force returns the pressure in the range [0, 1].
func (t *Touch) Force() float64 { return t.force }

// TouchList is an ordered list of touches. Lists are filled while an event
// is being built and treated as immutable by the dispatcher.
type TouchList struct {
	touches []*Touch
}

// NewTouchList creates a list holding the given touches.
func NewTouchList(touches ...*Touch) *TouchList {
	return &TouchList{touches: append([]*Touch(nil), touches...)}
}

// Length returns the number of touches.
func (l *TouchList) Length() int {
	if l == nil {
		return 0
	}
	return len(l.touches)
}

// Item returns the touch at index, or nil if out of range.
func (l *TouchList) Item(index int) *Touch {
	if l == nil || index < 0 || index >= len(l.touches) {
		return nil
	}
	return l.touches[index]
}

// Append adds a touch to the end of the list.
func (l *TouchList) Append(t *Touch) {
	l.touches = append(l.touches, t)
}

// Touches returns a copy of the list's touches.
func (l *TouchList) Touches() []*Touch {
	if l == nil {
		return nil
	}
	return append([]*Touch(nil), l.touches...)
}

// TouchEvent is fired when touch points are placed, moved or removed.
// https://w3c.github.io/touch-events/#touchevent-interface
type TouchEvent struct {
	UIEvent
	keyState

	touches        *TouchList
	targetTouches  *TouchList
	changedTouches *TouchList
}

// NewTouchEvent creates a bubbling, cancelable touch event. Nil lists are
// replaced with empty ones.
func NewTouchEvent(eventType string, view *Document, touches, targetTouches, changedTouches *TouchList, modifiers KeyModifiers) *TouchEvent {
	e := &TouchEvent{}
	e.init(eventType, true, true)
	e.view = view
	e.modifiers = modifiers
	e.setTouchLists(touches, targetTouches, changedTouches)
	return e
}

func (e *TouchEvent) setTouchLists(touches, targetTouches, changedTouches *TouchList) {
	if touches == nil {
		touches = NewTouchList()
	}
	if targetTouches == nil {
		targetTouches = NewTouchList()
	}
	if changedTouches == nil {
		changedTouches = NewTouchList()
	}
	e.touches = touches
	e.targetTouches = targetTouches
	e.changedTouches = changedTouches
}

// Touches returns every active touch point.
func (e *TouchEvent) Touches() *TouchList { return e.touches }

// TargetTouches returns the touches visible to the current listener's scope
// that started inside it.
func (e *TouchEvent) TargetTouches() *TouchList { return e.targetTouches }

// ChangedTouches returns the touches that changed in this event.
func (e *TouchEvent) ChangedTouches() *TouchList { return e.changedTouches }
