package dom

// DeltaMode is the unit of WheelEvent deltas.
type DeltaMode uint32

const (
	DeltaPixel DeltaMode = 0
	DeltaLine  DeltaMode = 1
	DeltaPage  DeltaMode = 2
)

// wheelDeltaMultiplier converts between wheel notches and legacy wheelDelta.
const wheelDeltaMultiplier = 120

// WheelEvent is a mouse event carrying scroll deltas.
// https://w3c.github.io/uievents/#interface-wheelevent
type WheelEvent struct {
	MouseEvent

	deltaX, deltaY, deltaZ   float64
	wheelDeltaX, wheelDeltaY int
	deltaMode                DeltaMode

	directionInvertedFromDevice bool
}

// WheelEventInit holds the construction parameters of a WheelEvent. Either
// member of a delta pair may be left zero; it is then derived from the
// other as wheelDelta = -delta * 120.
type WheelEventInit struct {
	MouseEventInit

	DeltaX, DeltaY, DeltaZ   float64
	WheelDeltaX, WheelDeltaY int
	DeltaMode                DeltaMode
}

// NewWheelEvent creates a wheel event of type "wheel".
func NewWheelEvent(init WheelEventInit) *WheelEvent {
	e := &WheelEvent{}
	e.initMouseEvent(EventTypeWheel, init.MouseEventInit)
	e.deltaX, e.wheelDeltaX = resolveWheelDeltas(init.DeltaX, init.WheelDeltaX)
	e.deltaY, e.wheelDeltaY = resolveWheelDeltas(init.DeltaY, init.WheelDeltaY)
	e.deltaZ = init.DeltaZ
	e.deltaMode = init.DeltaMode
	return e
}

func resolveWheelDeltas(delta float64, wheelDelta int) (float64, int) {
	switch {
	case delta == 0 && wheelDelta != 0:
		delta = -float64(wheelDelta) / wheelDeltaMultiplier
	case wheelDelta == 0 && delta != 0:
		wheelDelta = int(-delta * wheelDeltaMultiplier)
	}
	return delta, wheelDelta
}

// NewWheelEventFromPlatform builds a trusted wheel event from platform input.
// DOM deltas point the opposite way to platform deltas; legacy wheel deltas
// are derived from the notch counts.
func NewWheelEventFromPlatform(pe PlatformWheelEvent, view *Document) *WheelEvent {
	mode := DeltaPixel
	if pe.Granularity == ScrollByPageWheelEvent {
		mode = DeltaPage
	}
	e := &WheelEvent{
		deltaX:      -pe.DeltaX,
		deltaY:      -pe.DeltaY,
		wheelDeltaX: int(pe.WheelTicksX * wheelDeltaMultiplier),
		wheelDeltaY: int(pe.WheelTicksY * wheelDeltaMultiplier),
		deltaMode:   mode,

		directionInvertedFromDevice: pe.DirectionInvertedFromDevice,
	}
	e.initMouseEvent(EventTypeWheel, MouseEventInit{
		Bubbles:    true,
		Cancelable: true,
		View:       view,
		ScreenX:    pe.GlobalPosition.X,
		ScreenY:    pe.GlobalPosition.Y,
		ClientX:    pe.Position.X,
		ClientY:    pe.Position.Y,
		Modifiers:  pe.Modifiers,
		Button:     NoButton,
	})
	if !pe.Timestamp.IsZero() {
		e.timeStamp = pe.Timestamp
	}
	e.isTrusted = true
	return e
}

// DeltaX returns the horizontal scroll amount in DeltaMode units.
func (e *WheelEvent) DeltaX() float64 { return e.deltaX }

// DeltaY returns the vertical scroll amount in DeltaMode units.
func (e *WheelEvent) DeltaY() float64 { return e.deltaY }

// DeltaZ returns the depth scroll amount.
func (e *WheelEvent) DeltaZ() float64 { return e.deltaZ }

// WheelDeltaX returns the legacy horizontal delta (120 per notch).
func (e *WheelEvent) WheelDeltaX() int { return e.wheelDeltaX }

// WheelDeltaY returns the legacy vertical delta (120 per notch).
func (e *WheelEvent) WheelDeltaY() int { return e.wheelDeltaY }

// WheelDelta returns the legacy vertical delta, or the horizontal one when
// there is no vertical movement.
func (e *WheelEvent) WheelDelta() int {
	if e.wheelDeltaY != 0 {
		return e.wheelDeltaY
	}
	return e.wheelDeltaX
}

// DeltaMode returns the unit of the deltas.
func (e *WheelEvent) DeltaMode() DeltaMode { return e.deltaMode }

// WebkitDirectionInvertedFromDevice reports natural scrolling.
func (e *WheelEvent) WebkitDirectionInvertedFromDevice() bool {
	return e.directionInvertedFromDevice
}
