package dom

import "time"

// Point is an integer position in window (client) or screen coordinates.
type Point struct {
	X, Y int
}

// PlatformMouseEvent is raw pointer input as delivered by the windowing layer,
// before it becomes a MouseEvent.
type PlatformMouseEvent struct {
	Position       Point // relative to the viewport
	GlobalPosition Point // relative to the screen
	Button         MouseButton
	ClickCount     int
	Modifiers      KeyModifiers
	Timestamp      time.Time
	// FromTouch marks mouse input synthesized from a touch gesture.
	FromTouch bool
}

// ScrollGranularity describes the unit of a platform wheel delta.
type ScrollGranularity uint8

const (
	ScrollByPixelWheelEvent ScrollGranularity = iota
	ScrollByPageWheelEvent
)

// PlatformWheelEvent is raw wheel input as delivered by the windowing layer.
// Positive deltas scroll content towards the origin (wheel up/left).
type PlatformWheelEvent struct {
	Position       Point
	GlobalPosition Point
	DeltaX, DeltaY float64
	// WheelTicksX/Y count wheel notches; trackpads report fractions.
	WheelTicksX, WheelTicksY float64
	Granularity              ScrollGranularity
	Modifiers                KeyModifiers
	Timestamp                time.Time

	DirectionInvertedFromDevice bool
}

// IsZero reports whether the event carries no movement on either axis.
func (e PlatformWheelEvent) IsZero() bool {
	return e.DeltaX == 0 && e.DeltaY == 0
}
