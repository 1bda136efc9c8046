package dom

import (
	"testing"
	"time"
)

func TestEvent_InitEventIgnoredAfterDispatch(t *testing.T) {
	_, _, _, span := newChainDocument(t)
	ev := NewEvent("ping", false, false)
	ev.InitEvent("pong", true, true)
	if ev.Type() != "pong" || !ev.Bubbles() || !ev.Cancelable() {
		t.Fatalf("InitEvent before dispatch should apply, got %q", ev.Type())
	}

	DispatchEvent(span, NewEventDispatchMediator(ev))
	ev.InitEvent("other", false, false)
	if ev.Type() != "pong" {
		t.Errorf("InitEvent after dispatch should be ignored, got %q", ev.Type())
	}
	ev.SetTarget(nil)
	if ev.Target() != span {
		t.Error("SetTarget after dispatch should be ignored")
	}
}

func TestEventPhase_String(t *testing.T) {
	tests := []struct {
		phase EventPhase
		want  string
	}{
		{EventPhaseNone, "NONE"},
		{EventPhaseCapturing, "CAPTURING_PHASE"},
		{EventPhaseAtTarget, "AT_TARGET"},
		{EventPhaseBubbling, "BUBBLING_PHASE"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("EventPhase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestKeyModifiers_String(t *testing.T) {
	if got := KeyModifiers(0).String(); got != "none" {
		t.Errorf("Expected 'none', got %q", got)
	}
	if got := (ModifierCtrl | ModifierMeta).String(); got != "Ctrl+Meta" {
		t.Errorf("Expected 'Ctrl+Meta', got %q", got)
	}
}

func TestMouseEvent_ButtonSentinel(t *testing.T) {
	move := NewMouseEvent(EventTypeMouseMove, MouseEventInit{Button: NoButton})
	if move.Button() != 0 || move.ButtonDown() {
		t.Errorf("NoButton should read as button 0 and not down, got %d/%v", move.Button(), move.ButtonDown())
	}
	if move.Which() != 1 {
		t.Errorf("Expected which 1, got %d", move.Which())
	}

	right := NewMouseEvent(EventTypeMouseDown, MouseEventInit{Button: RightButton})
	if right.Button() != RightButton || !right.ButtonDown() || right.Which() != 3 {
		t.Errorf("unexpected right button state: %d/%v/%d", right.Button(), right.ButtonDown(), right.Which())
	}
}

func TestNewMouseEventFromPlatform(t *testing.T) {
	doc := NewDocument()
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	pe := PlatformMouseEvent{
		Position:       Point{X: 1, Y: 2},
		GlobalPosition: Point{X: 101, Y: 202},
		Button:         LeftButton,
		Modifiers:      ModifierShift,
		Timestamp:      stamp,
		FromTouch:      true,
	}

	down := NewMouseEventFromPlatform(EventTypeMouseDown, doc, pe, 1, nil)
	if !down.Bubbles() || !down.Cancelable() || !down.IsTrusted() {
		t.Error("mousedown should be a trusted, bubbling, cancelable event")
	}
	if down.ClientX() != 1 || down.ScreenY() != 202 || down.PageX() != 1 {
		t.Errorf("unexpected coordinates: client %d,%d screen %d,%d", down.ClientX(), down.ClientY(), down.ScreenX(), down.ScreenY())
	}
	if !down.TimeStamp().Equal(stamp) {
		t.Errorf("Expected platform timestamp, got %v", down.TimeStamp())
	}
	if down.SyntheticType() != FromTouch {
		t.Error("Expected FromTouch synthetic type")
	}
	if down.View() != doc || down.Detail() != 1 {
		t.Error("view and detail should be set")
	}

	move := NewMouseEventFromPlatform(EventTypeMouseMove, doc, pe, 0, nil)
	if move.Cancelable() {
		t.Error("mousemove should not be cancelable")
	}
	enter := NewMouseEventFromPlatform(EventTypeMouseEnter, doc, pe, 0, nil)
	if enter.Bubbles() || enter.Cancelable() {
		t.Error("mouseenter should neither bubble nor be cancelable")
	}
}

func TestNewWheelEvent_DeltaDerivation(t *testing.T) {
	fromDelta := NewWheelEvent(WheelEventInit{DeltaX: 2, DeltaY: -1})
	if fromDelta.WheelDeltaX() != -240 || fromDelta.WheelDeltaY() != 120 {
		t.Errorf("wheelDelta should be -delta*120, got %d,%d", fromDelta.WheelDeltaX(), fromDelta.WheelDeltaY())
	}
	if fromDelta.WheelDelta() != 120 {
		t.Errorf("WheelDelta should report the vertical delta, got %d", fromDelta.WheelDelta())
	}

	fromWheel := NewWheelEvent(WheelEventInit{WheelDeltaY: -360})
	if fromWheel.DeltaY() != 3 {
		t.Errorf("delta should be -wheelDelta/120, got %v", fromWheel.DeltaY())
	}
	if fromWheel.Type() != EventTypeWheel {
		t.Errorf("Expected wheel type, got %q", fromWheel.Type())
	}
}

func TestNewWheelEventFromPlatform_PageGranularity(t *testing.T) {
	ev := NewWheelEventFromPlatform(PlatformWheelEvent{DeltaY: 1, Granularity: ScrollByPageWheelEvent, DirectionInvertedFromDevice: true}, nil)
	if ev.DeltaMode() != DeltaPage {
		t.Errorf("Expected DeltaPage, got %d", ev.DeltaMode())
	}
	if !ev.WebkitDirectionInvertedFromDevice() {
		t.Error("direction inversion should be carried over")
	}
	if ev.ButtonDown() {
		t.Error("wheel events are not caused by a button")
	}
}

func TestFocusEvent_SetRelatedTarget(t *testing.T) {
	_, _, div, span := newChainDocument(t)
	ev := NewFocusEvent(EventTypeFocus, false, false, nil, 0, nil)
	ev.SetRelatedTarget(div)
	if ev.RelatedTarget() != div {
		t.Error("related target should be settable before dispatch")
	}
	DispatchEvent(span, NewFocusEventDispatchMediator(ev))
	ev.SetRelatedTarget(nil)
	if ev.RelatedTarget() != div {
		t.Error("related target should be frozen after dispatch")
	}
}

func TestTouchList(t *testing.T) {
	var nilList *TouchList
	if nilList.Length() != 0 || nilList.Item(0) != nil || nilList.Touches() != nil {
		t.Error("nil TouchList should behave as empty")
	}

	t1 := NewTouch(TouchInit{Identifier: 7, ClientX: 3, Force: 0.5})
	list := NewTouchList(t1)
	list.Append(NewTouch(TouchInit{Identifier: 8}))
	if list.Length() != 2 {
		t.Fatalf("Expected 2 touches, got %d", list.Length())
	}
	if list.Item(0).Identifier() != 7 || list.Item(0).Force() != 0.5 || list.Item(0).PageX() != 3 {
		t.Error("unexpected first touch")
	}
	if list.Item(2) != nil || list.Item(-1) != nil {
		t.Error("out of range Item should return nil")
	}

	ev := NewTouchEvent(EventTypeTouchStart, nil, list, nil, nil, ModifierAlt)
	if ev.TargetTouches() == nil || ev.TargetTouches().Length() != 0 {
		t.Error("nil lists should become empty lists")
	}
	if !ev.AltKey() || !ev.Bubbles() || !ev.Cancelable() {
		t.Error("touch events bubble, are cancelable and carry modifiers")
	}
}

func TestNewSimulatedMouseEvent(t *testing.T) {
	underlying := NewMouseEvent(EventTypeMouseUp, MouseEventInit{ClientX: 9, ScreenX: 19, Modifiers: ModifierMeta})
	underlying.SetTrusted(true)

	ev := NewSimulatedMouseEvent(EventTypeClick, nil, underlying)
	if !ev.IsSimulated() || !ev.IsTrusted() {
		t.Error("simulated event should be marked simulated and inherit trust")
	}
	if ev.ClientX() != 9 || ev.ScreenX() != 19 || !ev.MetaKey() {
		t.Error("positions and modifiers should be copied from the underlying event")
	}
	if ev.UnderlyingEvent() != DOMEvent(underlying) {
		t.Error("underlying event should be recorded")
	}

	bare := NewSimulatedMouseEvent(EventTypeClick, nil, nil)
	if bare.UnderlyingEvent() != nil || bare.IsTrusted() {
		t.Error("a simulated click without an underlying event is untrusted")
	}
}
