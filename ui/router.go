// Package ui connects fyne pointer input to the dom dispatch core.
package ui

import (
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/sirupsen/logrus"

	"github.com/chrisuehlinger/evdispatch/dom"
)

// RouterConfig tunes click counting and wheel conversion.
type RouterConfig struct {
	// DoubleClickInterval is the longest gap between presses that still
	// counts as a repeated click.
	DoubleClickInterval time.Duration
	// DoubleClickDistance is how far, in pixels, the pointer may move
	// between repeated presses.
	DoubleClickDistance float32
	// PixelsPerWheelTick converts fyne scroll deltas into wheel notches.
	PixelsPerWheelTick float32
}

// DefaultRouterConfig returns the settings of a typical desktop.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		DoubleClickInterval: 500 * time.Millisecond,
		DoubleClickDistance: 4,
		PixelsPerWheelTick:  40,
	}
}

// Router turns fyne mouse and scroll events into dom events. It hit-tests
// the document, counts repeated clicks, tracks the hovered node for
// mouseover and mouseout, and moves focus on mousedown.
//
// A Router is not safe for concurrent use; fyne delivers input on one
// goroutine.
type Router struct {
	doc    *dom.Document
	config RouterConfig
	exec   func(func())
	now    func() time.Time
	log    *logrus.Entry

	hovered *dom.Node
	pressed *dom.Node

	clickCount      int
	lastPressTime   time.Time
	lastPressPos    fyne.Position
	lastPressButton dom.MouseButton
}

// NewRouter creates a router for doc.
func NewRouter(doc *dom.Document, config RouterConfig) *Router {
	if config.PixelsPerWheelTick <= 0 {
		config.PixelsPerWheelTick = DefaultRouterConfig().PixelsPerWheelTick
	}
	return &Router{
		doc:    doc,
		config: config,
		exec:   func(fn func()) { fn() },
		now:    time.Now,
		log:    logrus.WithField("component", "router"),
	}
}

// SetExecutor makes the router dispatch through exec, e.g. js.Runtime.Do
// when script listeners are attached.
func (r *Router) SetExecutor(exec func(func())) {
	if exec == nil {
		exec = func(fn func()) { fn() }
	}
	r.exec = exec
}

// Hovered returns the node under the pointer, or nil.
func (r *Router) Hovered() *dom.Node {
	return r.hovered
}

// ClickCount returns the count of the current click sequence.
func (r *Router) ClickCount() int {
	return r.clickCount
}

// MouseIn implements desktop.Hoverable.
func (r *Router) MouseIn(ev *desktop.MouseEvent) {
	r.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable.
func (r *Router) MouseMoved(ev *desktop.MouseEvent) {
	r.exec(func() {
		target := r.hitTest(ev.Position)
		pe := r.platformEvent(ev, dom.NoButton)
		r.updateHover(target, pe)
		if target != nil {
			r.fire(target, dom.EventTypeMouseMove, pe, 0, nil)
		}
	})
}

// MouseOut implements desktop.Hoverable.
func (r *Router) MouseOut() {
	r.exec(func() {
		r.updateHover(nil, dom.PlatformMouseEvent{Button: dom.NoButton, Timestamp: r.now()})
	})
}

// MouseDown implements desktop.Mouseable.
func (r *Router) MouseDown(ev *desktop.MouseEvent) {
	r.exec(func() {
		target := r.hitTest(ev.Position)
		button := convertButton(ev.Button)
		pe := r.platformEvent(ev, button)

		if r.isRepeatPress(ev.Position, button, pe.Timestamp) {
			r.clickCount++
		} else {
			r.clickCount = 1
		}
		r.lastPressTime = pe.Timestamp
		r.lastPressPos = ev.Position
		r.lastPressButton = button
		pe.ClickCount = r.clickCount

		r.pressed = target
		if target == nil {
			return
		}
		r.updateHover(target, pe)
		if r.fire(target, dom.EventTypeMouseDown, pe, r.clickCount, nil) {
			r.moveFocus(target)
		}
	})
}

// MouseUp implements desktop.Mouseable. A click follows when the button is
// released over the node it was pressed on.
func (r *Router) MouseUp(ev *desktop.MouseEvent) {
	r.exec(func() {
		target := r.hitTest(ev.Position)
		button := convertButton(ev.Button)
		pe := r.platformEvent(ev, button)
		pe.ClickCount = r.clickCount

		pressed := r.pressed
		r.pressed = nil
		if target == nil {
			return
		}
		r.fire(target, dom.EventTypeMouseUp, pe, r.clickCount, nil)
		if button == dom.LeftButton && target == pressed {
			r.fire(target, dom.EventTypeClick, pe, r.clickCount, nil)
		}
	})
}

// Scrolled implements fyne.Scrollable.
func (r *Router) Scrolled(ev *fyne.ScrollEvent) {
	r.exec(func() {
		target := r.hitTest(ev.Position)
		if target == nil {
			return
		}
		pe := dom.PlatformWheelEvent{
			Position:       toPoint(ev.Position),
			GlobalPosition: toPoint(ev.AbsolutePosition),
			DeltaX:         float64(ev.Scrolled.DX),
			DeltaY:         float64(ev.Scrolled.DY),
			WheelTicksX:    float64(ev.Scrolled.DX / r.config.PixelsPerWheelTick),
			WheelTicksY:    float64(ev.Scrolled.DY / r.config.PixelsPerWheelTick),
			Timestamp:      r.now(),
		}
		handled := !dom.DispatchEvent(target, dom.NewWheelEventDispatchMediator(pe, r.doc))
		r.log.WithFields(logrus.Fields{
			"dx":      pe.DeltaX,
			"dy":      pe.DeltaY,
			"handled": handled,
		}).Debug("wheel")
	})
}

func (r *Router) isRepeatPress(pos fyne.Position, button dom.MouseButton, at time.Time) bool {
	if r.clickCount == 0 || button != r.lastPressButton {
		return false
	}
	if at.Sub(r.lastPressTime) > r.config.DoubleClickInterval {
		return false
	}
	dx := float64(pos.X - r.lastPressPos.X)
	dy := float64(pos.Y - r.lastPressPos.Y)
	return math.Hypot(dx, dy) <= float64(r.config.DoubleClickDistance)
}

// updateHover sends mouseout to the node the pointer left and mouseover to
// the one it entered, each naming the other as related target.
func (r *Router) updateHover(target *dom.Node, pe dom.PlatformMouseEvent) {
	old := r.hovered
	if old == target {
		return
	}
	r.hovered = target
	pe.Button = dom.NoButton
	if old != nil && old.IsConnected() {
		r.fire(old, dom.EventTypeMouseOut, pe, 0, target)
	}
	if target != nil {
		r.fire(target, dom.EventTypeMouseOver, pe, 0, old)
	}
}

func (r *Router) fire(target *dom.Node, eventType string, pe dom.PlatformMouseEvent, detail int, relatedTarget *dom.Node) bool {
	event := dom.NewMouseEventFromPlatform(eventType, r.doc, pe, detail, relatedTarget)
	result := dom.DispatchEvent(target, dom.NewMouseEventDispatchMediator(event, dom.NonSyntheticMouseEvent))
	if eventType != dom.EventTypeMouseMove {
		r.log.WithFields(logrus.Fields{
			"event":  eventType,
			"target": target.NodeName(),
			"detail": detail,
		}).Debug("routed")
	}
	return result
}

// moveFocus focuses the nearest focusable inclusive ancestor of target, or
// clears focus when there is none.
func (r *Router) moveFocus(target *dom.Node) {
	for n := target; n != nil; n = eventParent(n) {
		if n.NodeType() != dom.ElementNode {
			continue
		}
		if el := (*dom.Element)(n); isFocusable(el) {
			r.doc.SetFocusedElement(el)
			return
		}
	}
	r.doc.SetFocusedElement(nil)
}

func eventParent(n *dom.Node) *dom.Node {
	if sr := n.AsShadowRoot(); sr != nil {
		if host := sr.Host(); host != nil {
			return host.AsNode()
		}
		return nil
	}
	return n.ParentNode()
}

func isFocusable(el *dom.Element) bool {
	if el.IsDisabledFormControl() {
		return false
	}
	if el.HasAttribute("tabindex") {
		return true
	}
	switch el.LocalName() {
	case "button", "input", "select", "textarea":
		return true
	case "a":
		return el.HasAttribute("href")
	}
	return false
}

// hitTest returns the node under pos, falling back to the body so that
// input over empty space still reaches the document.
func (r *Router) hitTest(pos fyne.Position) *dom.Node {
	if hit := r.doc.HitTest(float64(pos.X), float64(pos.Y)); hit != nil {
		return hit
	}
	if body := r.doc.Body(); body != nil {
		return body.AsNode()
	}
	if root := r.doc.DocumentElement(); root != nil {
		return root.AsNode()
	}
	return nil
}

func (r *Router) platformEvent(ev *desktop.MouseEvent, button dom.MouseButton) dom.PlatformMouseEvent {
	return dom.PlatformMouseEvent{
		Position:       toPoint(ev.Position),
		GlobalPosition: toPoint(ev.AbsolutePosition),
		Button:         button,
		Modifiers:      convertModifiers(ev.Modifier),
		Timestamp:      r.now(),
	}
}

func toPoint(p fyne.Position) dom.Point {
	return dom.Point{X: int(p.X), Y: int(p.Y)}
}

func convertButton(b desktop.MouseButton) dom.MouseButton {
	switch {
	case b&desktop.MouseButtonSecondary != 0:
		return dom.RightButton
	case b&desktop.MouseButtonTertiary != 0:
		return dom.MiddleButton
	default:
		return dom.LeftButton
	}
}

func convertModifiers(m fyne.KeyModifier) dom.KeyModifiers {
	var mods dom.KeyModifiers
	if m&fyne.KeyModifierControl != 0 {
		mods |= dom.ModifierCtrl
	}
	if m&fyne.KeyModifierShift != 0 {
		mods |= dom.ModifierShift
	}
	if m&fyne.KeyModifierAlt != 0 {
		mods |= dom.ModifierAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		mods |= dom.ModifierMeta
	}
	return mods
}
