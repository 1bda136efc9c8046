package dom

import "strings"

// UIEvent is the base of user-interface events.
// https://w3c.github.io/uievents/#interface-uievent
type UIEvent struct {
	Event
	view   *Document
	detail int
}

// NewUIEvent creates a UI event. view is the document whose window produced
// the event and may be nil.
func NewUIEvent(eventType string, bubbles, cancelable bool, view *Document, detail int) *UIEvent {
	e := &UIEvent{view: view, detail: detail}
	e.init(eventType, bubbles, cancelable)
	return e
}

// View returns the document whose window produced the event.
func (e *UIEvent) View() *Document {
	return e.view
}

// Detail returns the event detail; for mouse clicks, the click count.
func (e *UIEvent) Detail() int {
	return e.detail
}

// KeyModifiers is a bitmask of the modifier keys held during an event.
type KeyModifiers uint8

const (
	ModifierCtrl KeyModifiers = 1 << iota
	ModifierShift
	ModifierAlt
	ModifierMeta
)

// Has returns true if the specified modifier is set.
func (m KeyModifiers) Has(mod KeyModifiers) bool {
	return m&mod != 0
}

// String returns the modifiers joined with "+", or "none".
func (m KeyModifiers) String() string {
	var parts []string
	if m.Has(ModifierCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModifierShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModifierAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModifierMeta) {
		parts = append(parts, "Meta")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// keyState holds modifier state for events that carry it.
type keyState struct {
	modifiers KeyModifiers
}

// Modifiers returns the modifier keys held when the event was created.
func (k *keyState) Modifiers() KeyModifiers { return k.modifiers }

// CtrlKey reports whether Control was held.
func (k *keyState) CtrlKey() bool { return k.modifiers.Has(ModifierCtrl) }

// ShiftKey reports whether Shift was held.
func (k *keyState) ShiftKey() bool { return k.modifiers.Has(ModifierShift) }

// AltKey reports whether Alt was held.
func (k *keyState) AltKey() bool { return k.modifiers.Has(ModifierAlt) }

// MetaKey reports whether Meta was held.
func (k *keyState) MetaKey() bool { return k.modifiers.Has(ModifierMeta) }

// keyStateEvent is implemented by events embedding keyState.
type keyStateEvent interface {
	Modifiers() KeyModifiers
}
