package dom

// FocusEvent is fired when an element gains or loses focus.
// https://w3c.github.io/uievents/#interface-focusevent
type FocusEvent struct {
	UIEvent
	relatedTarget *Node
}

// NewFocusEvent creates a focus event. relatedTarget is the element losing
// focus for focus/focusin and the one gaining it for blur/focusout.
func NewFocusEvent(eventType string, bubbles, cancelable bool, view *Document, detail int, relatedTarget *Node) *FocusEvent {
	e := &FocusEvent{relatedTarget: relatedTarget}
	e.init(eventType, bubbles, cancelable)
	e.view = view
	e.detail = detail
	return e
}

// RelatedTarget returns the secondary target, as seen by the running listener.
func (e *FocusEvent) RelatedTarget() *Node {
	return e.relatedTarget
}

// SetRelatedTarget changes the related target before dispatch.
func (e *FocusEvent) SetRelatedTarget(target *Node) {
	if e.dispatched {
		return
	}
	e.relatedTarget = target
}

func (e *FocusEvent) setRelatedTarget(target *Node) {
	e.relatedTarget = target
}
