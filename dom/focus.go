package dom

// ActiveElement returns the focused element, or the body when nothing is
// focused.
func (d *Document) ActiveElement() *Element {
	if f := d.documentData.focused; f != nil {
		return f
	}
	return d.Body()
}

// FocusedElement returns the focused element, or nil.
func (d *Document) FocusedElement() *Element {
	return d.documentData.focused
}

// SetFocusedElement moves focus to el, or clears it when el is nil. The
// previously focused element receives blur and focusout, then el receives
// focus and focusin. The events are queued until focus has moved, so their
// listeners observe the new active element. Elements outside the document
// cannot take focus.
func (d *Document) SetFocusedElement(el *Element) {
	if el != nil && (el.ownerDoc != d || !el.AsNode().IsConnected()) {
		return
	}
	old := d.documentData.focused
	if old == el {
		return
	}

	queue := d.EventQueue()
	queue.RunScoped(func() {
		d.documentData.focused = el

		var oldNode, newNode *Node
		if old != nil {
			oldNode = old.AsNode()
		}
		if el != nil {
			newNode = el.AsNode()
		}

		if oldNode != nil {
			queue.DispatchScopedEvent(oldNode, NewBlurEventDispatchMediator(
				NewFocusEvent(EventTypeBlur, false, false, d, 0, newNode)))
			queue.DispatchScopedEvent(oldNode, NewFocusOutEventDispatchMediator(
				NewFocusEvent(EventTypeFocusOut, true, false, d, 0, newNode)))
		}
		if newNode != nil {
			queue.DispatchScopedEvent(newNode, NewFocusEventDispatchMediator(
				NewFocusEvent(EventTypeFocus, false, false, d, 0, oldNode)))
			queue.DispatchScopedEvent(newNode, NewFocusInEventDispatchMediator(
				NewFocusEvent(EventTypeFocusIn, true, false, d, 0, oldNode)))
		}
	})
}
