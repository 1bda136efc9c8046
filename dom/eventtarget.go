package dom

// EventListenerFunc is a callback registered with AddEventListener.
type EventListenerFunc func(event DOMEvent)

// ListenerID identifies a registered listener for removal, since Go
// functions cannot be compared.
type ListenerID uint64

// ListenerOptions represents addEventListener options.
type ListenerOptions struct {
	Capture bool
	Once    bool
	// Passive listeners cannot cancel the event.
	Passive bool
}

type listenerEntry struct {
	id       ListenerID
	callback EventListenerFunc
	options  ListenerOptions
	removed  bool
}

// invokePass selects which listeners of a node run: capture listeners
// during the capturing pass, the others during the bubbling pass.
type invokePass uint8

const (
	capturingPass invokePass = iota
	bubblingPass
)

// AddEventListener registers a listener for the event type on this node.
func (n *Node) AddEventListener(eventType string, callback EventListenerFunc, opts ListenerOptions) ListenerID {
	if callback == nil {
		return 0
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]*listenerEntry)
	}
	n.nextListenerID++
	n.listeners[eventType] = append(n.listeners[eventType], &listenerEntry{
		id:       n.nextListenerID,
		callback: callback,
		options:  opts,
	})
	return n.nextListenerID
}

// RemoveEventListener unregisters a listener. A listener removed while an
// event is being dispatched does not run for the rest of that dispatch.
func (n *Node) RemoveEventListener(eventType string, id ListenerID) {
	listeners := n.listeners[eventType]
	for i, l := range listeners {
		if l.id == id {
			l.removed = true
			n.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// HasEventListeners returns true if there are any listeners for the event type.
func (n *Node) HasEventListeners(eventType string) bool {
	return len(n.listeners[eventType]) > 0
}

// fireEventListeners delivers the event to this node's own listeners for one
// invoke pass. Listeners added during the call are not invoked.
func (n *Node) fireEventListeners(event DOMEvent, pass invokePass) {
	ev := event.AsEvent()
	listeners := n.listeners[ev.eventType]
	if len(listeners) == 0 {
		return
	}
	snapshot := make([]*listenerEntry, len(listeners))
	copy(snapshot, listeners)

	for _, l := range snapshot {
		if l.removed {
			continue
		}
		if pass == capturingPass && !l.options.Capture {
			continue
		}
		if pass == bubblingPass && l.options.Capture {
			continue
		}
		if l.options.Once {
			n.RemoveEventListener(ev.eventType, l.id)
		}

		ev.inPassiveListener = l.options.Passive
		l.callback(event)
		ev.inPassiveListener = false

		if ev.immediatePropagationStopped {
			break
		}
	}
}
