package js

import (
	"strconv"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/evdispatch/dom"
)

// bindEventTarget adds addEventListener, removeEventListener and
// dispatchEvent to a node object. Listeners are registered with the dom node,
// so script listeners take part in the dispatch core's capture and bubble
// phases like any other.
func (b *DOMBinder) bindEventTarget(obj *goja.Object, node *dom.Node) {
	vm := b.runtime.vm

	obj.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		eventType := call.Arguments[0].String()
		callback, ok := goja.AssertFunction(call.Arguments[1])
		if !ok {
			return goja.Undefined()
		}
		opts := listenerOptionsFrom(call.Argument(2))
		value := call.Arguments[1]

		// Registering the same function twice for the same phase is a no-op.
		for _, l := range b.listeners[node] {
			if l.eventType == eventType && l.capture == opts.Capture && l.value.SameAs(value) {
				return goja.Undefined()
			}
		}

		var id dom.ListenerID
		id = node.AddEventListener(eventType, func(event dom.DOMEvent) {
			if opts.Once {
				b.forgetListener(node, id)
			}
			if _, err := callback(obj, b.BindEvent(event)); err != nil {
				b.runtime.reportError(err)
			}
		}, opts)
		b.listeners[node] = append(b.listeners[node], scriptListener{
			eventType: eventType,
			value:     value,
			capture:   opts.Capture,
			id:        id,
		})
		return goja.Undefined()
	})

	obj.Set("removeEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		eventType := call.Arguments[0].String()
		capture := listenerOptionsFrom(call.Argument(2)).Capture
		for _, l := range b.listeners[node] {
			if l.eventType == eventType && l.capture == capture && l.value.SameAs(call.Arguments[1]) {
				node.RemoveEventListener(eventType, l.id)
				b.forgetListener(node, l.id)
				break
			}
		}
		return goja.Undefined()
	})

	obj.Set("dispatchEvent", func(call goja.FunctionCall) goja.Value {
		event := b.EventFromValue(call.Argument(0))
		if event == nil {
			b.runtime.throwTypeError("dispatchEvent: argument is not an Event")
		}
		if event.AsEvent().IsDispatched() {
			b.runtime.throwDOMError(dom.ErrInvalidState("dispatchEvent: the event has already been dispatched"))
		}
		return vm.ToValue(dom.DispatchEvent(node, MediatorFor(event)))
	})
}

func (b *DOMBinder) forgetListener(node *dom.Node, id dom.ListenerID) {
	listeners := b.listeners[node]
	for i, l := range listeners {
		if l.id == id {
			b.listeners[node] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// listenerOptionsFrom reads the third addEventListener argument, either a
// capture boolean or an options object.
func listenerOptionsFrom(arg goja.Value) dom.ListenerOptions {
	var opts dom.ListenerOptions
	if arg == nil || goja.IsUndefined(arg) || goja.IsNull(arg) {
		return opts
	}
	obj := optionsObject(arg)
	if obj == nil {
		opts.Capture = arg.ToBoolean()
		return opts
	}
	opts.Capture = optBool(obj, "capture")
	opts.Once = optBool(obj, "once")
	opts.Passive = optBool(obj, "passive")
	return opts
}

// MediatorFor picks the mediator matching the event's kind. Mouse events
// created by script dispatch as real input, so a click with detail 2 is
// followed by a dblclick.
func MediatorFor(event dom.DOMEvent) *dom.EventDispatchMediator {
	switch e := event.(type) {
	case *dom.FocusEvent:
		switch e.Type() {
		case dom.EventTypeFocus:
			return dom.NewFocusEventDispatchMediator(e)
		case dom.EventTypeBlur:
			return dom.NewBlurEventDispatchMediator(e)
		case dom.EventTypeFocusIn:
			return dom.NewFocusInEventDispatchMediator(e)
		case dom.EventTypeFocusOut:
			return dom.NewFocusOutEventDispatchMediator(e)
		}
		return dom.NewEventDispatchMediator(e)
	case *dom.WheelEvent:
		// Script wheel events have no platform event to build from.
		return dom.NewEventDispatchMediator(e)
	case *dom.MouseEvent:
		return dom.NewMouseEventDispatchMediator(e, dom.NonSyntheticMouseEvent)
	case *dom.TouchEvent:
		return dom.NewTouchEventDispatchMediator(e)
	case *dom.GestureEvent:
		return dom.NewGestureEventDispatchMediator(e)
	default:
		return dom.NewEventDispatchMediator(event)
	}
}

// EventFromValue returns the dom event behind a script object, or nil.
func (b *DOMBinder) EventFromValue(v goja.Value) dom.DOMEvent {
	obj := optionsObject(v)
	if obj == nil {
		return nil
	}
	if goEvent := obj.Get("_goEvent"); goEvent != nil {
		if event, ok := goEvent.Export().(dom.DOMEvent); ok {
			return event
		}
	}
	return nil
}

// eventWrapper is stored in an event's binding slot, so every listener of a
// dispatch receives the same object and the object is collected with the
// event.
type eventWrapper struct {
	binder *DOMBinder
	obj    *goja.Object
}

// BindEvent returns the script object for an event. The object reads the
// event's state on access, so listeners see the values of their own context.
func (b *DOMBinder) BindEvent(event dom.DOMEvent) *goja.Object {
	base := event.AsEvent()
	if w, ok := base.Binding().(*eventWrapper); ok && w.binder == b {
		return w.obj
	}
	vm := b.runtime.vm
	obj := vm.NewObject()
	base.SetBinding(&eventWrapper{binder: b, obj: obj})
	obj.Set("_goEvent", event)

	getter := func(name string, fn func() goja.Value) {
		obj.DefineAccessorProperty(name, vm.ToValue(func(goja.FunctionCall) goja.Value {
			return fn()
		}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}

	getter("type", func() goja.Value { return vm.ToValue(base.Type()) })
	getter("bubbles", func() goja.Value { return vm.ToValue(base.Bubbles()) })
	getter("cancelable", func() goja.Value { return vm.ToValue(base.Cancelable()) })
	getter("eventPhase", func() goja.Value { return vm.ToValue(int(base.EventPhase())) })
	getter("target", func() goja.Value { return b.nodeValue(base.Target()) })
	getter("currentTarget", func() goja.Value { return b.nodeValue(base.CurrentTarget()) })
	getter("defaultPrevented", func() goja.Value { return vm.ToValue(base.DefaultPrevented()) })
	getter("isTrusted", func() goja.Value { return vm.ToValue(base.IsTrusted()) })
	getter("timeStamp", func() goja.Value { return vm.ToValue(base.TimeStamp().UnixMilli()) })

	obj.Set("preventDefault", func(goja.FunctionCall) goja.Value {
		base.PreventDefault()
		return goja.Undefined()
	})
	obj.Set("stopPropagation", func(goja.FunctionCall) goja.Value {
		base.StopPropagation()
		return goja.Undefined()
	})
	obj.Set("stopImmediatePropagation", func(goja.FunctionCall) goja.Value {
		base.StopImmediatePropagation()
		return goja.Undefined()
	})

	obj.Set("NONE", int(dom.EventPhaseNone))
	obj.Set("CAPTURING_PHASE", int(dom.EventPhaseCapturing))
	obj.Set("AT_TARGET", int(dom.EventPhaseAtTarget))
	obj.Set("BUBBLING_PHASE", int(dom.EventPhaseBubbling))

	type uiEventer interface {
		View() *dom.Document
		Detail() int
	}
	if ui, ok := event.(uiEventer); ok {
		getter("detail", func() goja.Value { return vm.ToValue(ui.Detail()) })
	}

	type modifierEventer interface {
		Modifiers() dom.KeyModifiers
	}
	if m, ok := event.(modifierEventer); ok {
		getter("ctrlKey", func() goja.Value { return vm.ToValue(m.Modifiers().Has(dom.ModifierCtrl)) })
		getter("shiftKey", func() goja.Value { return vm.ToValue(m.Modifiers().Has(dom.ModifierShift)) })
		getter("altKey", func() goja.Value { return vm.ToValue(m.Modifiers().Has(dom.ModifierAlt)) })
		getter("metaKey", func() goja.Value { return vm.ToValue(m.Modifiers().Has(dom.ModifierMeta)) })
	}

	type relatedTargeter interface {
		RelatedTarget() *dom.Node
	}
	if rt, ok := event.(relatedTargeter); ok {
		getter("relatedTarget", func() goja.Value { return b.nodeValue(rt.RelatedTarget()) })
	}

	type mouseEventer interface {
		AsMouseEvent() *dom.MouseEvent
	}
	if me, ok := event.(mouseEventer); ok {
		m := me.AsMouseEvent()
		getter("screenX", func() goja.Value { return vm.ToValue(m.ScreenX()) })
		getter("screenY", func() goja.Value { return vm.ToValue(m.ScreenY()) })
		getter("clientX", func() goja.Value { return vm.ToValue(m.ClientX()) })
		getter("clientY", func() goja.Value { return vm.ToValue(m.ClientY()) })
		getter("button", func() goja.Value { return vm.ToValue(int(m.Button())) })
		getter("which", func() goja.Value { return vm.ToValue(m.Which()) })
	}

	if we, ok := event.(*dom.WheelEvent); ok {
		getter("deltaX", func() goja.Value { return vm.ToValue(we.DeltaX()) })
		getter("deltaY", func() goja.Value { return vm.ToValue(we.DeltaY()) })
		getter("deltaZ", func() goja.Value { return vm.ToValue(we.DeltaZ()) })
		getter("deltaMode", func() goja.Value { return vm.ToValue(int(we.DeltaMode())) })
		getter("wheelDelta", func() goja.Value { return vm.ToValue(we.WheelDelta()) })
		getter("wheelDeltaX", func() goja.Value { return vm.ToValue(we.WheelDeltaX()) })
		getter("wheelDeltaY", func() goja.Value { return vm.ToValue(we.WheelDeltaY()) })
	}

	if te, ok := event.(*dom.TouchEvent); ok {
		getter("touches", func() goja.Value { return b.touchListValue(te.Touches()) })
		getter("targetTouches", func() goja.Value { return b.touchListValue(te.TargetTouches()) })
		getter("changedTouches", func() goja.Value { return b.touchListValue(te.ChangedTouches()) })
	}

	return obj
}

// touchListValue converts a touch list to an array of touch objects.
func (b *DOMBinder) touchListValue(list *dom.TouchList) goja.Value {
	touches := list.Touches()
	values := make([]interface{}, len(touches))
	for i, t := range touches {
		values[i] = b.bindTouch(t)
	}
	return b.runtime.vm.NewArray(values...)
}

func (b *DOMBinder) bindTouch(t *dom.Touch) *goja.Object {
	vm := b.runtime.vm
	obj := vm.NewObject()
	obj.Set("_goTouch", t)
	obj.Set("identifier", t.Identifier())
	obj.Set("target", b.nodeValue(t.Target()))
	obj.Set("screenX", t.ScreenX())
	obj.Set("screenY", t.ScreenY())
	obj.Set("clientX", t.ClientX())
	obj.Set("clientY", t.ClientY())
	obj.Set("radiusX", t.RadiusX())
	obj.Set("radiusY", t.RadiusY())
	obj.Set("rotationAngle", t.RotationAngle())
	obj.Set("force", t.Force())
	return obj
}

// touchListFrom reads an array of Touch objects.
func (b *DOMBinder) touchListFrom(v goja.Value) *dom.TouchList {
	list := dom.NewTouchList()
	obj := optionsObject(v)
	if obj == nil {
		return list
	}
	length := obj.Get("length")
	if length == nil {
		return list
	}
	for i := 0; i < int(length.ToInteger()); i++ {
		itemObj := optionsObject(obj.Get(strconv.Itoa(i)))
		if itemObj == nil {
			continue
		}
		if goTouch := itemObj.Get("_goTouch"); goTouch != nil {
			if t, ok := goTouch.Export().(*dom.Touch); ok {
				list.Append(t)
			}
		}
	}
	return list
}

// setupEventConstructors installs Event, MouseEvent, WheelEvent, FocusEvent,
// TouchEvent and Touch.
func (b *DOMBinder) setupEventConstructors() {
	vm := b.runtime.vm
	doc := b.runtime.doc

	vm.Set("Event", func(call goja.ConstructorCall) *goja.Object {
		init := optionsObject(call.Argument(1))
		ev := dom.NewEvent(call.Argument(0).String(), optBool(init, "bubbles"), optBool(init, "cancelable"))
		return b.BindEvent(ev)
	})

	vm.Set("MouseEvent", func(call goja.ConstructorCall) *goja.Object {
		init := optionsObject(call.Argument(1))
		return b.BindEvent(dom.NewMouseEvent(call.Argument(0).String(), b.mouseEventInit(init)))
	})

	vm.Set("WheelEvent", func(call goja.ConstructorCall) *goja.Object {
		init := optionsObject(call.Argument(1))
		return b.BindEvent(dom.NewWheelEvent(dom.WheelEventInit{
			MouseEventInit: b.mouseEventInit(init),
			DeltaX:         optFloat(init, "deltaX"),
			DeltaY:         optFloat(init, "deltaY"),
			DeltaZ:         optFloat(init, "deltaZ"),
			WheelDeltaX:    optInt(init, "wheelDeltaX"),
			WheelDeltaY:    optInt(init, "wheelDeltaY"),
			DeltaMode:      dom.DeltaMode(optInt(init, "deltaMode")),
		}))
	})

	vm.Set("FocusEvent", func(call goja.ConstructorCall) *goja.Object {
		init := optionsObject(call.Argument(1))
		return b.BindEvent(dom.NewFocusEvent(call.Argument(0).String(),
			optBool(init, "bubbles"), optBool(init, "cancelable"), doc,
			optInt(init, "detail"), b.optNode(init, "relatedTarget")))
	})

	vm.Set("Touch", func(call goja.ConstructorCall) *goja.Object {
		init := optionsObject(call.Argument(0))
		target := b.optNode(init, "target")
		if target == nil {
			b.runtime.throwTypeError("Touch: target is required")
		}
		return b.bindTouch(dom.NewTouch(dom.TouchInit{
			Identifier:    optInt(init, "identifier"),
			Target:        target,
			ScreenX:       optInt(init, "screenX"),
			ScreenY:       optInt(init, "screenY"),
			ClientX:       optInt(init, "clientX"),
			ClientY:       optInt(init, "clientY"),
			RadiusX:       optInt(init, "radiusX"),
			RadiusY:       optInt(init, "radiusY"),
			RotationAngle: optFloat(init, "rotationAngle"),
			Force:         optFloat(init, "force"),
		}))
	})

	vm.Set("TouchEvent", func(call goja.ConstructorCall) *goja.Object {
		init := optionsObject(call.Argument(1))
		var touches, targetTouches, changedTouches goja.Value
		if init != nil {
			touches = init.Get("touches")
			targetTouches = init.Get("targetTouches")
			changedTouches = init.Get("changedTouches")
		}
		return b.BindEvent(dom.NewTouchEvent(call.Argument(0).String(), doc,
			b.touchListFrom(touches), b.touchListFrom(targetTouches), b.touchListFrom(changedTouches),
			modifiersFrom(init)))
	})
}

func (b *DOMBinder) mouseEventInit(init *goja.Object) dom.MouseEventInit {
	button := dom.LeftButton
	if init != nil {
		if v := init.Get("button"); v != nil && !goja.IsUndefined(v) {
			button = dom.MouseButton(v.ToInteger())
		}
	}
	return dom.MouseEventInit{
		Bubbles:       optBool(init, "bubbles"),
		Cancelable:    optBool(init, "cancelable"),
		View:          b.runtime.doc,
		Detail:        optInt(init, "detail"),
		ScreenX:       optInt(init, "screenX"),
		ScreenY:       optInt(init, "screenY"),
		ClientX:       optInt(init, "clientX"),
		ClientY:       optInt(init, "clientY"),
		Modifiers:     modifiersFrom(init),
		Button:        button,
		RelatedTarget: b.optNode(init, "relatedTarget"),
	}
}

func modifiersFrom(init *goja.Object) dom.KeyModifiers {
	var m dom.KeyModifiers
	if optBool(init, "ctrlKey") {
		m |= dom.ModifierCtrl
	}
	if optBool(init, "shiftKey") {
		m |= dom.ModifierShift
	}
	if optBool(init, "altKey") {
		m |= dom.ModifierAlt
	}
	if optBool(init, "metaKey") {
		m |= dom.ModifierMeta
	}
	return m
}

// setupGlobals installs the scenario helpers:
//
//	dispatchMouse(target, type, {clientX, clientY, button, detail, relatedTarget})
//	dispatchWheel(target, {deltaX, deltaY, wheelTicksX, wheelTicksY, clientX, clientY, page})
//	runScoped(fn)
//	dispatchScoped(target, event)
//	simulateClick(target, "none" | "updown" | "overupdown")
func (b *DOMBinder) setupGlobals() {
	vm := b.runtime.vm
	doc := b.runtime.doc

	vm.Set("dispatchMouse", func(call goja.FunctionCall) goja.Value {
		target := b.NodeFromValue(call.Argument(0))
		if target == nil {
			b.runtime.throwTypeError("dispatchMouse: target is not a node")
		}
		init := optionsObject(call.Argument(2))
		pe := dom.PlatformMouseEvent{
			Position:  dom.Point{X: optInt(init, "clientX"), Y: optInt(init, "clientY")},
			Button:    b.mouseEventInit(init).Button,
			Modifiers: modifiersFrom(init),
		}
		pe.GlobalPosition = pe.Position
		event := dom.NewMouseEventFromPlatform(call.Argument(1).String(), doc, pe,
			optInt(init, "detail"), b.optNode(init, "relatedTarget"))
		return vm.ToValue(dom.DispatchEvent(target, dom.NewMouseEventDispatchMediator(event, dom.NonSyntheticMouseEvent)))
	})

	vm.Set("dispatchWheel", func(call goja.FunctionCall) goja.Value {
		target := b.NodeFromValue(call.Argument(0))
		if target == nil {
			b.runtime.throwTypeError("dispatchWheel: target is not a node")
		}
		init := optionsObject(call.Argument(1))
		pe := dom.PlatformWheelEvent{
			Position:    dom.Point{X: optInt(init, "clientX"), Y: optInt(init, "clientY")},
			DeltaX:      optFloat(init, "deltaX"),
			DeltaY:      optFloat(init, "deltaY"),
			WheelTicksX: optFloat(init, "wheelTicksX"),
			WheelTicksY: optFloat(init, "wheelTicksY"),
			Modifiers:   modifiersFrom(init),
		}
		pe.GlobalPosition = pe.Position
		if optBool(init, "page") {
			pe.Granularity = dom.ScrollByPageWheelEvent
		}
		return vm.ToValue(dom.DispatchEvent(target, dom.NewWheelEventDispatchMediator(pe, doc)))
	})

	vm.Set("runScoped", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			b.runtime.throwTypeError("runScoped: argument is not a function")
		}
		var result goja.Value = goja.Undefined()
		var callErr error
		doc.EventQueue().RunScoped(func() {
			result, callErr = fn(goja.Undefined())
		})
		if callErr != nil {
			panic(callErr)
		}
		return result
	})

	vm.Set("dispatchScoped", func(call goja.FunctionCall) goja.Value {
		target := b.NodeFromValue(call.Argument(0))
		event := b.EventFromValue(call.Argument(1))
		if target == nil || event == nil {
			b.runtime.throwTypeError("dispatchScoped: expected a node and an event")
		}
		doc.EventQueue().DispatchScopedEvent(target, MediatorFor(event))
		return goja.Undefined()
	})

	vm.Set("simulateClick", func(call goja.FunctionCall) goja.Value {
		target := b.NodeFromValue(call.Argument(0))
		if target == nil {
			b.runtime.throwTypeError("simulateClick: target is not a node")
		}
		opts := dom.SimulatedClickOptions{MouseEvents: dom.SendNoEvents}
		switch call.Argument(1).String() {
		case "updown":
			opts.MouseEvents = dom.SendMouseUpDownEvents
		case "overupdown":
			opts.MouseEvents = dom.SendMouseOverUpDownEvents
		}
		dom.DispatchSimulatedClick(target, nil, opts)
		return goja.Undefined()
	})
}
