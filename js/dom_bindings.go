package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/evdispatch/dom"
)

// DOMBinder provides methods to bind DOM objects to JavaScript.
type DOMBinder struct {
	runtime *Runtime
	nodeMap map[*dom.Node]*goja.Object // same JS object for the same DOM node

	listeners map[*dom.Node][]scriptListener
}

// scriptListener is a JS function registered on a node, kept so that
// removeEventListener can find it by function identity.
type scriptListener struct {
	eventType string
	value     goja.Value
	capture   bool
	id        dom.ListenerID
}

// NewDOMBinder creates a new DOM binder for the given runtime.
func NewDOMBinder(runtime *Runtime) *DOMBinder {
	return &DOMBinder{
		runtime:   runtime,
		nodeMap:   make(map[*dom.Node]*goja.Object),
		listeners: make(map[*dom.Node][]scriptListener),
	}
}

// BindDocument returns the script object for the document.
func (b *DOMBinder) BindDocument(doc *dom.Document) *goja.Object {
	if doc == nil {
		return nil
	}
	node := doc.AsNode()
	if jsObj, ok := b.nodeMap[node]; ok {
		return jsObj
	}
	vm := b.runtime.vm
	jsDoc := b.newNodeObject(node)

	jsDoc.DefineAccessorProperty("documentElement", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(elementNode(doc.DocumentElement()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.DefineAccessorProperty("body", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(elementNode(doc.Body()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.DefineAccessorProperty("activeElement", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(elementNode(doc.ActiveElement()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(elementNode(doc.GetElementById(call.Argument(0).String())))
	})

	jsDoc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(doc.CreateElement(call.Argument(0).String()).AsNode())
	})

	jsDoc.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(doc.CreateTextNode(call.Argument(0).String()))
	})

	jsDoc.Set("elementFromPoint", func(call goja.FunctionCall) goja.Value {
		x := call.Argument(0).ToFloat()
		y := call.Argument(1).ToFloat()
		return b.nodeValue(elementNode(doc.ElementFromPoint(x, y)))
	})

	return jsDoc
}

// BindNode returns the script object for a node, creating it on first use.
func (b *DOMBinder) BindNode(node *dom.Node) *goja.Object {
	if node == nil {
		return nil
	}
	if jsObj, ok := b.nodeMap[node]; ok {
		return jsObj
	}
	switch node.NodeType() {
	case dom.DocumentNode:
		return b.BindDocument((*dom.Document)(node))
	case dom.ElementNode:
		return b.bindElement((*dom.Element)(node))
	}
	if sr := node.AsShadowRoot(); sr != nil {
		return b.bindShadowRoot(sr)
	}
	return b.newNodeObject(node)
}

// NodeFromValue returns the dom node behind a script object, or nil.
func (b *DOMBinder) NodeFromValue(v goja.Value) *dom.Node {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	if goNode := obj.Get("_goNode"); goNode != nil {
		if node, ok := goNode.Export().(*dom.Node); ok {
			return node
		}
	}
	return nil
}

func (b *DOMBinder) nodeValue(node *dom.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	return b.BindNode(node)
}

func elementNode(el *dom.Element) *dom.Node {
	if el == nil {
		return nil
	}
	return el.AsNode()
}

// newNodeObject creates and caches the object with the members every node has.
func (b *DOMBinder) newNodeObject(node *dom.Node) *goja.Object {
	vm := b.runtime.vm
	jsNode := vm.NewObject()
	b.nodeMap[node] = jsNode

	// Store reference to the Go node
	jsNode.Set("_goNode", node)
	jsNode.Set("nodeType", int(node.NodeType()))

	jsNode.DefineAccessorProperty("nodeName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.NodeName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsNode.DefineAccessorProperty("parentNode", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(node.ParentNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsNode.DefineAccessorProperty("textContent", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.TextContent())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsNode.DefineAccessorProperty("isConnected", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.IsConnected())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsNode.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		child := b.NodeFromValue(call.Argument(0))
		if _, err := node.AppendChildWithError(child); err != nil {
			b.runtime.throwTypeError("appendChild: %v", err)
		}
		return call.Argument(0)
	})

	jsNode.Set("removeChild", func(call goja.FunctionCall) goja.Value {
		child := b.NodeFromValue(call.Argument(0))
		if _, err := node.RemoveChildWithError(child); err != nil {
			b.runtime.throwTypeError("removeChild: %v", err)
		}
		return call.Argument(0)
	})

	jsNode.Set("contains", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.Contains(b.NodeFromValue(call.Argument(0))))
	})

	jsNode.Set("getRootNode", func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(node.GetRootNode())
	})

	b.bindEventTarget(jsNode, node)
	return jsNode
}

func (b *DOMBinder) bindElement(el *dom.Element) *goja.Object {
	vm := b.runtime.vm
	jsEl := b.newNodeObject(el.AsNode())

	jsEl.Set("_goElement", el)

	jsEl.DefineAccessorProperty("tagName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.TagName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("localName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.LocalName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("id", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Id())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		el.SetId(call.Argument(0).String())
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("shadowRoot", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		sr := el.ShadowRoot()
		if sr == nil {
			return goja.Null()
		}
		return b.BindNode(sr.AsNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})

	jsEl.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		el.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	})

	jsEl.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})

	jsEl.Set("attachShadow", func(call goja.FunctionCall) goja.Value {
		mode := dom.ShadowRootModeOpen
		if init := optionsObject(call.Argument(0)); init != nil {
			if v := init.Get("mode"); v != nil && v.String() == string(dom.ShadowRootModeClosed) {
				mode = dom.ShadowRootModeClosed
			}
		}
		sr, err := el.AttachShadow(mode)
		if err != nil {
			b.runtime.throwTypeError("attachShadow: %v", err)
		}
		return b.BindNode(sr.AsNode())
	})

	jsEl.Set("setGeometry", func(call goja.FunctionCall) goja.Value {
		el.SetGeometry(dom.NewDOMRect(
			call.Argument(0).ToFloat(), call.Argument(1).ToFloat(),
			call.Argument(2).ToFloat(), call.Argument(3).ToFloat(),
		))
		return goja.Undefined()
	})

	jsEl.Set("click", func(call goja.FunctionCall) goja.Value {
		el.Click()
		return goja.Undefined()
	})

	jsEl.Set("focus", func(call goja.FunctionCall) goja.Value {
		el.Focus()
		return goja.Undefined()
	})

	jsEl.Set("blur", func(call goja.FunctionCall) goja.Value {
		el.Blur()
		return goja.Undefined()
	})

	return jsEl
}

func (b *DOMBinder) bindShadowRoot(sr *dom.ShadowRoot) *goja.Object {
	vm := b.runtime.vm
	jsSR := b.newNodeObject(sr.AsNode())

	jsSR.Set("mode", string(sr.Mode()))
	jsSR.DefineAccessorProperty("host", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(elementNode(sr.Host()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsSR.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(elementNode(sr.GetElementById(call.Argument(0).String())))
	})
	return jsSR
}

// optionsObject returns v as an object, or nil for undefined, null and
// primitives.
func optionsObject(v goja.Value) *goja.Object {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	return obj
}

func optBool(obj *goja.Object, key string) bool {
	if obj == nil {
		return false
	}
	v := obj.Get(key)
	return v != nil && !goja.IsUndefined(v) && v.ToBoolean()
}

func optInt(obj *goja.Object, key string) int {
	if obj == nil {
		return 0
	}
	v := obj.Get(key)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return 0
	}
	return int(v.ToInteger())
}

func optFloat(obj *goja.Object, key string) float64 {
	if obj == nil {
		return 0
	}
	v := obj.Get(key)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return 0
	}
	return v.ToFloat()
}

func (b *DOMBinder) optNode(obj *goja.Object, key string) *dom.Node {
	if obj == nil {
		return nil
	}
	return b.NodeFromValue(obj.Get(key))
}
