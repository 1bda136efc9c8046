package dom

import "strings"

// Element represents an element in the DOM tree.
type Element Node

// elementData holds data specific to Element nodes.
type elementData struct {
	localName  string
	tagName    string
	id         string
	attributes []attribute
	shadowRoot *ShadowRoot

	// Layout geometry in viewport coordinates, used for hit testing.
	geometry *DOMRect
}

type attribute struct {
	name  string
	value string
}

func newElement(localName string, ownerDoc *Document) *Element {
	localName = strings.ToLower(localName)
	tagName := strings.ToUpper(localName)
	node := newNode(ElementNode, tagName, ownerDoc)
	node.elementData = &elementData{
		localName: localName,
		tagName:   tagName,
	}
	return (*Element)(node)
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// TagName returns the tag name of the element in uppercase.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// LocalName returns the local name of the element.
func (e *Element) LocalName() string {
	return e.elementData.localName
}

// Id returns the value of the id attribute.
func (e *Element) Id() string {
	return e.elementData.id
}

// SetId sets the id attribute.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// GetAttribute returns the value of the named attribute, or "" if absent.
func (e *Element) GetAttribute(name string) string {
	name = strings.ToLower(name)
	for _, attr := range e.elementData.attributes {
		if attr.name == name {
			return attr.value
		}
	}
	return ""
}

// HasAttribute returns true if the element has the named attribute.
func (e *Element) HasAttribute(name string) bool {
	name = strings.ToLower(name)
	for _, attr := range e.elementData.attributes {
		if attr.name == name {
			return true
		}
	}
	return false
}

// SetAttribute sets the value of the named attribute.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	if name == "id" {
		e.elementData.id = value
	}
	for i, attr := range e.elementData.attributes {
		if attr.name == name {
			e.elementData.attributes[i].value = value
			return
		}
	}
	e.elementData.attributes = append(e.elementData.attributes, attribute{name: name, value: value})
}

// RemoveAttribute removes the named attribute.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	if name == "id" {
		e.elementData.id = ""
	}
	attrs := e.elementData.attributes
	for i, attr := range attrs {
		if attr.name == name {
			e.elementData.attributes = append(attrs[:i], attrs[i+1:]...)
			return
		}
	}
}

// AppendChild appends a child node to this element.
func (e *Element) AppendChild(child *Node) *Node {
	return e.AsNode().AppendChild(child)
}

// ParentNode returns the parent node.
func (e *Element) ParentNode() *Node {
	return e.parentNode
}

// TextContent returns the text content of the element.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// Geometry returns the element's border box, or nil if it was never laid out.
func (e *Element) Geometry() *DOMRect {
	return e.elementData.geometry
}

// SetGeometry sets the element's border box in viewport coordinates.
func (e *Element) SetGeometry(rect *DOMRect) {
	e.elementData.geometry = rect
}

// IsDisabledFormControl reports whether the element is a form control with
// the disabled attribute. Disabled controls do not receive simulated clicks.
func (e *Element) IsDisabledFormControl() bool {
	switch e.elementData.localName {
	case "button", "input", "select", "textarea", "optgroup", "option", "fieldset":
		return e.HasAttribute("disabled")
	}
	return false
}

// Click dispatches a simulated click at this element, as element.click() does.
func (e *Element) Click() {
	DispatchSimulatedClick(e.AsNode(), nil, SimulatedClickOptions{MouseEvents: SendNoEvents})
}

// Focus makes this element the document's focused element.
func (e *Element) Focus() {
	if doc := e.ownerDoc; doc != nil {
		doc.SetFocusedElement(e)
	}
}

// Blur removes focus from this element if it is focused.
func (e *Element) Blur() {
	if doc := e.ownerDoc; doc != nil && doc.ActiveElement() == e {
		doc.SetFocusedElement(nil)
	}
}

// shadowHostNames lists the HTML elements that may host a shadow root.
var shadowHostNames = map[string]bool{
	"article": true, "aside": true, "blockquote": true, "body": true,
	"div": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "main": true,
	"nav": true, "p": true, "section": true, "span": true,
}

// AttachShadow creates a shadow root for the element. Custom element names
// (containing a hyphen) and the standard host elements are accepted.
// https://dom.spec.whatwg.org/#dom-element-attachshadow
func (e *Element) AttachShadow(mode ShadowRootMode) (*ShadowRoot, error) {
	name := e.elementData.localName
	if !shadowHostNames[name] && !strings.Contains(name, "-") {
		return nil, ErrNotSupported("This element does not support attachShadow")
	}
	if e.elementData.shadowRoot != nil {
		return nil, ErrNotSupported("Shadow root cannot be created on a host which already hosts a shadow tree.")
	}
	sr := newShadowRoot(e, mode)
	e.elementData.shadowRoot = sr
	return sr, nil
}

// ShadowRoot returns the element's shadow root if its mode is open.
func (e *Element) ShadowRoot() *ShadowRoot {
	sr := e.elementData.shadowRoot
	if sr == nil || sr.Mode() != ShadowRootModeOpen {
		return nil
	}
	return sr
}
