package dom

import (
	"errors"
	"testing"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc == nil {
		t.Fatal("NewDocument returned nil")
	}
	if doc.NodeType() != DocumentNode {
		t.Errorf("Expected DocumentNode, got %v", doc.NodeType())
	}
	if doc.NodeName() != "#document" {
		t.Errorf("Expected '#document', got %s", doc.NodeName())
	}
	if doc.AsNode().OwnerDocument() != nil {
		t.Error("Document should not have an owner document")
	}
}

func TestDocument_CreateElement(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("DiV")

	if el.TagName() != "DIV" {
		t.Errorf("Expected tagName 'DIV', got '%s'", el.TagName())
	}
	if el.LocalName() != "div" {
		t.Errorf("Expected localName 'div', got '%s'", el.LocalName())
	}
	if el.AsNode().NodeType() != ElementNode {
		t.Errorf("Expected ElementNode, got %v", el.AsNode().NodeType())
	}
	if el.AsNode().OwnerDocument() != doc {
		t.Error("Element should be owned by the document that created it")
	}
}

func TestNode_AppendChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child1 := doc.CreateElement("span")
	child2 := doc.CreateElement("p")

	parent.AppendChild(child1.AsNode())
	parent.AppendChild(child2.AsNode())

	p := parent.AsNode()
	if p.FirstChild() != child1.AsNode() {
		t.Error("First child should be child1")
	}
	if p.LastChild() != child2.AsNode() {
		t.Error("Last child should be child2")
	}
	if child1.AsNode().NextSibling() != child2.AsNode() {
		t.Error("child1's next sibling should be child2")
	}
	if child2.AsNode().PreviousSibling() != child1.AsNode() {
		t.Error("child2's previous sibling should be child1")
	}
	if child1.ParentNode() != p {
		t.Error("child1's parent should be parent")
	}
	if len(p.Children()) != 2 {
		t.Errorf("Expected 2 children, got %d", len(p.Children()))
	}
}

func TestNode_AppendChildMovesNode(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	child := doc.CreateElement("span")

	a.AppendChild(child.AsNode())
	b.AppendChild(child.AsNode())

	if a.AsNode().HasChildNodes() {
		t.Error("Node should have been removed from its old parent")
	}
	if child.ParentNode() != b.AsNode() {
		t.Error("Node should now be a child of b")
	}
}

func TestNode_InsertBefore(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div").AsNode()
	first := doc.CreateElement("a").AsNode()
	last := doc.CreateElement("b").AsNode()
	middle := doc.CreateElement("i").AsNode()

	parent.AppendChild(first)
	parent.AppendChild(last)
	parent.InsertBefore(middle, last)

	got := parent.Children()
	want := []*Node{first, middle, last}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("child %d: expected %s, got %s", i, want[i].NodeName(), got[i].NodeName())
		}
	}
}

func TestNode_InsertBeforeWithError(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div").AsNode()
	child := doc.CreateElement("span").AsNode()
	stranger := doc.CreateElement("p").AsNode()
	parent.AppendChild(child)

	_, err := parent.InsertBeforeWithError(doc.CreateElement("b").AsNode(), stranger)
	var domErr *DOMError
	if !errors.As(err, &domErr) || domErr.Name != "NotFoundError" {
		t.Errorf("Expected NotFoundError, got %v", err)
	}

	_, err = child.AppendChildWithError(parent)
	if !errors.As(err, &domErr) || domErr.Name != "HierarchyRequestError" {
		t.Errorf("Expected HierarchyRequestError for a cycle, got %v", err)
	}

	text := doc.CreateTextNode("x")
	_, err = text.AppendChildWithError(doc.CreateElement("b").AsNode())
	if !errors.As(err, &domErr) || domErr.Name != "HierarchyRequestError" {
		t.Errorf("Expected HierarchyRequestError for a text parent, got %v", err)
	}
}

func TestDocument_SingleDocumentElement(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(doc.CreateElement("html").AsNode())
	_, err := doc.AsNode().AppendChildWithError(doc.CreateElement("html").AsNode())
	if err == nil {
		t.Error("Expected an error when appending a second document element")
	}
	_, err = doc.AsNode().AppendChildWithError(doc.CreateTextNode("text"))
	if err == nil {
		t.Error("Expected an error when appending text to a document")
	}
}

func TestNode_RemoveChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div").AsNode()
	child1 := doc.CreateElement("span").AsNode()
	child2 := doc.CreateElement("p").AsNode()
	parent.AppendChild(child1)
	parent.AppendChild(child2)

	if removed := parent.RemoveChild(child1); removed != child1 {
		t.Error("RemoveChild should return the removed child")
	}
	if parent.FirstChild() != child2 {
		t.Error("First child should now be child2")
	}
	if child1.ParentNode() != nil || child1.NextSibling() != nil {
		t.Error("Removed child should be detached")
	}
	if _, err := parent.RemoveChildWithError(child1); err == nil {
		t.Error("Removing a non-child should fail")
	}
}

func TestNode_TextContent(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.AppendChild(doc.CreateTextNode("Hello, "))
	span := doc.CreateElement("span")
	span.AppendChild(doc.CreateTextNode("World"))
	div.AppendChild(span.AsNode())
	div.AppendChild(doc.CreateComment("ignored"))

	if got := div.TextContent(); got != "Hello, World" {
		t.Errorf("Expected 'Hello, World', got '%s'", got)
	}
}

func TestNode_Contains(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	outer.AppendChild(inner.AsNode())

	if !outer.AsNode().Contains(inner.AsNode()) {
		t.Error("outer should contain inner")
	}
	if !outer.AsNode().Contains(outer.AsNode()) {
		t.Error("Contains should be inclusive")
	}
	if inner.AsNode().Contains(outer.AsNode()) {
		t.Error("inner should not contain outer")
	}
}

func TestElement_Attributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("input")

	el.SetAttribute("type", "text")
	if el.GetAttribute("type") != "text" {
		t.Errorf("Expected 'text', got '%s'", el.GetAttribute("type"))
	}
	el.SetId("name")
	if el.Id() != "name" || el.GetAttribute("id") != "name" {
		t.Errorf("Expected id 'name', got '%s'", el.Id())
	}
	el.RemoveAttribute("type")
	if el.HasAttribute("type") {
		t.Error("type attribute should have been removed")
	}
}

func TestElement_IsDisabledFormControl(t *testing.T) {
	doc := NewDocument()
	button := doc.CreateElement("button")
	div := doc.CreateElement("div")
	button.SetAttribute("disabled", "")
	div.SetAttribute("disabled", "")

	if !button.IsDisabledFormControl() {
		t.Error("disabled button should be a disabled form control")
	}
	if div.IsDisabledFormControl() {
		t.Error("div is not a form control")
	}
}

func TestDocument_GetElementById(t *testing.T) {
	doc, _, _, span := newChainDocument(t)
	if got := doc.GetElementById("span"); got.AsNode() != span {
		t.Errorf("Expected span, got %v", got)
	}
	if doc.GetElementById("missing") != nil {
		t.Error("Expected nil for a missing id")
	}
}

func TestElement_AttachShadow(t *testing.T) {
	doc := NewDocument()
	host := doc.CreateElement("div")

	sr, err := host.AttachShadow(ShadowRootModeOpen)
	if err != nil {
		t.Fatalf("AttachShadow failed: %v", err)
	}
	if host.ShadowRoot() != sr {
		t.Error("open shadow root should be reachable from the host")
	}
	if sr.Host() != host {
		t.Error("shadow root host mismatch")
	}
	if _, err := host.AttachShadow(ShadowRootModeOpen); err == nil {
		t.Error("second AttachShadow should fail")
	}
	if _, err := doc.CreateElement("img").AttachShadow(ShadowRootModeOpen); err == nil {
		t.Error("img cannot host a shadow root")
	}

	closedHost := doc.CreateElement("x-widget")
	if _, err := closedHost.AttachShadow(ShadowRootModeClosed); err != nil {
		t.Fatalf("custom elements can host shadow roots: %v", err)
	}
	if closedHost.ShadowRoot() != nil {
		t.Error("closed shadow root should not be exposed")
	}
}

func TestNode_ShadowIncludingTree(t *testing.T) {
	doc, _, div, _ := newChainDocument(t)
	sr, err := (*Element)(div).AttachShadow(ShadowRootModeOpen)
	if err != nil {
		t.Fatal(err)
	}
	inner := doc.CreateElement("b")
	sr.AppendChild(inner.AsNode())

	if inner.AsNode().GetRootNode() != sr.AsNode() {
		t.Error("root of a shadow tree node should be the shadow root")
	}
	if inner.AsNode().ShadowIncludingRoot() != doc.AsNode() {
		t.Error("shadow-including root should be the document")
	}
	if !inner.AsNode().IsConnected() {
		t.Error("node in an attached shadow tree of a connected host is connected")
	}
	if !div.IsShadowIncludingInclusiveAncestorOf(inner.AsNode()) {
		t.Error("host should be a shadow-including ancestor of shadow content")
	}
	if div.Contains(inner.AsNode()) {
		t.Error("Contains must not cross the shadow boundary")
	}
	if _, err := inner.AsNode().AppendChildWithError(sr.AsNode()); err == nil {
		t.Error("shadow roots cannot be inserted")
	}
}

func TestDocument_ElementFromPoint(t *testing.T) {
	doc, _, div, span := newChainDocument(t)
	(*Element)(div).SetGeometry(NewDOMRect(0, 0, 100, 100))
	(*Element)(span).SetGeometry(NewDOMRect(10, 10, 20, 20))

	if got := doc.ElementFromPoint(15, 15); got.AsNode() != span {
		t.Errorf("Expected span at (15,15), got %v", got)
	}
	if got := doc.ElementFromPoint(50, 50); got.AsNode() != div {
		t.Errorf("Expected div at (50,50), got %v", got)
	}
	if got := doc.ElementFromPoint(30, 30); got.AsNode() != div {
		t.Error("right and bottom edges should be exclusive")
	}
	if doc.ElementFromPoint(500, 500) != nil {
		t.Error("Expected nil outside every box")
	}

	sr, _ := (*Element)(span).AttachShadow(ShadowRootModeOpen)
	inner := doc.CreateElement("i")
	inner.SetGeometry(NewDOMRect(12, 12, 2, 2))
	sr.AppendChild(inner.AsNode())
	if doc.HitTest(13, 13) != inner.AsNode() {
		t.Error("HitTest should descend into shadow trees")
	}
	if got := doc.ElementFromPoint(13, 13); got.AsNode() != span {
		t.Error("ElementFromPoint should retarget shadow content to its host")
	}
}

func TestDocument_HitTestClosedShadowTree(t *testing.T) {
	doc, _, div, _ := newChainDocument(t)
	(*Element)(div).SetGeometry(NewDOMRect(0, 0, 100, 100))
	sr, err := (*Element)(div).AttachShadow(ShadowRootModeClosed)
	if err != nil {
		t.Fatal(err)
	}
	inner := doc.CreateElement("i")
	inner.SetGeometry(NewDOMRect(40, 40, 10, 10))
	sr.AppendChild(inner.AsNode())

	if doc.HitTest(45, 45) != inner.AsNode() {
		t.Error("HitTest should descend into closed shadow trees")
	}

	var painted []*Node
	doc.WalkPaintOrder(func(n *Node, _ int) { painted = append(painted, n) })
	if len(painted) == 0 || painted[len(painted)-1] != inner.AsNode() {
		t.Error("WalkPaintOrder should visit the closed shadow tree after the light children")
	}
}
