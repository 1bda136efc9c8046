package dom

import (
	"strings"
)

// Node represents a node in the DOM tree. Document, Element and ShadowRoot
// are views over the same struct, converted with AsNode.
type Node struct {
	nodeType   NodeType
	nodeName   string
	ownerDoc   *Document
	parentNode *Node

	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data (only one will be non-nil based on nodeType)
	elementData  *elementData
	textData     *string
	documentData *documentData

	// host and shadowMode are set only on shadow roots.
	host       *Node
	shadowMode ShadowRootMode

	listeners      map[string][]*listenerEntry
	nextListenerID ListenerID
	defaultHandler func(DOMEvent)

	// Guards against a simulated click re-entering the same node.
	dispatchingSimulatedClick bool
}

func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// For elements, this is the tag name in uppercase.
func (n *Node) NodeName() string {
	return n.nodeName
}

// OwnerDocument returns the Document that owns this node.
// For Document nodes, this returns nil.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// document returns the node document, including for the document itself.
func (n *Node) document() *Document {
	if n.nodeType == DocumentNode {
		return (*Document)(n)
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent Element, or nil if the parent is not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// Children returns a snapshot of the child nodes.
func (n *Node) Children() []*Node {
	var children []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		children = append(children, c)
	}
	return children
}

// IsConnected returns true if the node's shadow-including root is a document.
func (n *Node) IsConnected() bool {
	return n.ShadowIncludingRoot().nodeType == DocumentNode
}

// IsShadowRoot reports whether this node is the root of a shadow tree.
func (n *Node) IsShadowRoot() bool {
	return n.host != nil
}

// AsShadowRoot returns the node as a ShadowRoot, or nil if it is not one.
func (n *Node) AsShadowRoot() *ShadowRoot {
	if n.host == nil {
		return nil
	}
	return (*ShadowRoot)(n)
}

// TextContent returns the concatenated text of the node's descendants.
func (n *Node) TextContent() string {
	if n.textData != nil {
		return *n.textData
	}
	var sb strings.Builder
	n.collectTextContent(&sb)
	return sb.String()
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == TextNode && c.textData != nil {
			sb.WriteString(*c.textData)
		} else if c.nodeType == ElementNode {
			c.collectTextContent(sb)
		}
	}
}

// AppendChild adds a node to the end of the list of children.
// Invalid insertions are ignored; use AppendChildWithError to observe them.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of the list of children and
// reports hierarchy violations as a DOMError.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBefore inserts a node before the reference node.
// If refChild is nil, the node is appended.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	result, _ := n.InsertBeforeWithError(newChild, refChild)
	return result
}

// InsertBeforeWithError inserts newChild before refChild.
func (n *Node) InsertBeforeWithError(newChild, refChild *Node) (*Node, error) {
	if err := n.validatePreInsertion(newChild, refChild); err != nil {
		return nil, err
	}
	if refChild == newChild {
		refChild = newChild.nextSibling
	}
	if newChild.parentNode != nil {
		newChild.parentNode.removeChildInternal(newChild)
	}
	n.insertBeforeInternal(newChild, refChild)
	return newChild, nil
}

func (n *Node) validatePreInsertion(node, child *Node) error {
	if node == nil {
		return ErrHierarchyRequest("The node to be inserted is null.")
	}
	if !n.canHaveChildren() {
		return ErrHierarchyRequest("This node type does not support children.")
	}
	if node.IsShadowIncludingInclusiveAncestorOf(n) {
		return ErrHierarchyRequest("The new child element contains the parent.")
	}
	if node.nodeType == DocumentNode || node.IsShadowRoot() {
		return ErrHierarchyRequest("Nodes of type '" + node.nodeName + "' may not be inserted.")
	}
	if child != nil && child.parentNode != n {
		return ErrNotFound("The node before which the new node is to be inserted is not a child of this node.")
	}
	if n.nodeType == DocumentNode && node.nodeType == ElementNode && n.hasElementChildExcluding(node) {
		return ErrHierarchyRequest("Only one element on document allowed.")
	}
	if n.nodeType == DocumentNode && node.nodeType == TextNode {
		return ErrHierarchyRequest("Cannot insert a text node into a document.")
	}
	return nil
}

func (n *Node) canHaveChildren() bool {
	switch n.nodeType {
	case DocumentNode, ElementNode, DocumentFragmentNode:
		return true
	default:
		return false
	}
}

func (n *Node) hasElementChildExcluding(exclude *Node) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode && c != exclude {
			return true
		}
	}
	return false
}

func (n *Node) insertBeforeInternal(newChild, refChild *Node) {
	newChild.parentNode = n
	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
	} else {
		newChild.nextSibling = refChild
		newChild.prevSibling = refChild.prevSibling
		if refChild.prevSibling != nil {
			refChild.prevSibling.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		refChild.prevSibling = newChild
	}
	adoptNode(newChild, n.document())
}

// adoptNode moves a subtree, including attached shadow trees, into doc.
func adoptNode(node *Node, doc *Document) {
	if doc == nil || node.ownerDoc == doc {
		return
	}
	node.ownerDoc = doc
	if sr := node.shadowRootNode(); sr != nil {
		adoptNode(sr, doc)
	}
	for c := node.firstChild; c != nil; c = c.nextSibling {
		adoptNode(c, doc)
	}
}

// RemoveChild removes a child node. Returns nil if child is not a child of n.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node and reports a NotFoundError if
// child is not a child of n.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil || child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}
	n.removeChildInternal(child)
	return child, nil
}

func (n *Node) removeChildInternal(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// Contains returns true if other is an inclusive descendant of n.
// It does not cross shadow boundaries.
func (n *Node) Contains(other *Node) bool {
	for node := other; node != nil; node = node.parentNode {
		if node == n {
			return true
		}
	}
	return false
}

// GetRootNode returns the root of the node's tree. For nodes inside a shadow
// tree this is the shadow root; this root identifies the node's tree scope.
func (n *Node) GetRootNode() *Node {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root
}

// ShadowIncludingRoot returns the root reached by walking through shadow hosts.
func (n *Node) ShadowIncludingRoot() *Node {
	root := n.GetRootNode()
	for root.host != nil {
		root = root.host.GetRootNode()
	}
	return root
}

// shadowIncludingParent returns the parent, or the host for a shadow root.
// It is also the event parent used to build event paths.
func (n *Node) shadowIncludingParent() *Node {
	if n.host != nil {
		return n.host
	}
	return n.parentNode
}

// IsShadowIncludingInclusiveAncestorOf reports whether n is other or one of
// other's ancestors, following shadow roots to their hosts.
func (n *Node) IsShadowIncludingInclusiveAncestorOf(other *Node) bool {
	for node := other; node != nil; node = node.shadowIncludingParent() {
		if node == n {
			return true
		}
	}
	return false
}

func (n *Node) shadowRootNode() *Node {
	if n.elementData == nil || n.elementData.shadowRoot == nil {
		return nil
	}
	return n.elementData.shadowRoot.AsNode()
}

// SetDefaultEventHandler installs the node's default action. It runs after
// dispatch when no listener prevented or handled the event.
func (n *Node) SetDefaultEventHandler(handler func(DOMEvent)) {
	n.defaultHandler = handler
}

// describe returns a short label used in log fields.
func (n *Node) describe() string {
	if n == nil {
		return "<nil>"
	}
	if n.elementData != nil && n.elementData.id != "" {
		return n.nodeName + "#" + n.elementData.id
	}
	if n.host != nil {
		return "#shadow-root(" + n.host.describe() + ")"
	}
	return n.nodeName
}
