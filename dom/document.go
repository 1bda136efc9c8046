package dom

// Document represents the entire HTML document.
type Document Node

// documentData holds data specific to Document nodes.
type documentData struct {
	focused *Element
	queue   *ScopedEventQueue
}

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{}
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode.
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// NodeName returns "#document".
func (d *Document) NodeName() string {
	return "#document"
}

// AppendChild appends a child to the document.
func (d *Document) AppendChild(child *Node) *Node {
	return d.AsNode().AppendChild(child)
}

// CreateElement creates a new element with the given tag name.
func (d *Document) CreateElement(tagName string) *Element {
	return newElement(tagName, d)
}

// CreateTextNode creates a new text node.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.textData = &data
	return node
}

// CreateComment creates a new comment node.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.textData = &data
	return node
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	for c := d.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// Body returns the body element, or nil if there is none.
func (d *Document) Body() *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for c := root.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode && c.elementData.localName == "body" {
			return (*Element)(c)
		}
	}
	return nil
}

// GetElementById returns the first element in tree order with the given id.
// Shadow trees are not searched.
func (d *Document) GetElementById(id string) *Element {
	return findElementById(d.AsNode(), id)
}

func findElementById(root *Node, id string) *Element {
	if id == "" {
		return nil
	}
	for child := root.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType != ElementNode {
			continue
		}
		if child.elementData.id == id {
			return (*Element)(child)
		}
		if found := findElementById(child, id); found != nil {
			return found
		}
	}
	return nil
}

// EventQueue returns the scoped event queue owned by this document.
// Tree mutations that must not interleave with listeners run inside its scope.
func (d *Document) EventQueue() *ScopedEventQueue {
	if d.documentData.queue == nil {
		d.documentData.queue = NewScopedEventQueue()
	}
	return d.documentData.queue
}

// WalkPaintOrder calls fn for every node of the document in paint order: a
// node, then its children, then its shadow tree, open or closed. depth counts
// the parent and shadow-root links from the document.
func (d *Document) WalkPaintOrder(fn func(n *Node, depth int)) {
	walkPaintOrder(d.AsNode(), 0, fn)
}

func walkPaintOrder(node *Node, depth int, fn func(n *Node, depth int)) {
	fn(node, depth)
	for c := node.firstChild; c != nil; c = c.nextSibling {
		walkPaintOrder(c, depth+1, fn)
	}
	if sr := node.shadowRootNode(); sr != nil {
		walkPaintOrder(sr, depth+1, fn)
	}
}

// HitTest returns the element painted last whose geometry contains the
// point, descending into shadow trees.
func (d *Document) HitTest(x, y float64) *Node {
	var hit *Node
	d.WalkPaintOrder(func(n *Node, _ int) {
		if n.elementData != nil && n.elementData.geometry != nil &&
			n.elementData.geometry.Contains(x, y) {
			hit = n
		}
	})
	return hit
}

// ElementFromPoint returns the topmost element at the point, retargeted so
// that nodes inside shadow trees are reported as their host.
func (d *Document) ElementFromPoint(x, y float64) *Element {
	hit := d.HitTest(x, y)
	if hit == nil {
		return nil
	}
	if target := retarget(hit, d.AsNode()); target != nil && target.nodeType == ElementNode {
		return (*Element)(target)
	}
	return nil
}
