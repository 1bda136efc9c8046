package dom

// ShadowRootMode indicates whether the shadow root is open or closed.
type ShadowRootMode string

const (
	// ShadowRootModeOpen means the shadow root is reachable through
	// Element.ShadowRoot.
	ShadowRootModeOpen ShadowRootMode = "open"
	// ShadowRootModeClosed means the shadow root is only reachable through the
	// value returned by AttachShadow.
	ShadowRootModeClosed ShadowRootMode = "closed"
)

// ShadowRoot is the root of a shadow tree. Each shadow root starts a new tree
// scope: related targets and touch targets are retargeted to the host when
// observed from outside of it.
type ShadowRoot Node

func newShadowRoot(host *Element, mode ShadowRootMode) *ShadowRoot {
	node := newNode(DocumentFragmentNode, "#document-fragment", host.ownerDoc)
	node.host = host.AsNode()
	node.shadowMode = mode
	return (*ShadowRoot)(node)
}

// AsNode returns the underlying Node.
func (sr *ShadowRoot) AsNode() *Node {
	return (*Node)(sr)
}

// Mode returns the mode of this shadow root.
func (sr *ShadowRoot) Mode() ShadowRootMode {
	return sr.shadowMode
}

// Host returns the element that hosts this shadow root.
func (sr *ShadowRoot) Host() *Element {
	return (*Element)(sr.host)
}

// AppendChild appends a node to the shadow tree.
func (sr *ShadowRoot) AppendChild(child *Node) *Node {
	return sr.AsNode().AppendChild(child)
}

// GetElementById returns the first element in the shadow tree with the given id.
func (sr *ShadowRoot) GetElementById(id string) *Element {
	return findElementById(sr.AsNode(), id)
}
