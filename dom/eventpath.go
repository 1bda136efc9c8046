package dom

// NodeEventContext is one entry of an EventPath: a node whose listeners may
// see the event, plus the values the event exposes while they run.
type NodeEventContext struct {
	node          *Node
	currentTarget *Node
	target        *Node
	relatedTarget *Node

	touchEventContext *TouchEventContext
}

func newNodeEventContext(node, target *Node) *NodeEventContext {
	return &NodeEventContext{
		node:          node,
		currentTarget: node,
		target:        target,
	}
}

// Node returns the node whose listeners this context invokes.
func (c *NodeEventContext) Node() *Node { return c.node }

// CurrentTarget returns the value of event.currentTarget for this context.
func (c *NodeEventContext) CurrentTarget() *Node { return c.currentTarget }

// Target returns the event target retargeted against this context's node.
func (c *NodeEventContext) Target() *Node { return c.target }

// RelatedTarget returns the related target adjusted for this context, or nil
// when no adjustment was made.
func (c *NodeEventContext) RelatedTarget() *Node { return c.relatedTarget }

// TouchEventContext returns the touch lists shared by this context's tree
// scope, or nil for non-touch events.
func (c *NodeEventContext) TouchEventContext() *TouchEventContext { return c.touchEventContext }

func (c *NodeEventContext) currentTargetSameAsTarget() bool {
	return c.currentTarget == c.target
}

// handleLocalEvents exposes this context's view of the event and delivers it
// to the node's own listeners.
func (c *NodeEventContext) handleLocalEvents(event DOMEvent, pass invokePass) {
	event.AsEvent().target = c.target
	if c.relatedTarget != nil {
		if rt, ok := event.(relatedTargetEvent); ok {
			rt.setRelatedTarget(c.relatedTarget)
		}
	}
	if c.touchEventContext != nil {
		c.touchEventContext.handleLocalEvents(event)
	}
	c.node.fireEventListeners(event, pass)
}

// TouchEventContext holds the touch lists visible from one tree scope. It is
// shared by every NodeEventContext in that scope.
type TouchEventContext struct {
	scope          *Node
	touches        *TouchList
	targetTouches  *TouchList
	changedTouches *TouchList
}

func newTouchEventContext(scope *Node, event *TouchEvent) *TouchEventContext {
	tc := &TouchEventContext{
		scope:          scope,
		touches:        NewTouchList(),
		targetTouches:  NewTouchList(),
		changedTouches: NewTouchList(),
	}
	for _, t := range event.touches.touches {
		scoped := t.cloneWithTarget(retarget(t.target, scope))
		tc.touches.Append(scoped)
		if touchStartedInScope(t, scope) {
			tc.targetTouches.Append(scoped)
		}
	}
	for _, t := range event.changedTouches.touches {
		if visible := retarget(t.target, scope); visible != nil {
			tc.changedTouches.Append(t.cloneWithTarget(visible))
		}
	}
	return tc
}

// touchStartedInScope reports whether the touch's start target lies in the
// scope rooted at scope, including shadow trees nested below it.
func touchStartedInScope(t *Touch, scope *Node) bool {
	return t.target != nil && scope.IsShadowIncludingInclusiveAncestorOf(t.target)
}

// Scope returns the root node of the tree scope.
func (tc *TouchEventContext) Scope() *Node { return tc.scope }

// Touches returns every touch, retargeted to this scope.
func (tc *TouchEventContext) Touches() *TouchList { return tc.touches }

// TargetTouches returns the touches that started inside this scope.
func (tc *TouchEventContext) TargetTouches() *TouchList { return tc.targetTouches }

// ChangedTouches returns the changed touches visible from this scope,
// retargeted to it.
func (tc *TouchEventContext) ChangedTouches() *TouchList { return tc.changedTouches }

func (tc *TouchEventContext) handleLocalEvents(event DOMEvent) {
	te, ok := event.(*TouchEvent)
	if !ok {
		assertFailed("touch context used for a non-touch event", nil)
		return
	}
	te.touches = tc.touches
	te.targetTouches = tc.targetTouches
	te.changedTouches = tc.changedTouches
}

// EventPath is the ordered list of contexts an event visits, outermost
// ancestor first and the target last. The capture phase walks it forwards
// and the bubble phase backwards. A path lives for one dispatch only.
type EventPath struct {
	target   *Node
	contexts []*NodeEventContext
}

// NewEventPath builds the path for target by following parent links, and
// shadow roots to their hosts, up to the root. A nil target yields an empty path.
func NewEventPath(target *Node) *EventPath {
	p := &EventPath{target: target}
	if target == nil {
		return p
	}
	var chain []*Node
	for n := target; n != nil; n = n.shadowIncludingParent() {
		chain = append(chain, n)
	}
	p.contexts = make([]*NodeEventContext, len(chain))
	for i, n := range chain {
		p.contexts[len(chain)-1-i] = newNodeEventContext(n, retarget(target, n))
	}
	return p
}

// Len returns the number of contexts in the path.
func (p *EventPath) Len() int {
	return len(p.contexts)
}

// At returns the context at index i, 0 being the outermost ancestor.
func (p *EventPath) At(i int) *NodeEventContext {
	return p.contexts[i]
}

// IsEmpty reports whether the path has no contexts.
func (p *EventPath) IsEmpty() bool {
	return len(p.contexts) == 0
}

// Nodes returns the path's nodes in capture order.
func (p *EventPath) Nodes() []*Node {
	nodes := make([]*Node, len(p.contexts))
	for i, c := range p.contexts {
		nodes[i] = c.node
	}
	return nodes
}

// AdjustForRelatedTarget records, for every context, the related target as
// that context's node may see it: relatedTarget itself when it is in the
// same or an enclosing tree scope, otherwise the shadow host that contains
// it. A nil relatedTarget leaves the path untouched.
func (p *EventPath) AdjustForRelatedTarget(relatedTarget *Node) {
	if relatedTarget == nil {
		return
	}
	for _, c := range p.contexts {
		c.relatedTarget = retarget(relatedTarget, c.node)
	}
}

// AdjustForTouchEvent gives every tree scope on the path its own touch lists
// and attaches them to the contexts in that scope.
func (p *EventPath) AdjustForTouchEvent(event *TouchEvent) {
	if event == nil {
		return
	}
	byScope := make(map[*Node]*TouchEventContext)
	for _, c := range p.contexts {
		scope := c.node.GetRootNode()
		tc, ok := byScope[scope]
		if !ok {
			tc = newTouchEventContext(scope, event)
			byScope[scope] = tc
		}
		c.touchEventContext = tc
	}
}

// retarget returns a as seen from b: a itself unless a is in a shadow tree
// that does not enclose b, in which case the host of that tree, repeated
// until the result is visible from b.
// https://dom.spec.whatwg.org/#retarget
func retarget(a, b *Node) *Node {
	for a != nil {
		root := a.GetRootNode()
		if !root.IsShadowRoot() || root.IsShadowIncludingInclusiveAncestorOf(b) {
			return a
		}
		a = root.host
	}
	return nil
}
