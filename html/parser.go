// Package html loads HTML markup into a dom.Document using golang.org/x/net/html
// as the underlying parser implementation.
//
// Two extensions make markup usable as a dispatch fixture:
//
//   - <template shadowrootmode="open|closed"> attaches a shadow root to the
//     parent element and moves the template's content into it.
//   - data-rect="x y width height" sets the element's geometry for hit testing.
package html

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/evdispatch/dom"
)

// GeometryAttribute is the attribute read by SetGeometry from markup.
const GeometryAttribute = "data-rect"

// ShadowRootModeAttribute marks a template as a declarative shadow root.
const ShadowRootModeAttribute = "shadowrootmode"

// Parse parses HTML from a string and returns a document.
func Parse(htmlContent string) (*dom.Document, error) {
	return ParseReader(strings.NewReader(htmlContent))
}

// ParseReader parses HTML from an io.Reader and returns a document.
func ParseReader(r io.Reader) (*dom.Document, error) {
	netNode, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	doc := dom.NewDocument()
	b := &builder{doc: doc}
	for c := netNode.FirstChild; c != nil; c = c.NextSibling {
		if err := b.convertInto(doc.AsNode(), c); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// ParseFragment parses an HTML fragment in the context of the given element
// and appends the result to it. It returns the appended nodes.
func ParseFragment(fragment string, context *dom.Element) ([]*dom.Node, error) {
	return ParseFragmentReader(strings.NewReader(fragment), context)
}

// ParseFragmentReader parses an HTML fragment from a reader and appends the
// result to context.
func ParseFragmentReader(r io.Reader, context *dom.Element) ([]*dom.Node, error) {
	if context == nil {
		return nil, errors.New("parse fragment: nil context element")
	}
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(context.LocalName())),
		Data:     context.LocalName(),
	}
	netNodes, err := html.ParseFragment(r, contextNode)
	if err != nil {
		return nil, errors.Wrap(err, "parse html fragment")
	}
	doc := context.AsNode().OwnerDocument()
	if doc == nil {
		return nil, errors.New("parse fragment: context element has no document")
	}
	b := &builder{doc: doc}
	before := context.AsNode().LastChild()
	for _, nn := range netNodes {
		if err := b.convertInto(context.AsNode(), nn); err != nil {
			return nil, err
		}
	}

	var added []*dom.Node
	start := context.AsNode().FirstChild()
	if before != nil {
		start = before.NextSibling()
	}
	for c := start; c != nil; c = c.NextSibling() {
		added = append(added, c)
	}
	return added, nil
}

// builder converts golang.org/x/net/html nodes into nodes of one document.
type builder struct {
	doc *dom.Document
}

// convertInto converts n and its subtree and appends the result to parent.
func (b *builder) convertInto(parent *dom.Node, n *html.Node) error {
	switch n.Type {
	case html.ElementNode:
		if n.DataAtom == atom.Template && hasAttr(n, ShadowRootModeAttribute) && parent.NodeType() == dom.ElementNode {
			return b.attachDeclarativeShadowRoot((*dom.Element)(parent), n)
		}
		el, err := b.convertElement(n)
		if err != nil {
			return err
		}
		if _, err := parent.AppendChildWithError(el.AsNode()); err != nil {
			return errors.Wrapf(err, "append <%s>", n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := b.convertInto(el.AsNode(), c); err != nil {
				return err
			}
		}
	case html.TextNode:
		if parent.NodeType() == dom.DocumentNode {
			return nil
		}
		parent.AppendChild(b.doc.CreateTextNode(n.Data))
	case html.CommentNode:
		parent.AppendChild(b.doc.CreateComment(n.Data))
	}
	// Doctype nodes have no counterpart in the dispatch tree.
	return nil
}

func (b *builder) convertElement(n *html.Node) (*dom.Element, error) {
	el := b.doc.CreateElement(n.Data)
	for _, attr := range n.Attr {
		el.SetAttribute(attr.Key, attr.Val)
	}
	if rect, ok := attrValue(n, GeometryAttribute); ok {
		geometry, err := ParseRect(rect)
		if err != nil {
			return nil, errors.Wrapf(err, "<%s %s>", n.Data, GeometryAttribute)
		}
		el.SetGeometry(geometry)
	}
	return el, nil
}

func (b *builder) attachDeclarativeShadowRoot(host *dom.Element, tmpl *html.Node) error {
	modeValue, _ := attrValue(tmpl, ShadowRootModeAttribute)
	var mode dom.ShadowRootMode
	switch strings.ToLower(modeValue) {
	case "open":
		mode = dom.ShadowRootModeOpen
	case "closed":
		mode = dom.ShadowRootModeClosed
	default:
		return errors.Errorf("<%s>: invalid %s %q", host.LocalName(), ShadowRootModeAttribute, modeValue)
	}
	sr, err := host.AttachShadow(mode)
	if err != nil {
		return errors.Wrapf(err, "<%s>: attach declarative shadow root", host.LocalName())
	}
	for c := tmpl.FirstChild; c != nil; c = c.NextSibling {
		if err := b.convertInto(sr.AsNode(), c); err != nil {
			return err
		}
	}
	return nil
}

// ParseRect parses "x y width height", separated by spaces or commas.
func ParseRect(s string) (*dom.DOMRect, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 4 {
		return nil, errors.Errorf("rect %q: expected 4 numbers, got %d", s, len(fields))
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "rect %q", s)
		}
		v[i] = n
	}
	return dom.NewDOMRect(v[0], v[1], v[2], v[3]), nil
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attrValue(n, key)
	return ok
}
