package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/quasar-dev/quasar/pkg/host"
	"github.com/quasar-dev/quasar/pkg/vdom"
)

// booleanProps are live properties whose fallback is attribute presence.
var booleanProps = map[string]bool{
	"checked":  true,
	"selected": true,
	"disabled": true,
}

// Node is an element in a Document. Wrappers are stable: the same live
// element always yields the same *Node.
type Node struct {
	doc *Document
	n   *html.Node
	id  string

	props     map[string]string
	listeners map[string][]*listener
}

type listener struct {
	fn      host.Listener
	removed bool
}

// ID returns the element id assigned by the document.
func (n *Node) ID() string {
	return n.id
}

// Tag returns the element's tag name.
func (n *Node) Tag() string {
	return n.n.Data
}

// Live reports whether the element is still attached to its document.
func (n *Node) Live() bool {
	_, ok := n.doc.nodes[n.n]
	return ok
}

// QueryAll implements host.Element. The element itself never matches.
func (n *Node) QueryAll(selector string) ([]host.Element, error) {
	nodes, err := n.doc.queryWithin(n.n, selector)
	if err != nil {
		return nil, err
	}
	return toElements(nodes), nil
}

// QueryNodes returns descendants matching selector.
func (n *Node) QueryNodes(selector string) ([]*Node, error) {
	return n.doc.queryWithin(n.n, selector)
}

// Contains implements host.Element.
func (n *Node) Contains(other host.Element) bool {
	o, ok := other.(*Node)
	if !ok || o == n || o.doc != n.doc {
		return false
	}
	for p := o.n.Parent; p != nil; p = p.Parent {
		if p == n.n {
			return true
		}
	}
	return false
}

// SetInnerMarkup implements host.Element.
func (n *Node) SetInnerMarkup(markup string) error {
	next, err := vdom.Parse(n.n, markup)
	if err != nil {
		return err
	}
	patches := vdom.Reconcile(n.n, next, vdom.Options{OnRemove: n.doc.forget})
	if len(patches) == 0 {
		return nil
	}
	n.doc.writes += len(patches)
	n.doc.markUpdated(n)
	n.doc.logger.Debug("dom patched", "node", n.id, "patches", len(patches))
	return nil
}

// Listen implements host.Element.
func (n *Node) Listen(event string, fn host.Listener) func() {
	l := &listener{fn: fn}
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	n.listeners[event] = append(n.listeners[event], l)

	return func() {
		if l.removed {
			return
		}
		l.removed = true
		ls := n.listeners[event]
		for i, existing := range ls {
			if existing == l {
				n.listeners[event] = append(ls[:i], ls[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// Property implements host.Element.
func (n *Node) Property(name string) string {
	if v, ok := n.props[name]; ok {
		return v
	}
	if booleanProps[name] {
		if _, ok := n.Attribute(name); ok {
			return "true"
		}
		return "false"
	}
	v, _ := n.Attribute(name)
	return v
}

// SetProperty implements host.Element.
func (n *Node) SetProperty(name, value string) {
	if n.props == nil {
		n.props = make(map[string]string)
	}
	n.props[name] = value
}

// Attribute implements host.Element.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the concatenated text content of the element.
func (n *Node) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.TextNode {
			b.WriteString(h.Data)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	return b.String()
}

// InnerMarkup renders the element's children.
func (n *Node) InnerMarkup() string {
	var buf bytes.Buffer
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterMarkup renders the element including its own tag.
func (n *Node) OuterMarkup() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n.n)
	return buf.String()
}

// Dispatch fires event at this element. See Document.Dispatch.
func (n *Node) Dispatch(event string) {
	n.doc.Dispatch(n, event)
}
