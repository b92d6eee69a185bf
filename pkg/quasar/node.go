package quasar

import (
	"fmt"

	"github.com/quasar-dev/quasar/pkg/host"
)

// Node is a handle on a host element.
type Node struct {
	state *AppState
	el    host.Element
}

func (s *AppState) node(el host.Element) *Node {
	if el == nil {
		return nil
	}
	return &Node{state: s, el: el}
}

func (s *AppState) nodes(q host.Queryer, selector string) ([]*Node, error) {
	els, err := q.QueryAll(selector)
	if err != nil {
		return nil, err
	}
	out := make([]*Node, len(els))
	for i, el := range els {
		out[i] = s.node(el)
	}
	return out, nil
}

func (n *Node) scope() (*AppState, *TypedKey) {
	return n.state, nil
}

func (n *Node) queryRoot() host.Queryer {
	return n.el
}

// Element returns the underlying host element.
func (n *Node) Element() host.Element {
	return n.el
}

// Equal reports whether both handles refer to the same element.
func (n *Node) Equal(other *Node) bool {
	return other != nil && n.el == other.el
}

// Query returns the first descendant matching selector.
func (n *Node) Query(selector string) (*Node, bool, error) {
	el, ok, err := host.Query(n.el, selector)
	if err != nil || !ok {
		return nil, ok, err
	}
	return n.state.node(el), true, nil
}

// MustQuery is like Query but panics if nothing matches.
func (n *Node) MustQuery(selector string) *Node {
	found, ok, err := n.Query(selector)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic(fmt.Errorf("quasar: query %q: %w", selector, ErrNoMatch))
	}
	return found
}

// QueryAll returns every descendant matching selector.
func (n *Node) QueryAll(selector string) ([]*Node, error) {
	return n.state.nodes(n.el, selector)
}

// On registers fn for event on this element. Handlers get an app-level
// context that belongs to no view. The listener is not re-attached if a
// re-render replaces the element; use View.OnEach for elements inside a
// component.
func (n *Node) On(event EventType, fn func(*Event[*Node])) {
	n.el.Listen(event.Name(), func(target host.Element) {
		dispatch(n.state, event, n, nil, fn, n.el, target, 0)
	})
	n.state.logger.Debug("node handler registered", "event", event.Name())
}

// Get reads a live property. Unset properties fall back to the attribute.
func (n *Node) Get(prop string) string {
	return n.el.Property(prop)
}

// Set writes a live property.
func (n *Node) Set(prop, value string) {
	n.el.SetProperty(prop, value)
}

// Attr reads a markup attribute.
func (n *Node) Attr(name string) (string, bool) {
	return n.el.Attribute(name)
}

// Value returns the "value" property.
func (n *Node) Value() string {
	return n.el.Property("value")
}

// Checked reports the "checked" property.
func (n *Node) Checked() bool {
	return n.el.Property("checked") == "true"
}

// Properties reads each key as a property, falling back to the attribute.
func (n *Node) Properties(keys ...string) Properties {
	props := make(Properties, len(keys))
	for _, k := range keys {
		props[k] = n.el.Property(k)
	}
	return props
}
