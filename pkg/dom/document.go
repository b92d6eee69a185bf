package dom

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/quasar-dev/quasar/pkg/host"
)

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for patch and dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Document is an in-memory host document.
type Document struct {
	root *html.Node

	// nodes maps live html nodes to their stable wrappers.
	nodes map[*html.Node]*Node
	byID  map[string]*Node
	ids   idGenerator

	selectors map[string]cascadia.Selector

	// writes counts every patch applied by SetInnerMarkup.
	writes int

	// updated lists elements whose children changed since TakeUpdates.
	updated    []*Node
	updatedSet map[*Node]bool

	logger *slog.Logger
}

// Parse parses a complete HTML document.
func Parse(markup string, opts ...Option) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}

	d := &Document{
		root:       root,
		nodes:      make(map[*html.Node]*Node),
		byID:       make(map[string]*Node),
		selectors:  make(map[string]cascadia.Selector),
		updatedSet: make(map[*Node]bool),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
func MustParse(markup string, opts ...Option) *Document {
	d, err := Parse(markup, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// QueryAll implements host.Document.
func (d *Document) QueryAll(selector string) ([]host.Element, error) {
	nodes, err := d.QueryNodes(selector)
	if err != nil {
		return nil, err
	}
	return toElements(nodes), nil
}

// QueryNodes returns every element matching selector.
func (d *Document) QueryNodes(selector string) ([]*Node, error) {
	return d.queryWithin(d.root, selector)
}

// QueryNode returns the first element matching selector.
func (d *Document) QueryNode(selector string) (*Node, bool) {
	nodes, err := d.QueryNodes(selector)
	if err != nil || len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// ByID returns the element with the given element id, if it is still live.
func (d *Document) ByID(id string) (*Node, bool) {
	n, ok := d.byID[id]
	return n, ok
}

// Writes returns the number of patches applied since the document was parsed.
func (d *Document) Writes() int {
	return d.writes
}

// TakeUpdates returns the elements whose children changed since the last
// call, in the order they were first changed, and resets the list.
// Elements removed from the document in the meantime are skipped.
func (d *Document) TakeUpdates() []*Node {
	out := make([]*Node, 0, len(d.updated))
	for _, n := range d.updated {
		if _, live := d.nodes[n.n]; live {
			out = append(out, n)
		}
	}
	d.updated = nil
	clear(d.updatedSet)
	return out
}

// Markup renders the whole document.
func (d *Document) Markup() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, d.root)
	return buf.String()
}

// Body returns the <body> element.
func (d *Document) Body() *Node {
	n, ok := d.QueryNode("body")
	if !ok {
		// html.Parse always synthesizes a body.
		panic("dom: document has no body")
	}
	return n
}

// queryWithin matches selector against the descendants of root. A root
// that has been removed from the document matches nothing.
func (d *Document) queryWithin(root *html.Node, selector string) ([]*Node, error) {
	sel, err := d.compile(selector)
	if err != nil {
		return nil, err
	}
	if root != d.root {
		if _, ok := d.nodes[root]; !ok {
			return nil, nil
		}
	}
	var out []*Node
	for _, m := range sel.MatchAll(root) {
		if m == root {
			continue
		}
		out = append(out, d.wrap(m))
	}
	return out, nil
}

func (d *Document) compile(selector string) (cascadia.Selector, error) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	d.selectors[selector] = sel
	return sel, nil
}

// wrap returns the stable wrapper for a live node, creating it on first use.
func (d *Document) wrap(h *html.Node) *Node {
	if n, ok := d.nodes[h]; ok {
		return n
	}
	n := &Node{doc: d, n: h, id: d.ids.next()}
	d.nodes[h] = n
	d.byID[n.id] = n
	return n
}

// forget drops the wrapper and listeners of a node removed from the tree.
func (d *Document) forget(h *html.Node) {
	n, ok := d.nodes[h]
	if !ok {
		return
	}
	for _, ls := range n.listeners {
		for _, l := range ls {
			l.removed = true
		}
	}
	n.listeners = nil
	delete(d.nodes, h)
	delete(d.byID, n.id)
}

func (d *Document) markUpdated(n *Node) {
	if d.updatedSet[n] {
		return
	}
	d.updatedSet[n] = true
	d.updated = append(d.updated, n)
}

func toElements(nodes []*Node) []host.Element {
	out := make([]host.Element, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}
