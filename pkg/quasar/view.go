package quasar

import (
	"github.com/quasar-dev/quasar/pkg/host"
)

// Queryable is anything a component can be bound under: an App, a Node or
// a View.
type Queryable interface {
	Scope
	queryRoot() host.Queryer
}

// View is the handle on a mounted component of type C.
type View[C any] struct {
	state   *AppState
	binding *Binding
}

// Bind mounts component on the first element under q matching selector:
// it renders the initial markup, patches it into the element and stores a
// Binding under a fresh view key. A selector that matches nothing returns a
// *SetupError wrapping ErrNoMatch.
//
// Renderer must be implemented on *C:
//
//	func (c *Counter) Render(node *quasar.Node, app *quasar.AppContext) (string, error)
func Bind[C any, PC interface {
	*C
	Renderer
}](q Queryable, selector string, component C) (*View[C], error) {
	s, _ := q.scope()

	el, ok, err := host.Query(q.queryRoot(), selector)
	if err != nil {
		return nil, &SetupError{Selector: selector, Err: err}
	}
	if !ok {
		return nil, &SetupError{Selector: selector, Err: ErrNoMatch}
	}

	c := new(C)
	*c = component
	b := s.newBinding(PC(c), el)
	s.guardWrite(b.key)

	markup, err := s.render(b)
	if err != nil {
		s.observers.resetView(b.key)
		return nil, &SetupError{Selector: selector, Err: err}
	}
	if err := el.SetInnerMarkup(markup); err != nil {
		s.observers.resetView(b.key)
		return nil, &SetupError{Selector: selector, Err: &RenderError{View: b.key, Err: err}}
	}
	s.storeBinding(b)

	return &View[C]{state: s, binding: b}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[C any, PC interface {
	*C
	Renderer
}](q Queryable, selector string, component C) *View[C] {
	v, err := Bind[C, PC](q, selector, component)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *View[C]) scope() (*AppState, *TypedKey) {
	return v.state, &v.binding.key
}

func (v *View[C]) queryRoot() host.Queryer {
	return v.binding.node
}

// Key returns the view key.
func (v *View[C]) Key() TypedKey {
	return v.binding.key
}

// Binding returns the underlying binding.
func (v *View[C]) Binding() *Binding {
	return v.binding
}

// Node returns the element the component is mounted on.
func (v *View[C]) Node() *Node {
	return v.state.node(v.binding.node)
}

// Data runs fn with shared access to the component.
func (v *View[C]) Data(fn func(*C)) {
	release := v.binding.borrow.read("binding " + v.binding.key.String())
	defer release()
	fn(cast[C](v.binding.key, v.binding.renderer))
}

// DataMut enqueues the view's own re-render, then runs fn with exclusive
// access to the component.
func (v *View[C]) DataMut(fn func(*C)) {
	v.state.guardWrite(v.binding.key)
	release := v.binding.borrow.write("binding " + v.binding.key.String())
	defer release()

	v.state.EnqueueRender(v.binding.key)
	fn(cast[C](v.binding.key, v.binding.renderer))
}

// On registers fn for event on the component's root element. The root
// element is never replaced, so the handler survives every re-render.
func (v *View[C]) On(event EventType, fn func(*Event[*View[C]])) {
	b := v.binding
	v.state.guardWrite(b.key)

	h := newHandler(event, "", func(current, target host.Element, index int) {
		dispatch(v.state, event, v, &b.key, fn, current, target, index)
	})
	h.seed([]host.Element{b.node})
	b.handlers = append(b.handlers, h)

	v.state.metrics.recordListeners(1, 0)
	v.state.logger.Debug("handler registered", "view", b.key.String(), "event", event.Name())
}

// OnEach registers fn for event on every descendant matching selector. After
// each re-render the selector is matched again: new elements get one
// listener, removed elements lose theirs. Event.Index is the element's
// position in the match list at the time the event fires.
func (v *View[C]) OnEach(event EventType, selector string, fn func(*Event[*View[C]])) error {
	b := v.binding
	v.state.guardWrite(b.key)

	els, err := b.node.QueryAll(selector)
	if err != nil {
		return &SetupError{Selector: selector, Err: err}
	}

	h := newHandler(event, selector, func(current, target host.Element, index int) {
		dispatch(v.state, event, v, &b.key, fn, current, target, index)
	})
	h.seed(els)
	b.handlers = append(b.handlers, h)

	v.state.metrics.recordListeners(len(els), 0)
	v.state.logger.Debug("handler registered",
		"view", b.key.String(),
		"event", event.Name(),
		"selector", selector,
		"matched", len(els),
	)
	return nil
}

// Query returns the first descendant matching selector.
func (v *View[C]) Query(selector string) (*Node, bool, error) {
	return v.Node().Query(selector)
}

// QueryAll returns every descendant matching selector.
func (v *View[C]) QueryAll(selector string) ([]*Node, error) {
	return v.Node().QueryAll(selector)
}
