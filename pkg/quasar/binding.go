package quasar

import "github.com/quasar-dev/quasar/pkg/host"

// BindingState is the lifecycle state of a Binding.
type BindingState int

const (
	// Mounted bindings are clean.
	Mounted BindingState = iota
	// Dirty bindings wait in the render queue.
	Dirty
	// Rendering is transient, inside ProcessRenderQueue.
	Rendering
)

// String returns the state name.
func (s BindingState) String() string {
	switch s {
	case Mounted:
		return "mounted"
	case Dirty:
		return "dirty"
	case Rendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// Binding pairs a mounted component with its host element and the handlers
// registered on it. Bindings live as long as their AppState.
type Binding struct {
	key      TypedKey
	renderer Renderer
	node     host.Element
	handlers []*Handler
	borrow   borrow
	state    BindingState
}

// Key returns the binding's view key.
func (b *Binding) Key() TypedKey {
	return b.key
}

// Element returns the host element the component is mounted on.
func (b *Binding) Element() host.Element {
	return b.node
}

// State returns the lifecycle state.
func (b *Binding) State() BindingState {
	return b.state
}

// Handlers returns the registered handlers in registration order.
func (b *Binding) Handlers() []*Handler {
	return append([]*Handler(nil), b.handlers...)
}

// Handler is one event registration on a binding. A handler without a
// selector listens on the binding's root element. A handler with a selector
// listens on each matching descendant and is re-matched after every render.
type Handler struct {
	event    EventType
	selector string
	fire     func(current, target host.Element, index int)

	// matched is the match list from the last sync, in document order.
	matched []host.Element
	cancels map[host.Element]func()
}

func newHandler(event EventType, selector string, fire func(current, target host.Element, index int)) *Handler {
	return &Handler{
		event:    event,
		selector: selector,
		fire:     fire,
		cancels:  make(map[host.Element]func()),
	}
}

// Event returns the event type the handler listens for.
func (h *Handler) Event() EventType {
	return h.event
}

// Selector returns the descendant selector, or "" for a root handler.
func (h *Handler) Selector() string {
	return h.selector
}

// Matched returns the elements the handler is currently attached to.
func (h *Handler) Matched() []host.Element {
	return append([]host.Element(nil), h.matched...)
}

// attach registers the handler's listener on el.
func (h *Handler) attach(el host.Element) {
	h.cancels[el] = el.Listen(h.event.Name(), func(target host.Element) {
		h.fire(el, target, h.index(el))
	})
}

// index returns el's position in the current match list.
func (h *Handler) index(el host.Element) int {
	for i, m := range h.matched {
		if m == el {
			return i
		}
	}
	return -1
}

// seed attaches to els and records them as the match list.
func (h *Handler) seed(els []host.Element) {
	for _, el := range els {
		h.attach(el)
	}
	h.matched = els
}

// sync re-queries the selector under root, attaches to elements not seen in
// the previous match list and detaches from elements that left it.
func (h *Handler) sync(root host.Element) (attached, detached int, err error) {
	next, err := root.QueryAll(h.selector)
	if err != nil {
		return 0, 0, err
	}

	keep := make(map[host.Element]bool, len(next))
	for _, el := range next {
		keep[el] = true
		if _, ok := h.cancels[el]; ok {
			continue
		}
		h.attach(el)
		attached++
	}
	for el, cancel := range h.cancels {
		if keep[el] {
			continue
		}
		cancel()
		delete(h.cancels, el)
		detached++
	}
	h.matched = next
	return attached, detached, nil
}
