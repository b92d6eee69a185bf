package quasar

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quasar-dev/quasar/pkg/host"
)

// EventType is a native event a handler can listen for.
type EventType int

const (
	Click EventType = iota
	DoubleClick
	MouseDown
	MouseUp
	MouseEnter
	MouseLeave
	MouseOver
	MouseOut
	Input
	Change
	Submit
	Blur
	Focus
)

var eventNames = [...]string{
	Click:       "click",
	DoubleClick: "dblclick",
	MouseDown:   "mousedown",
	MouseUp:     "mouseup",
	MouseEnter:  "mouseenter",
	MouseLeave:  "mouseleave",
	MouseOver:   "mouseover",
	MouseOut:    "mouseout",
	Input:       "input",
	Change:      "change",
	Submit:      "submit",
	Blur:        "blur",
	Focus:       "focus",
}

// Name returns the host event name, e.g. "dblclick".
func (t EventType) Name() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// String implements fmt.Stringer.
func (t EventType) String() string {
	return t.Name()
}

// ParseEventType returns the EventType for a host event name.
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// Event is passed to handlers. B is the handle the handler was registered
// through: a *View[C] for view handlers, a *Node for plain node handlers.
type Event[B any] struct {
	Type EventType

	// Target is the element the event was dispatched to.
	Target *Node

	// Current is the element the handler is attached to. For handlers
	// registered with OnEach it is the matched descendant.
	Current *Node

	Binding B

	App *AppContext

	// Index is Current's position in the handler's current match list.
	// It is 0 for root and node handlers.
	Index int
}

// dispatch runs fn for one fired listener, then drains the render queue
// before control returns to the host.
func dispatch[B any](s *AppState, typ EventType, binding B, view *TypedKey, fn func(*Event[B]), current, target host.Element, index int) {
	ctx, span := s.tracer.Start(context.Background(), "quasar.event",
		trace.WithAttributes(
			attribute.String("quasar.event_type", typ.Name()),
			attribute.Int("quasar.index", index),
		))
	defer span.End()
	if view != nil {
		span.SetAttributes(attribute.String("quasar.view", view.String()))
	}

	s.metrics.recordEvent(typ)
	s.logger.Debug("event fired", "type", typ.Name(), "index", index)

	fn(&Event[B]{
		Type:    typ,
		Target:  s.node(target),
		Current: s.node(current),
		Binding: binding,
		App:     &AppContext{state: s, view: view},
		Index:   index,
	})
	s.drain(ctx)
}
