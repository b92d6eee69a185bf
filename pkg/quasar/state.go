package quasar

import (
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel/trace"

	"github.com/quasar-dev/quasar/pkg/host"
)

// AppState owns all application state: the data store, the bindings, the
// observer graph and the render queue. It is not safe for concurrent use;
// every call must come from the goroutine that delivers host events.
type AppState struct {
	data      dataStore
	bindings  map[TypedKey]*Binding
	order     []TypedKey
	observers *observerStore
	queue     renderQueue

	// doc is the document App queries run against, if any.
	doc host.Queryer

	// rendering counts nested renders; any state write while it is
	// non-zero panics.
	rendering int
	draining  bool

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	newKey  func() string
}

// NewState returns an empty AppState.
func NewState(opts ...Option) *AppState {
	s := &AppState{
		data:      make(dataStore),
		bindings:  make(map[TypedKey]*Binding),
		observers: newObserverStore(),
	}
	defaultOptions(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scope is anything state can be accessed through: an App, an AppState, an
// AppContext or a View. Scopes that belong to a view register that view as
// an observer of every key read through them.
type Scope interface {
	scope() (*AppState, *TypedKey)
}

func (s *AppState) scope() (*AppState, *TypedKey) {
	return s, nil
}

// Logger returns the state's logger.
func (s *AppState) Logger() *slog.Logger {
	return s.logger
}

// =============================================================================
// Data access
// =============================================================================

// Data returns a copy of the value stored under (T, name). It reports false
// if nothing is stored. Reading through a view's scope registers the view as
// an observer of the key, whether or not a value is present.
func Data[T any](sc Scope, name string) (T, bool) {
	s, view := sc.scope()
	key := KeyOf[T](name)
	if view != nil {
		s.AddObserver(key, *view)
	}

	var zero T
	sl, ok := s.data[key]
	if !ok {
		return zero, false
	}
	release := sl.borrow.read(key.String())
	defer release()
	return *cast[T](key, sl.value), true
}

// DataMut runs fn with exclusive access to the value stored under (T, name)
// and reports whether a value was present. Like Data, a view scope becomes an
// observer of the key even when nothing is stored yet. Every observer of the key is
// enqueued for re-render before fn runs; the engine cannot tell whether fn
// actually changes anything.
func DataMut[T any](sc Scope, name string, fn func(*T)) bool {
	s, view := sc.scope()
	key := KeyOf[T](name)
	s.guardWrite(key)
	if view != nil {
		s.AddObserver(key, *view)
	}

	sl, ok := s.data[key]
	if !ok {
		return false
	}
	release := sl.borrow.write(key.String())
	defer release()

	s.enqueueObservers(key)
	fn(cast[T](key, sl.value))
	return true
}

// SetData stores value under (T, name), replacing any previous value, and
// enqueues every observer of the key.
func SetData[T any](sc Scope, name string, value T) {
	s, _ := sc.scope()
	key := KeyOf[T](name)
	s.guardWrite(key)

	if sl, ok := s.data[key]; ok {
		release := sl.borrow.write(key.String())
		*cast[T](key, sl.value) = value
		release()
	} else {
		v := value
		s.data[key] = &slot{value: &v}
	}
	s.enqueueObservers(key)
}

func cast[T any](key TypedKey, v any) *T {
	p, ok := v.(*T)
	if !ok {
		panic(&TypeMismatchError{Key: key, Got: reflect.TypeOf(v)})
	}
	return p
}

// guardWrite panics if a render is in progress.
func (s *AppState) guardWrite(key TypedKey) {
	if s.rendering > 0 {
		panic(&ReentrancyError{Resource: key.String(), Reason: "state written during render"})
	}
}

// =============================================================================
// Bindings, observers and the render queue
// =============================================================================

// InsertBinding stores a binding for component mounted at node under a fresh
// view key. The component must be a pointer implementing Renderer.
func (s *AppState) InsertBinding(component Renderer, node host.Element) *Binding {
	b := s.newBinding(component, node)
	s.guardWrite(b.key)
	s.storeBinding(b)
	return b
}

func (s *AppState) newBinding(component Renderer, node host.Element) *Binding {
	return &Binding{
		key:      TypedKey{Type: reflect.TypeOf(component), Name: s.newKey()},
		renderer: component,
		node:     node,
	}
}

func (s *AppState) storeBinding(b *Binding) {
	if _, ok := s.bindings[b.key]; !ok {
		s.order = append(s.order, b.key)
	}
	s.bindings[b.key] = b
	s.metrics.recordBinding()
	s.logger.Debug("binding inserted", "view", b.key.String())
}

// Binding returns the binding for a view key.
func (s *AppState) Binding(view TypedKey) (*Binding, bool) {
	b, ok := s.bindings[view]
	return b, ok
}

// EnqueueRender schedules view for re-render at the next drain. Enqueueing
// the same view twice renders it once.
func (s *AppState) EnqueueRender(view TypedKey) {
	s.guardWrite(view)
	s.queue.push(view)
	if b, ok := s.bindings[view]; ok && b.state == Mounted {
		b.state = Dirty
	}
}

// AddObserver records that view depends on data. It is idempotent.
func (s *AppState) AddObserver(data, view TypedKey) {
	if s.observers.add(data, view) {
		s.logger.Debug("observer added", "data", data.String(), "view", view.String())
	}
}

// Observers returns the views observing data in registration order.
func (s *AppState) Observers(data TypedKey) []TypedKey {
	return s.observers.observers(data)
}

// Pending reports whether view is waiting in the render queue.
func (s *AppState) Pending(view TypedKey) bool {
	return s.queue.contains(view)
}

// QueueLen returns the number of queued entries, duplicates included.
func (s *AppState) QueueLen() int {
	return s.queue.len()
}

func (s *AppState) enqueueObservers(data TypedKey) {
	for _, view := range s.observers.observers(data) {
		s.EnqueueRender(view)
	}
}
