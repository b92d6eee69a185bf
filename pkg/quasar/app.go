package quasar

import (
	"context"
	"fmt"

	"github.com/quasar-dev/quasar/pkg/host"
)

// App is the top-level handle over a host document.
type App struct {
	state *AppState
	doc   host.Document
}

// New creates an App rendering into doc.
func New(doc host.Document, opts ...Option) *App {
	s := NewState(opts...)
	s.doc = doc
	return &App{state: s, doc: doc}
}

func (a *App) scope() (*AppState, *TypedKey) {
	return a.state, nil
}

func (a *App) queryRoot() host.Queryer {
	return a.doc
}

// State returns the application state.
func (a *App) State() *AppState {
	return a.state
}

// Document returns the host document.
func (a *App) Document() host.Document {
	return a.doc
}

// Query returns the first element matching selector.
func (a *App) Query(selector string) (*Node, bool, error) {
	el, ok, err := host.Query(a.doc, selector)
	if err != nil || !ok {
		return nil, ok, err
	}
	return a.state.node(el), true, nil
}

// MustQuery is like Query but panics if nothing matches.
func (a *App) MustQuery(selector string) *Node {
	n, ok, err := a.Query(selector)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic(fmt.Errorf("quasar: query %q: %w", selector, ErrNoMatch))
	}
	return n
}

// QueryAll returns every element matching selector.
func (a *App) QueryAll(selector string) ([]*Node, error) {
	return a.state.nodes(a.doc, selector)
}

// Run hands control to the host's event loop until ctx is done. Documents
// without an event loop simply block.
func (a *App) Run(ctx context.Context) error {
	a.state.logger.Info("app running", "bindings", len(a.state.bindings))
	if r, ok := a.doc.(host.Runner); ok {
		return r.Run(ctx)
	}
	<-ctx.Done()
	return nil
}
