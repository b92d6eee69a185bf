package quasar

import (
	"errors"

	"github.com/quasar-dev/quasar/pkg/host"
)

// errNoDocument is returned by AppContext queries on a bare AppState.
var errNoDocument = errors.New("quasar: state has no document")

// AppContext is passed to renders and handlers. Inside a view's render or
// handler it carries that view's key, and every read through it registers
// the view as an observer.
type AppContext struct {
	state *AppState
	view  *TypedKey
}

func (c *AppContext) scope() (*AppState, *TypedKey) {
	return c.state, c.view
}

// State returns the underlying AppState.
func (c *AppContext) State() *AppState {
	return c.state
}

// View returns the current view key, if the context belongs to a view.
func (c *AppContext) View() (TypedKey, bool) {
	if c.view == nil {
		return TypedKey{}, false
	}
	return *c.view, true
}

// Query returns the first document element matching selector.
func (c *AppContext) Query(selector string) (*Node, bool, error) {
	if c.state.doc == nil {
		return nil, false, errNoDocument
	}
	el, ok, err := host.Query(c.state.doc, selector)
	if err != nil || !ok {
		return nil, ok, err
	}
	return c.state.node(el), true, nil
}

// QueryAll returns every document element matching selector.
func (c *AppContext) QueryAll(selector string) ([]*Node, error) {
	if c.state.doc == nil {
		return nil, errNoDocument
	}
	return c.state.nodes(c.state.doc, selector)
}
