package quasar

// Renderer produces the inner markup of a mounted component. Render must be
// deterministic for a given component value and node properties, and must
// not write state.
//
// node is the element the component is mounted on; use node.Properties to
// read the props a template needs. State read through app makes the view an
// observer of that state.
type Renderer interface {
	Render(node *Node, app *AppContext) (string, error)
}

// Properties are string values read from a host element and passed to
// templates.
type Properties map[string]string

// Get returns the value for key, or "".
func (p Properties) Get(key string) string {
	return p[key]
}
