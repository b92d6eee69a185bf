// Package component provides ready-made quasar components.
//
// Template renders typed data through a compiled html/template. Func adapts
// a plain function.
//
//	greeting := component.MustTemplate("hello", `<p>Hello, {{.Data.Name}}!</p>`, Greeting{Name: "world"})
//	view := quasar.MustBind(app, "#hello", greeting)
package component

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/quasar-dev/quasar/pkg/quasar"
)

// Context is the value templates execute against.
type Context[D any] struct {
	// Data is the component's data.
	Data D

	// Props are read from the mounted element for each render.
	Props quasar.Properties
}

// Template is a component rendering Data with a compiled template.
// Templates are compiled once, at construction.
type Template[D any] struct {
	Data D

	props []string
	tmpl  *template.Template
}

// funcs are available to every template.
var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"reverse": func(s string) string {
		r := []rune(s)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return string(r)
	},
}

// NewTemplate compiles text and returns a component over data. props names
// the element properties passed to the template as .Props.
func NewTemplate[D any](name, text string, data D, props ...string) (Template[D], error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return Template[D]{}, fmt.Errorf("component: compile %s: %w", name, err)
	}
	return Template[D]{Data: data, props: props, tmpl: tmpl}, nil
}

// MustTemplate is like NewTemplate but panics if the template does not
// compile.
func MustTemplate[D any](name, text string, data D, props ...string) Template[D] {
	t, err := NewTemplate(name, text, data, props...)
	if err != nil {
		panic(err)
	}
	return t
}

// Props returns the property names read for each render.
func (t *Template[D]) Props() []string {
	return t.props
}

// Render implements quasar.Renderer.
func (t *Template[D]) Render(node *quasar.Node, _ *quasar.AppContext) (string, error) {
	var buf bytes.Buffer
	err := t.tmpl.Execute(&buf, Context[D]{
		Data:  t.Data,
		Props: node.Properties(t.props...),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Func adapts a function to quasar.Renderer.
type Func func(node *quasar.Node, app *quasar.AppContext) (string, error)

// Render implements quasar.Renderer.
func (f Func) Render(node *quasar.Node, app *quasar.AppContext) (string, error) {
	return f(node, app)
}
