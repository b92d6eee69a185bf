package quasar

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"testing"

	"github.com/quasar-dev/quasar/pkg/dom"
)

// expectPanic runs fn and returns the recovered panic value as a T.
func expectPanic[T any](t *testing.T, fn func()) T {
	t.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()
	if got == nil {
		t.Fatalf("expected panic of type %T, got none", *new(T))
	}
	v, ok := got.(T)
	if !ok {
		if err, isErr := got.(error); isErr {
			var target T
			if errors.As(err, &target) {
				return target
			}
		}
		t.Fatalf("panic value = %#v (%T), want %T", got, got, *new(T))
	}
	return v
}

func newTestApp(t *testing.T, markup string, opts ...Option) (*App, *dom.Document) {
	t.Helper()
	doc, err := dom.Parse(markup)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return New(doc, opts...), doc
}

func domNode(t *testing.T, doc *dom.Document, selector string) *dom.Node {
	t.Helper()
	n, ok := doc.QueryNode(selector)
	if !ok {
		t.Fatalf("no element matches %q", selector)
	}
	return n
}

// counter renders its count and a button.
type counter struct {
	Count int
}

func (c *counter) Render(_ *Node, _ *AppContext) (string, error) {
	return fmt.Sprintf("<p>Count: %d</p><button>+</button>", c.Count), nil
}

// list renders one <li> per item.
type list struct {
	Items []string
}

func (l *list) Render(_ *Node, _ *AppContext) (string, error) {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range l.Items {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(item))
	}
	b.WriteString("</ul>")
	return b.String(), nil
}

// example reads the shared "template" key and counts its renders.
type example struct {
	Name    string
	renders *int
}

func (e *example) Render(_ *Node, app *AppContext) (string, error) {
	if e.renders != nil {
		*e.renders++
	}
	tmpl, _ := Data[string](app, "template")
	return fmt.Sprintf("<pre>%s/%s</pre>", e.Name, tmpl), nil
}

// hooked renders whatever its hook returns.
type hooked struct {
	hook func(node *Node, app *AppContext) (string, error)
}

func (p *hooked) Render(node *Node, app *AppContext) (string, error) {
	return p.hook(node, app)
}

type todoItem struct {
	Label    string
	Complete bool
}

type todoList struct {
	Items []todoItem
}

func (l *todoList) Render(_ *Node, _ *AppContext) (string, error) {
	var b strings.Builder
	b.WriteString(`<ul class="todo-list">`)
	for _, item := range l.Items {
		class := "todo-item"
		checked := ""
		if item.Complete {
			class += " complete"
			checked = " checked"
		}
		fmt.Fprintf(&b, `<li class="%s"><input type="checkbox"%s>%s</li>`, class, checked, html.EscapeString(item.Label))
	}
	b.WriteString(`</ul><input id="message" type="text"><button id="add">Add</button>`)
	return b.String(), nil
}
