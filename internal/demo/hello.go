package demo

import (
	"github.com/quasar-dev/quasar/pkg/component"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

// Hello is the hello demo's data.
type Hello struct {
	Name string
}

const helloMarkup = `<div><input id="name-field" value="{{.Data.Name}}"></div>
<div class="greeting">Hello, {{.Data.Name}}.</div>`

func init() {
	register(Demo{
		Name:  "hello",
		Title: "Hello",
		Body:  `<div id="hello"></div>`,
		Setup: setupHello,
	})
}

func setupHello(app *quasar.App) error {
	view, err := quasar.Bind(app, "#hello", component.MustTemplate("hello", helloMarkup, Hello{Name: "world"}))
	if err != nil {
		return err
	}
	return view.OnEach(quasar.Input, "#name-field", func(evt *quasar.Event[*quasar.View[component.Template[Hello]]]) {
		name := evt.Current.Value()
		evt.Binding.DataMut(func(t *component.Template[Hello]) {
			t.Data.Name = name
		})
	})
}
