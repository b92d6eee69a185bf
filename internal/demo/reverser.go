package demo

import (
	"github.com/quasar-dev/quasar/pkg/component"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

// Reverser is the reverser demo's data.
type Reverser struct {
	Message string
}

const reverserMarkup = `<p>{{.Props.greeting}}, {{.Data.Message}}</p>
<button>Reverse Message</button>`

func init() {
	register(Demo{
		Name:  "reverser",
		Title: "Reverser",
		Body:  `<div id="reverser" greeting="Reversed"></div>`,
		Setup: setupReverser,
	})
}

func setupReverser(app *quasar.App) error {
	view, err := quasar.Bind(app, "#reverser",
		component.MustTemplate("reverser", reverserMarkup, Reverser{Message: "Hello World"}, "greeting"))
	if err != nil {
		return err
	}
	return view.OnEach(quasar.Click, "button", func(evt *quasar.Event[*quasar.View[component.Template[Reverser]]]) {
		evt.Binding.DataMut(func(t *component.Template[Reverser]) {
			t.Data.Message = reverse(t.Data.Message)
		})
	})
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
