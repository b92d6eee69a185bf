package demo

import (
	"github.com/quasar-dev/quasar/pkg/component"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

// Counter is the counter demo's data.
type Counter struct {
	Count int
}

const counterMarkup = `<p>Count: {{.Data.Count}}</p>
<button>+1</button>`

type counterView = quasar.View[component.Template[Counter]]

func init() {
	register(Demo{
		Name:  "counter",
		Title: "Counter",
		Body:  `<div id="counter"></div>`,
		Setup: setupCounter,
	})
}

func setupCounter(app *quasar.App) error {
	view, err := quasar.Bind(app, "#counter", component.MustTemplate("counter", counterMarkup, Counter{}))
	if err != nil {
		return err
	}
	view.On(quasar.Click, func(evt *quasar.Event[*counterView]) {
		evt.Binding.DataMut(func(t *component.Template[Counter]) {
			t.Data.Count++
		})
	})
	return nil
}
