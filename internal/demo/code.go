package demo

import (
	_ "embed"

	"github.com/quasar-dev/quasar/pkg/component"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

// Flavor selects what the code panels show.
type Flavor string

const (
	FlavorGo     Flavor = "go"
	FlavorMarkup Flavor = "markup"
)

// templateKey names the state slot shared by every code panel.
const templateKey = "template"

var (
	//go:embed counter.go
	counterSource string

	//go:embed todo.go
	todoSource string
)

// codePanel is the data a code panel template renders.
type codePanel struct {
	Name   string
	Flavor Flavor
	Code   string
}

const codePanelMarkup = `<h4>{{.Data.Name}} <small>{{.Data.Flavor}}</small></h4>
<pre><code>{{.Data.Code}}</code></pre>`

var codePanelTemplate = component.MustTemplate("code-panel", codePanelMarkup, codePanel{})

// CodeExample shows the source of one demo in the selected flavor.
type CodeExample struct {
	Name   string
	Source string
	Markup string
}

// Render implements quasar.Renderer.
func (e *CodeExample) Render(node *quasar.Node, ctx *quasar.AppContext) (string, error) {
	flavor, ok := quasar.Data[Flavor](ctx, templateKey)
	if !ok {
		flavor = FlavorGo
	}

	t := codePanelTemplate
	t.Data = codePanel{Name: e.Name, Flavor: flavor, Code: e.Source}
	if flavor == FlavorMarkup {
		t.Data.Code = e.Markup
	}
	return t.Render(node, ctx)
}

func init() {
	register(Demo{
		Name:  "code",
		Title: "Code Examples",
		Body: `<form id="flavors">
<label><input type="radio" name="template" data-template="go" checked> Go</label>
<label><input type="radio" name="template" data-template="markup"> Markup</label>
</form>
<section><div id="counter"></div><div id="counter-code"></div></section>
<section><div id="todo"></div><div id="todo-code"></div></section>`,
		Setup: setupCode,
	})
}

func setupCode(app *quasar.App) error {
	quasar.SetData(app, templateKey, FlavorGo)

	if err := setupCounter(app); err != nil {
		return err
	}
	if err := setupTodo(app); err != nil {
		return err
	}

	panels := []struct {
		selector string
		example  CodeExample
	}{
		{"#counter-code", CodeExample{Name: "counter", Source: counterSource, Markup: counterMarkup}},
		{"#todo-code", CodeExample{Name: "todo", Source: todoSource, Markup: todoMarkup}},
	}
	for _, p := range panels {
		if _, err := quasar.Bind(app, p.selector, p.example); err != nil {
			return err
		}
	}

	radios, err := app.QueryAll(`input[name="template"]`)
	if err != nil {
		return err
	}
	for _, radio := range radios {
		radio.On(quasar.Change, func(evt *quasar.Event[*quasar.Node]) {
			name, _ := evt.Target.Attr("data-template")
			quasar.DataMut(evt.App, templateKey, func(f *Flavor) {
				*f = Flavor(name)
			})
		})
	}
	return nil
}
