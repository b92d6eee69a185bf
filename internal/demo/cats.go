package demo

import (
	"fmt"

	"github.com/quasar-dev/quasar/pkg/component"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

// CatList is the cat list demo's data.
type CatList struct {
	Cats []string
}

const (
	catListMarkup = `<ul>
{{- range .Data.Cats}}
<cat-item catname="{{.}}"></cat-item>
{{- end}}
</ul>`

	catItemMarkup = `<li>{{.Props.catname}}</li>`

	catSelectionMarkup = `<p>{{if .Data}}Selected: {{.Data}}{{else}}Pick a cat{{end}}</p>`
)

// selectedCatKey names the state slot holding the last clicked cat.
const selectedCatKey = "selected-cat"

func init() {
	register(Demo{
		Name:  "cats",
		Title: "Cat List",
		Body:  `<div class="cat-list"></div><div id="cat-selection"></div>`,
		Setup: setupCats,
	})
}

func setupCats(app *quasar.App) error {
	cats := CatList{Cats: []string{"Bella", "Tiger", "Chloe", "Shadow", "Luna", "Oreo"}}
	list, err := quasar.Bind(app, ".cat-list", component.MustTemplate("cat-list", catListMarkup, cats))
	if err != nil {
		return err
	}

	// Each <cat-item> gets its own component, rendered from its catname
	// attribute.
	item := component.MustTemplate("cat-item", catItemMarkup, struct{}{}, "catname")
	for i := range cats.Cats {
		view, err := quasar.Bind(list, fmt.Sprintf("cat-item:nth-of-type(%d)", i+1), item)
		if err != nil {
			return err
		}
		view.On(quasar.Click, func(evt *quasar.Event[*quasar.View[component.Template[struct{}]]]) {
			name := evt.Binding.Node().Get("catname")
			quasar.SetData(evt.App, selectedCatKey, name)
		})
	}

	_, err = quasar.Bind(app, "#cat-selection", component.Func(renderCatSelection))
	return err
}

var catSelection = component.MustTemplate("cat-selection", catSelectionMarkup, "")

func renderCatSelection(node *quasar.Node, ctx *quasar.AppContext) (string, error) {
	t := catSelection
	t.Data, _ = quasar.Data[string](ctx, selectedCatKey)
	return t.Render(node, ctx)
}
