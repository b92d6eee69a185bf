package demo

import (
	"strings"

	"github.com/quasar-dev/quasar/pkg/component"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

// TodoItem is one entry of the todo list.
type TodoItem struct {
	Label    string
	Complete bool
}

// TodoList is the todo demo's data.
type TodoList struct {
	Items []TodoItem
}

const todoMarkup = `<h3>To Do List</h3>
<ul class="todo-list">
{{- range .Data.Items}}
<li class="todo-item{{if .Complete}} complete{{end}}"><input type="checkbox"{{if .Complete}} checked{{end}}> {{.Label}}</li>
{{- end}}
</ul>
<input id="message" type="text">
<button id="add">Add</button>`

type todoView = quasar.View[component.Template[TodoList]]

func init() {
	register(Demo{
		Name:  "todo",
		Title: "To Do",
		Body:  `<div id="todo"></div>`,
		Setup: setupTodo,
	})
}

func setupTodo(app *quasar.App) error {
	view, err := quasar.Bind(app, "#todo", component.MustTemplate("todo", todoMarkup, TodoList{}))
	if err != nil {
		return err
	}

	err = view.OnEach(quasar.Click, "#add", func(evt *quasar.Event[*todoView]) {
		msg, ok, _ := evt.Binding.Query("#message")
		if !ok {
			return
		}
		label := strings.TrimSpace(msg.Value())
		if label == "" {
			return
		}
		msg.Set("value", "")
		evt.Binding.DataMut(func(t *component.Template[TodoList]) {
			t.Data.Items = append(t.Data.Items, TodoItem{Label: label})
		})
	})
	if err != nil {
		return err
	}

	return view.OnEach(quasar.Change, ".todo-item input", func(evt *quasar.Event[*todoView]) {
		checked := evt.Current.Checked()
		evt.Binding.DataMut(func(t *component.Template[TodoList]) {
			if evt.Index >= 0 && evt.Index < len(t.Data.Items) {
				t.Data.Items[evt.Index].Complete = checked
			}
		})
	})
}
