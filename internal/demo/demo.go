// Package demo contains the example apps served by `quasar serve` and
// rendered by `quasar render`.
package demo

import (
	"fmt"
	"html"
	"sort"

	"github.com/quasar-dev/quasar/pkg/dom"
	"github.com/quasar-dev/quasar/pkg/host"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

// Demo is an example app: the markup of its host page and the setup that
// binds components into it.
type Demo struct {
	Name  string
	Title string

	// Body is the markup placed inside <body>.
	Body string

	Setup func(app *quasar.App) error
}

var demos = map[string]Demo{}

func register(d Demo) {
	demos[d.Name] = d
}

// Lookup returns the demo registered under name.
func Lookup(name string) (Demo, bool) {
	d, ok := demos[name]
	return d, ok
}

// Names returns every demo name in sorted order.
func Names() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Page returns the full host document.
func (d Demo) Page() string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
%s
</body>
</html>
`, html.EscapeString(d.Title), d.Body)
}

// Mount creates an App over doc and runs the demo's setup.
func (d Demo) Mount(doc host.Document, opts ...quasar.Option) (*quasar.App, error) {
	app := quasar.New(doc, opts...)
	if err := d.Setup(app); err != nil {
		return nil, fmt.Errorf("demo %s: %w", d.Name, err)
	}
	return app, nil
}

// Snapshot mounts the demo into a fresh document and returns the
// resulting markup.
func (d Demo) Snapshot(opts ...quasar.Option) (string, error) {
	doc, err := dom.Parse(d.Page())
	if err != nil {
		return "", err
	}
	if _, err := d.Mount(doc, opts...); err != nil {
		return "", err
	}
	return doc.Markup(), nil
}
