package quasar

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/quasar-dev/quasar/pkg/dom"
)

func TestBindNoMatch(t *testing.T) {
	app, _ := newTestApp(t, `<div id="a"></div>`)

	_, err := Bind(app, "#missing", counter{})
	var setup *SetupError
	if !errors.As(err, &setup) {
		t.Fatalf("Bind() error = %v, want *SetupError", err)
	}
	if !errors.Is(err, ErrNoMatch) || setup.Code() != "Q001" {
		t.Errorf("got %v (code %s)", err, setup.Code())
	}

	expectPanic[*SetupError](t, func() {
		MustBind(app, "#missing", counter{})
	})
}

func TestBindInvalidSelector(t *testing.T) {
	app, _ := newTestApp(t, `<div id="a"></div>`)
	_, err := Bind(app, "[", counter{})
	var setup *SetupError
	if !errors.As(err, &setup) || setup.Code() != "Q002" {
		t.Errorf("Bind() error = %v, want Q002 setup error", err)
	}
}

func TestBindInitialRenderFailure(t *testing.T) {
	app, _ := newTestApp(t, `<div id="a"></div>`)
	_, err := Bind(app, "#a", hooked{hook: func(*Node, *AppContext) (string, error) {
		return "", errors.New("template exploded")
	}})
	var setup *SetupError
	if !errors.As(err, &setup) || setup.Code() != "Q003" {
		t.Errorf("Bind() error = %v, want Q003 setup error", err)
	}
	if len(app.State().bindings) != 0 {
		t.Error("failed bind should not store a binding")
	}
}

// Counter mounted at 0, clicked five times.
func TestCounterScenario(t *testing.T) {
	app, doc := newTestApp(t, `<div id="counter"></div>`)
	view := MustBind(app, "#counter", counter{})

	if !strings.Contains(doc.Markup(), "Count: 0") {
		t.Fatalf("initial markup = %s", doc.Markup())
	}

	view.On(Click, func(evt *Event[*View[counter]]) {
		evt.Binding.DataMut(func(c *counter) { c.Count++ })
	})

	button := domNode(t, doc, "#counter button")
	for i := 0; i < 5; i++ {
		button.Dispatch("click")
	}

	if !strings.Contains(doc.Markup(), "Count: 5") {
		t.Errorf("markup = %s, want Count: 5", doc.Markup())
	}
	view.Data(func(c *counter) {
		if c.Count != 5 {
			t.Errorf("Count = %d, want 5", c.Count)
		}
	})
	if view.Binding().State() != Mounted {
		t.Errorf("State() = %v, want mounted", view.Binding().State())
	}
}

func TestEventCarriesTargetAndContext(t *testing.T) {
	app, doc := newTestApp(t, `<div id="counter"></div>`)
	view := MustBind(app, "#counter", counter{})

	var got *Event[*View[counter]]
	view.On(Click, func(evt *Event[*View[counter]]) { got = evt })
	domNode(t, doc, "#counter button").Dispatch("click")

	if got == nil {
		t.Fatal("handler did not run")
	}
	if got.Type != Click || got.Binding != view {
		t.Errorf("event = %+v", got)
	}
	if tag := got.Target.Element().(*dom.Node).Tag(); tag != "button" {
		t.Errorf("Target tag = %q, want button", tag)
	}
	if !got.Current.Equal(view.Node()) {
		t.Error("Current should be the view root")
	}
	if key, ok := got.App.View(); !ok || key != view.Key() {
		t.Error("handler context should belong to the view")
	}
}

// Two views read "template"; a third never does.
func TestSharedTemplateScenario(t *testing.T) {
	app, doc := newTestApp(t, `<div id="one"></div><div id="two"></div><div id="other"></div>`)
	SetData(app, "template", "bart")

	var oneRenders, twoRenders int
	one := MustBind(app, "#one", example{Name: "one", renders: &oneRenders})
	MustBind(app, "#two", example{Name: "two", renders: &twoRenders})
	other := MustBind(app, "#other", counter{})
	app.State().ProcessRenderQueue()

	otherHandlers := len(other.Binding().Handlers())
	otherMarkup := domNode(t, doc, "#other").InnerMarkup()

	one.On(Click, func(evt *Event[*View[example]]) {
		DataMut[string](evt.App, "template", func(s *string) { *s = "mustache" })
	})

	domNode(t, doc, "#one").Dispatch("click")

	if got := domNode(t, doc, "#one").InnerMarkup(); got != "<pre>one/mustache</pre>" {
		t.Errorf("#one = %q", got)
	}
	if got := domNode(t, doc, "#two").InnerMarkup(); got != "<pre>two/mustache</pre>" {
		t.Errorf("#two = %q", got)
	}
	if oneRenders != 2 || twoRenders != 2 {
		t.Errorf("renders = %d, %d, want 2, 2", oneRenders, twoRenders)
	}
	if got := domNode(t, doc, "#other").InnerMarkup(); got != otherMarkup {
		t.Errorf("#other changed: %q", got)
	}
	if got := len(other.Binding().Handlers()); got != otherHandlers {
		t.Errorf("#other handlers = %d, want %d", got, otherHandlers)
	}
	if app.State().Pending(other.Key()) {
		t.Error("#other should never be queued")
	}
}

// A new todo item picks up the per-item checkbox handler.
func TestTodoScenario(t *testing.T) {
	app, doc := newTestApp(t, `<div id="todo"></div>`)
	view := MustBind(app, "#todo", todoList{Items: []todoItem{{Label: "milk"}}})

	err := view.OnEach(Change, ".todo-item input", func(evt *Event[*View[todoList]]) {
		checked := evt.Target.Checked()
		evt.Binding.DataMut(func(l *todoList) { l.Items[evt.Index].Complete = checked })
	})
	if err != nil {
		t.Fatalf("OnEach() error = %v", err)
	}

	add, _, _ := view.Query("#add")
	add.On(Click, func(evt *Event[*Node]) {
		msg, _, _ := view.Query("#message")
		view.DataMut(func(l *todoList) {
			l.Items = append(l.Items, todoItem{Label: msg.Value()})
		})
	})

	domNode(t, doc, "#message").SetProperty("value", "eggs")
	domNode(t, doc, "#add").Dispatch("click")

	boxes, _ := doc.QueryNodes(".todo-item input")
	if len(boxes) != 2 {
		t.Fatalf("items = %d, want 2", len(boxes))
	}
	for i, box := range boxes {
		if n := box.ListenerCount("change"); n != 1 {
			t.Errorf("item %d listeners = %d, want 1", i, n)
		}
	}

	boxes[1].SetProperty("checked", "true")
	boxes[1].Dispatch("change")

	view.Data(func(l *todoList) {
		if l.Items[0].Complete {
			t.Error("first item should stay incomplete")
		}
		if !l.Items[1].Complete || l.Items[1].Label != "eggs" {
			t.Errorf("second item = %+v", l.Items[1])
		}
	})

	items, _ := doc.QueryNodes(".todo-item")
	if c, _ := items[1].Attribute("class"); c != "todo-item complete" {
		t.Errorf("second item class = %q", c)
	}
	if c, _ := items[0].Attribute("class"); c != "todo-item" {
		t.Errorf("first item class = %q", c)
	}
}

func TestOnEachAttachesOnlyNewElements(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	app, doc := newTestApp(t, `<div id="list"></div>`, WithMetrics(metrics))
	view := MustBind(app, "#list", list{})

	clicks := map[int]int{}
	if err := view.OnEach(Click, "li", func(evt *Event[*View[list]]) {
		clicks[evt.Index]++
	}); err != nil {
		t.Fatal(err)
	}
	attached := func() float64 { return testutil.ToFloat64(metrics.listenersAttached) }

	steps := []struct {
		items []string
		want  float64
	}{
		{[]string{"a", "b", "c"}, 3},
		{[]string{"a", "b", "c"}, 0},
		{[]string{"a", "b", "c", "d", "e"}, 2},
	}
	for _, step := range steps {
		before := attached()
		view.DataMut(func(l *list) { l.Items = step.items })
		app.State().ProcessRenderQueue()

		if got := attached() - before; got != step.want {
			t.Errorf("%d items: attached %v listeners, want %v", len(step.items), got, step.want)
		}
	}

	lis, _ := doc.QueryNodes("#list li")
	for i, li := range lis {
		if n := li.ListenerCount("click"); n != 1 {
			t.Errorf("li %d has %d listeners, want 1", i, n)
		}
	}

	lis[3].Dispatch("click")
	if clicks[3] != 1 || len(clicks) != 1 {
		t.Errorf("clicks = %v, want only index 3", clicks)
	}
}

func TestOnEachDetachesRemovedElements(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	app, _ := newTestApp(t, `<div id="list"></div>`, WithMetrics(metrics))
	view := MustBind(app, "#list", list{Items: []string{"a", "b", "c"}})
	if err := view.OnEach(Click, "li", func(*Event[*View[list]]) {}); err != nil {
		t.Fatal(err)
	}

	view.DataMut(func(l *list) { l.Items = l.Items[:1] })
	app.State().ProcessRenderQueue()

	if got := testutil.ToFloat64(metrics.listenersDetached); got != 2 {
		t.Errorf("detached = %v, want 2", got)
	}
	h := view.Binding().Handlers()[0]
	if len(h.Matched()) != 1 {
		t.Errorf("matched = %d, want 1", len(h.Matched()))
	}
}

func TestOnEachInvalidSelector(t *testing.T) {
	app, _ := newTestApp(t, `<div id="list"></div>`)
	view := MustBind(app, "#list", list{})

	err := view.OnEach(Click, "li[", func(*Event[*View[list]]) {})
	var setup *SetupError
	if !errors.As(err, &setup) {
		t.Errorf("OnEach() error = %v, want *SetupError", err)
	}
	if len(view.Binding().Handlers()) != 0 {
		t.Error("failed OnEach should not register a handler")
	}
}

func TestRootHandlerDurability(t *testing.T) {
	app, doc := newTestApp(t, `<div id="counter"></div>`)
	view := MustBind(app, "#counter", counter{})

	fired := 0
	view.On(Click, func(evt *Event[*View[counter]]) {
		fired++
		evt.Binding.DataMut(func(c *counter) { c.Count++ })
	})

	root := domNode(t, doc, "#counter")
	for i := 0; i < 10; i++ {
		root.Dispatch("click")
	}

	if fired != 10 {
		t.Errorf("fired = %d, want 10", fired)
	}
	if n := root.ListenerCount("click"); n != 1 {
		t.Errorf("root listeners = %d, want 1", n)
	}
	if !strings.Contains(root.InnerMarkup(), "Count: 10") {
		t.Errorf("markup = %s", root.InnerMarkup())
	}
}

func TestEmptyDrainWritesNothing(t *testing.T) {
	app, doc := newTestApp(t, `<div id="counter"></div>`)
	view := MustBind(app, "#counter", counter{})

	before := doc.Writes()
	app.State().ProcessRenderQueue()
	if doc.Writes() != before {
		t.Errorf("empty drain wrote %d patches", doc.Writes()-before)
	}

	// An unchanged re-render patches nothing either.
	app.State().EnqueueRender(view.Key())
	app.State().ProcessRenderQueue()
	if doc.Writes() != before {
		t.Errorf("unchanged render wrote %d patches", doc.Writes()-before)
	}
}

func TestDependencyCompleteness(t *testing.T) {
	app, _ := newTestApp(t, `<div id="one"></div>`)
	SetData(app, "template", "bart")
	view := MustBind(app, "#one", example{Name: "one"})

	DataMut[string](app, "template", func(*string) {})
	if !app.State().Pending(view.Key()) {
		t.Error("reader should be queued after a write to its key")
	}
	if view.Binding().State() != Dirty {
		t.Errorf("State() = %v, want dirty", view.Binding().State())
	}
	app.State().ProcessRenderQueue()
	if view.Binding().State() != Mounted {
		t.Errorf("State() = %v, want mounted", view.Binding().State())
	}
}

func TestObserversTrackLastRender(t *testing.T) {
	app, _ := newTestApp(t, `<div id="p"></div>`)
	SetData(app, "flag", true)
	SetData(app, "extra", 1)

	view := MustBind(app, "#p", hooked{hook: func(_ *Node, ctx *AppContext) (string, error) {
		if on, _ := Data[bool](ctx, "flag"); on {
			Data[int](ctx, "extra")
		}
		return "<p></p>", nil
	}})

	extra := KeyOf[int]("extra")
	if len(app.State().Observers(extra)) != 1 {
		t.Fatal("view should observe extra after first render")
	}

	SetData(app, "flag", false)
	app.State().ProcessRenderQueue()

	if got := app.State().Observers(extra); len(got) != 0 {
		t.Errorf("Observers(extra) = %v, want none", got)
	}
	SetData(app, "extra", 2)
	if app.State().Pending(view.Key()) {
		t.Error("view no longer reads extra and should not be queued")
	}
}

func TestRenderFailureKeepsMarkup(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	app, doc := newTestApp(t, `<div id="p"></div>`, WithMetrics(metrics))

	fail := false
	view := MustBind(app, "#p", hooked{hook: func(*Node, *AppContext) (string, error) {
		if fail {
			return "", errors.New("boom")
		}
		return "<p>ok</p>", nil
	}})

	fail = true
	app.State().EnqueueRender(view.Key())
	app.State().ProcessRenderQueue()

	if got := domNode(t, doc, "#p").InnerMarkup(); got != "<p>ok</p>" {
		t.Errorf("markup = %q, want previous markup", got)
	}
	if view.Binding().State() != Mounted {
		t.Errorf("State() = %v, want mounted", view.Binding().State())
	}
	if got := testutil.ToFloat64(metrics.renders.WithLabelValues("error")); got != 1 {
		t.Errorf("error renders = %v, want 1", got)
	}
}

func TestWriteDuringRenderPanics(t *testing.T) {
	app, _ := newTestApp(t, `<div id="p"></div>`)
	SetData(app, "n", 0)

	expectPanic[*ReentrancyError](t, func() {
		MustBind(app, "#p", hooked{hook: func(_ *Node, ctx *AppContext) (string, error) {
			DataMut[int](ctx, "n", func(n *int) { *n++ })
			return "", nil
		}})
	})
	if app.State().rendering != 0 {
		t.Error("rendering depth should unwind after the panic")
	}
}

func TestEnqueueDuringRenderPanics(t *testing.T) {
	app, _ := newTestApp(t, `<div id="p"></div>`)
	expectPanic[*ReentrancyError](t, func() {
		MustBind(app, "#p", hooked{hook: func(_ *Node, ctx *AppContext) (string, error) {
			ctx.State().EnqueueRender(KeyOf[int]("x"))
			return "", nil
		}})
	})
}

func TestDrainInsideDrainPanics(t *testing.T) {
	app, _ := newTestApp(t, `<div id="p"></div>`)
	nested := false
	view := MustBind(app, "#p", hooked{hook: func(_ *Node, ctx *AppContext) (string, error) {
		if nested {
			ctx.State().ProcessRenderQueue()
		}
		return "", nil
	}})

	nested = true
	app.State().EnqueueRender(view.Key())
	expectPanic[*ReentrancyError](t, func() {
		app.State().ProcessRenderQueue()
	})
	if app.State().draining {
		t.Error("draining flag should reset after the panic")
	}
}

func TestViewDataInsideDataMutPanics(t *testing.T) {
	app, _ := newTestApp(t, `<div id="counter"></div>`)
	view := MustBind(app, "#counter", counter{})

	expectPanic[*ReentrancyError](t, func() {
		view.DataMut(func(*counter) {
			view.Data(func(*counter) {})
		})
	})
}

func TestNodeOnUsesAppContext(t *testing.T) {
	app, doc := newTestApp(t, `<label><input name="template" type="radio" data-template="maud"></label>`)
	SetData(app, "template", "bart")

	radios, err := app.QueryAll(`input[name="template"]`)
	if err != nil || len(radios) != 1 {
		t.Fatalf("QueryAll() = %v, %v", radios, err)
	}
	radios[0].On(Change, func(evt *Event[*Node]) {
		if _, ok := evt.App.View(); ok {
			t.Error("node handlers have no view")
		}
		name, _ := evt.Target.Attr("data-template")
		DataMut[string](evt.App, "template", func(s *string) { *s = name })
	})

	domNode(t, doc, "input").Dispatch("change")
	if got, _ := Data[string](app, "template"); got != "maud" {
		t.Errorf("template = %q, want maud", got)
	}
}

func TestNodeProperties(t *testing.T) {
	app, _ := newTestApp(t, `<div id="cats" catname="Tom"><input type="checkbox" checked value="x"></div>`)

	cats := app.MustQuery("#cats")
	if got := cats.Properties("catname", "missing"); got.Get("catname") != "Tom" || got.Get("missing") != "" {
		t.Errorf("Properties() = %v", got)
	}

	box := cats.MustQuery("input")
	if !box.Checked() || box.Value() != "x" {
		t.Errorf("Checked() = %v, Value() = %q", box.Checked(), box.Value())
	}
	box.Set("checked", "false")
	if box.Checked() {
		t.Error("Checked() should follow the live property")
	}
}

func TestChildBindUnderView(t *testing.T) {
	app, doc := newTestApp(t, `<div id="outer"></div>`)
	outer := MustBind(app, "#outer", hooked{hook: func(*Node, *AppContext) (string, error) {
		return `<section id="inner"></section>`, nil
	}})
	inner := MustBind(outer, "#inner", counter{Count: 3})

	if inner.Key() == outer.Key() {
		t.Error("views need distinct keys")
	}
	if !strings.Contains(domNode(t, doc, "#inner").InnerMarkup(), "Count: 3") {
		t.Errorf("markup = %s", doc.Markup())
	}
}

func TestChildSurvivesParentRerender(t *testing.T) {
	app, doc := newTestApp(t, `<div id="outer"></div>`)
	renders := map[string]int{}
	outer := MustBind(app, "#outer", hooked{hook: func(*Node, *AppContext) (string, error) {
		renders["outer"]++
		return `<p>parent</p><div class="child"></div>`, nil
	}})
	child := MustBind(outer, ".child", hooked{hook: func(*Node, *AppContext) (string, error) {
		renders["child"]++
		return `<span>child content</span><em class="leaf"></em>`, nil
	}})
	leaf := MustBind(child, ".leaf", counter{Count: 9})

	outer.DataMut(func(*hooked) {})
	child.DataMut(func(*hooked) {})
	app.State().ProcessRenderQueue()

	markup := doc.Markup()
	for _, want := range []string{"parent", "child content", "Count: 9"} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q: %s", want, markup)
		}
	}
	if renders["outer"] != 2 || renders["child"] != 2 {
		t.Errorf("renders = %v, want outer and child twice each", renders)
	}
	for _, b := range []*Binding{outer.Binding(), child.Binding(), leaf.Binding()} {
		if b.State() != Mounted {
			t.Errorf("%s state = %v, want Mounted", b.Key(), b.State())
		}
	}
}
