package dom

import (
	"strings"
	"testing"

	"github.com/quasar-dev/quasar/pkg/host"
)

const page = `<!DOCTYPE html><html><body>
<div id="app"><p class="msg">hi</p><ul><li>a</li><li>b</li></ul></div>
<input id="name" value="world"><input id="agree" type="checkbox" checked>
</body></html>`

func TestQueryNodes(t *testing.T) {
	doc := MustParse(page)

	items, err := doc.QueryNodes("li")
	if err != nil {
		t.Fatalf("QueryNodes: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	again, _ := doc.QueryNodes("li")
	if items[0] != again[0] || items[1] != again[1] {
		t.Error("queries should return stable wrappers")
	}
}

func TestQueryInvalidSelector(t *testing.T) {
	doc := MustParse(page)
	if _, err := doc.QueryAll("li[[["); err == nil {
		t.Error("expected error for invalid selector")
	}
	if _, ok := doc.QueryNode("li[[["); ok {
		t.Error("QueryNode should report no match for invalid selector")
	}
}

func TestElementQueryExcludesSelf(t *testing.T) {
	doc := MustParse(`<body><div class="x"><div class="x"></div></div></body>`)
	outer, _ := doc.QueryNode("div.x")
	inner, err := outer.QueryNodes("div.x")
	if err != nil {
		t.Fatal(err)
	}
	if len(inner) != 1 || inner[0] == outer {
		t.Errorf("expected only the nested div, got %d", len(inner))
	}
}

func TestPropertyFallbacks(t *testing.T) {
	doc := MustParse(page)
	name, _ := doc.QueryNode("#name")
	agree, _ := doc.QueryNode("#agree")

	if got := name.Property("value"); got != "world" {
		t.Errorf("value = %q, want world", got)
	}
	name.SetProperty("value", "quasar")
	if got := name.Property("value"); got != "quasar" {
		t.Errorf("value = %q, want quasar", got)
	}
	if attr, _ := name.Attribute("value"); attr != "world" {
		t.Errorf("attribute should be untouched, got %q", attr)
	}

	if got := agree.Property("checked"); got != "true" {
		t.Errorf("checked = %q, want true", got)
	}
	if got := name.Property("checked"); got != "false" {
		t.Errorf("checked = %q, want false", got)
	}
}

func TestSetInnerMarkupPreservesIdentity(t *testing.T) {
	doc := MustParse(page)
	app, _ := doc.QueryNode("#app")
	msg, _ := doc.QueryNode(".msg")

	if err := app.SetInnerMarkup(`<p class="msg">bye</p><ul><li>a</li><li>b</li></ul>`); err != nil {
		t.Fatal(err)
	}

	again, _ := doc.QueryNode(".msg")
	if again != msg {
		t.Error("surviving element should keep its wrapper")
	}
	if msg.Text() != "bye" {
		t.Errorf("text = %q, want bye", msg.Text())
	}
	if doc.Writes() != 1 {
		t.Errorf("writes = %d, want 1", doc.Writes())
	}
}

func TestSetInnerMarkupNoChangeWritesNothing(t *testing.T) {
	doc := MustParse(page)
	app, _ := doc.QueryNode("#app")

	if err := app.SetInnerMarkup(app.InnerMarkup()); err != nil {
		t.Fatal(err)
	}
	if doc.Writes() != 0 {
		t.Errorf("writes = %d, want 0", doc.Writes())
	}
	if len(doc.TakeUpdates()) != 0 {
		t.Error("no updates expected")
	}
}

func TestRemovedNodesLoseListeners(t *testing.T) {
	doc := MustParse(page)
	app, _ := doc.QueryNode("#app")
	items, _ := doc.QueryNodes("li")
	second := items[1]

	fired := 0
	second.Listen("click", func(target host.Element) { fired++ })

	if err := app.SetInnerMarkup(`<p class="msg">hi</p><ul><li>a</li></ul>`); err != nil {
		t.Fatal(err)
	}
	if second.Live() {
		t.Error("removed item should not be live")
	}
	if _, ok := doc.ByID(second.ID()); ok {
		t.Error("removed item should be forgotten")
	}

	doc.Dispatch(second, "click")
	if fired != 0 {
		t.Errorf("listener on removed node fired %d times", fired)
	}
}

func TestQueryUnderRemovedNode(t *testing.T) {
	doc := MustParse(page)
	app, _ := doc.QueryNode("#app")
	list, _ := doc.QueryNode("ul")

	if err := app.SetInnerMarkup(`<p class="msg">bye</p>`); err != nil {
		t.Fatal(err)
	}
	if list.Live() {
		t.Fatal("removed list should not be live")
	}

	tracked := len(doc.nodes)
	items, err := list.QueryNodes("li")
	if err != nil || len(items) != 0 {
		t.Errorf("QueryNodes() = (%d, %v), want no matches", len(items), err)
	}
	if got := len(doc.nodes); got != tracked {
		t.Errorf("tracked nodes = %d, want %d", got, tracked)
	}
	if _, err := list.QueryNodes("li["); err == nil {
		t.Error("invalid selector should still be rejected")
	}
}

func TestContains(t *testing.T) {
	doc := MustParse(page)
	app, _ := doc.QueryNode("#app")
	item, _ := doc.QueryNode("li")
	name, _ := doc.QueryNode("#name")

	if !app.Contains(item) {
		t.Error("#app should contain its list item")
	}
	if app.Contains(app) || app.Contains(name) || item.Contains(app) {
		t.Error("Contains should only report strict descendants")
	}
}

func TestDispatchBubbles(t *testing.T) {
	doc := MustParse(page)
	app, _ := doc.QueryNode("#app")
	li, _ := doc.QueryNode("li")

	var got []string
	app.Listen("click", func(target host.Element) {
		got = append(got, "app:"+target.(*Node).Text())
	})
	li.Listen("click", func(target host.Element) {
		got = append(got, "li")
	})

	doc.Dispatch(li, "click")

	if strings.Join(got, ",") != "li,app:a" {
		t.Errorf("dispatch order = %v", got)
	}
}

func TestDispatchNonBubbling(t *testing.T) {
	doc := MustParse(page)
	app, _ := doc.QueryNode("#app")
	li, _ := doc.QueryNode("li")

	fired := 0
	app.Listen("focus", func(host.Element) { fired++ })
	doc.Dispatch(li, "focus")
	if fired != 0 {
		t.Error("focus should not bubble")
	}
}

func TestListenCancel(t *testing.T) {
	doc := MustParse(page)
	li, _ := doc.QueryNode("li")

	fired := 0
	cancel := li.Listen("click", func(host.Element) { fired++ })
	if li.ListenerCount("click") != 1 {
		t.Fatalf("ListenerCount = %d, want 1", li.ListenerCount("click"))
	}
	cancel()
	cancel()
	if li.ListenerCount("click") != 0 {
		t.Errorf("ListenerCount = %d, want 0", li.ListenerCount("click"))
	}
	li.Dispatch("click")
	if fired != 0 {
		t.Error("cancelled listener fired")
	}
}

func TestTakeUpdates(t *testing.T) {
	doc := MustParse(page)
	app, _ := doc.QueryNode("#app")

	_ = app.SetInnerMarkup(`<p>one</p>`)
	_ = app.SetInnerMarkup(`<p>two</p>`)

	updates := doc.TakeUpdates()
	if len(updates) != 1 || updates[0] != app {
		t.Fatalf("updates = %v, want [app]", updates)
	}
	if len(doc.TakeUpdates()) != 0 {
		t.Error("TakeUpdates should reset")
	}
}

func TestAnnotatedInnerMarkup(t *testing.T) {
	doc := MustParse(`<body><div id="root"><button>go</button></div></body>`)
	root, _ := doc.QueryNode("#root")
	button, _ := doc.QueryNode("button")

	out := root.AnnotatedInnerMarkup()
	want := `<button ` + IDAttr + `="` + button.ID() + `">go</button>`
	if out != want {
		t.Errorf("annotated = %q, want %q", out, want)
	}
	if strings.Contains(root.InnerMarkup(), IDAttr) {
		t.Error("annotation must not leak into the live tree")
	}
}
