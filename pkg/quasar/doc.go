// Package quasar is a reactive data-binding runtime.
//
// Components render typed data into markup mounted at a location in a host
// document. Handlers registered on mounted views mutate state; every mutation
// schedules the views that read that state, and the render queue is drained
// synchronously once the handler returns.
//
// # State
//
// Application state lives in an AppState and is addressed by TypedKey, the
// pair of a Go type and a name. The same name may be reused for unrelated
// types without collision:
//
//	quasar.SetData(app, "template", Template("bart"))
//	tmpl, ok := quasar.Data[Template](ctx, "template")
//
// Reads made through an AppContext that belongs to a view register that view
// as an observer of the key. Dependencies are discovered while rendering and
// handling events; nothing is declared ahead of time.
//
// # Binding
//
// Bind mounts a component on the first element matching a selector:
//
//	view := quasar.MustBind(app, "#counter", Counter{})
//	view.On(quasar.Click, func(evt *quasar.Event[*quasar.View[Counter]]) {
//	    evt.Binding.DataMut(func(c *Counter) { c.Count++ })
//	})
//
// OnEach attaches a handler to every descendant matching a selector. After
// each re-render the match set is diffed by element identity: new elements
// get exactly one listener, elements that left the set lose theirs.
//
// # Reentrancy
//
// All access happens on one goroutine. Exclusive state access that overlaps
// another borrow of the same slot, any state write during a render, and a
// drain started from inside a drain panic with *ReentrancyError.
package quasar
