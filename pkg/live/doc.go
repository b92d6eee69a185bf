// Package live mirrors a server-side quasar document into a browser.
//
// Every page load creates a Session: a fresh dom.Document parsed from the
// app's page, with the app mounted into it. The page is served with every
// element tagged by a data-qid attribute and a small client script. The
// script opens a websocket, forwards native events as
//
//	{"qid": "q7", "event": "click", "value": "...", "checked": true}
//
// and morphs the elements named in each reply into place:
//
//	{"type": "update", "updates": [{"qid": "q3", "html": "..."}]}
//
// Events for a session are handled one at a time on the session's event
// loop, which is the only goroutine that touches its document and state.
//
// Example:
//
//	todo, _ := demo.Lookup("todo")
//	srv := live.NewServer(todo,
//	    live.WithLogger(logger),
//	    live.WithRegistry(prometheus.NewRegistry()),
//	)
//	http.ListenAndServe(":7070", srv.Handler())
package live
