// Package dom is an in-memory host document for the quasar runtime.
//
// A Document parses markup with golang.org/x/net/html and answers CSS
// selector queries with cascadia. SetInnerMarkup morphs the live tree through
// package vdom, so elements that survive a re-render keep their identity and
// their listeners. Listeners on removed elements are discarded with them.
//
// Events are delivered synchronously by Dispatch and bubble from the target
// to the document root the way browser events do.
//
//	doc, _ := dom.Parse(`<body><div id="counter"></div></body>`)
//	app := quasar.New(doc)
//	...
//	button, _ := doc.QueryNode("#counter button")
//	doc.Dispatch(button, "click")
//
// A Document is not safe for concurrent use. The live bridge funnels every
// access through a single session goroutine.
package dom
