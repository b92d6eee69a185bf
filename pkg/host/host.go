// Package host defines the contract between the quasar runtime and the
// document it renders into.
//
// The runtime never touches markup directly. It queries elements, replaces
// their children and listens for native events through these interfaces.
// Package dom provides an in-memory implementation used by tests, the CLI and
// the live bridge.
//
// Implementations must return comparable values (typically pointers) and must
// return the same value for the same underlying node on every query. The
// runtime diffs handler attachments by element identity.
package host

import "context"

// Listener receives the element an event was dispatched to.
type Listener func(target Element)

// Queryer finds elements by CSS selector.
type Queryer interface {
	// QueryAll returns every element matching selector in document order.
	// An invalid selector returns an error.
	QueryAll(selector string) ([]Element, error)
}

// Document is the root of a host tree.
type Document interface {
	Queryer
}

// Runner is implemented by documents that own an event loop. It delivers
// events until ctx is done.
type Runner interface {
	Run(ctx context.Context) error
}

// Element is a live node in a host document.
type Element interface {
	Queryer

	// SetInnerMarkup replaces the element's children with the parsed markup.
	// The element itself keeps its identity.
	SetInnerMarkup(markup string) error

	// Listen registers fn for the named event on this element. Events
	// dispatched to descendants reach it as well. The returned function
	// removes the registration and is safe to call more than once.
	Listen(event string, fn Listener) (cancel func())

	// Property reads a live property such as "value" or "checked".
	// Unset properties fall back to the attribute of the same name.
	Property(name string) string

	// SetProperty writes a live property.
	SetProperty(name, value string)

	// Attribute reads a markup attribute.
	Attribute(name string) (string, bool)

	// Contains reports whether other is a descendant of this element in
	// the current tree. An element does not contain itself.
	Contains(other Element) bool
}

// Query returns the first element matching selector.
func Query(q Queryer, selector string) (Element, bool, error) {
	els, err := q.QueryAll(selector)
	if err != nil {
		return nil, false, err
	}
	if len(els) == 0 {
		return nil, false, nil
	}
	return els[0], true, nil
}
