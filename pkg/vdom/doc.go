// Package vdom reconciles a live markup tree against freshly rendered markup.
//
// Components render to strings. Replacing an element's children wholesale
// would discard every descendant node, and with it any listener the runtime
// attached. Reconcile instead morphs the existing children into the new
// shape: nodes that still line up keep their identity and only their text
// and attributes change, while nodes that no longer exist are removed.
//
// # Matching
//
// Children are matched by key when either side carries one (data-key, then
// id) and by position otherwise. Matched nodes must share a node type and tag;
// a mismatch replaces the node.
//
// # Patches
//
// Every change made to the live tree is reported as a Patch. An empty result
// means the tree was already up to date and nothing was written.
package vdom
