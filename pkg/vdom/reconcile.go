package vdom

import (
	"strings"

	"golang.org/x/net/html"
)

// Options configures Reconcile.
type Options struct {
	// OnRemove is called for every node detached from the live tree,
	// descendants included. It is not called for nodes that only move.
	OnRemove func(n *html.Node)
}

// Parse parses markup as the children of context.
func Parse(context *html.Node, markup string) ([]*html.Node, error) {
	return html.ParseFragment(strings.NewReader(markup), context)
}

// Reconcile morphs the children of parent into next and returns the patches
// that were applied. Nodes in next that are adopted into the live tree are
// detached from their original parents.
func Reconcile(parent *html.Node, next []*html.Node, opts Options) []Patch {
	r := &reconciler{opts: opts}
	r.children(parent, next)
	return r.patches
}

type reconciler struct {
	opts    Options
	patches []Patch
}

func (r *reconciler) emit(p Patch) {
	r.patches = append(r.patches, p)
}

// children reconciles the child list of a live parent.
func (r *reconciler) children(parent *html.Node, next []*html.Node) {
	prev := childList(parent)

	// Build key map for prev children. Duplicate keys fall back to
	// positional matching.
	keyed := make(map[string]*html.Node)
	var unkeyed []*html.Node
	for _, p := range prev {
		if k := Key(p); k != "" {
			if _, dup := keyed[k]; !dup {
				keyed[k] = p
				continue
			}
		}
		unkeyed = append(unkeyed, p)
	}

	used := make(map[*html.Node]bool, len(prev))
	replaced := make(map[*html.Node]bool)
	displaced := make(map[*html.Node]bool)
	result := make([]*html.Node, 0, len(next))
	cursor := 0

	for _, n := range next {
		var match *html.Node
		if k := Key(n); k != "" {
			if p, ok := keyed[k]; ok && !used[p] && compatible(p, n) {
				match = p
			}
		} else if cursor < len(unkeyed) {
			p := unkeyed[cursor]
			cursor++
			if compatible(p, n) {
				match = p
			} else {
				replaced[n] = true
				displaced[p] = true
			}
		}

		if match != nil {
			used[match] = true
			r.morph(match, n)
			result = append(result, match)
			continue
		}
		result = append(result, n)
	}

	// Remove unmatched prev nodes
	for _, p := range prev {
		if used[p] {
			continue
		}
		parent.RemoveChild(p)
		r.detached(p)
		if !displaced[p] {
			r.emit(Patch{Op: PatchRemoveNode, Target: p, Parent: parent})
		}
	}

	// Relink in result order. Everything before at is already in place.
	at := parent.FirstChild
	for i, n := range result {
		if n == at {
			at = at.NextSibling
			continue
		}
		if used[n] {
			parent.RemoveChild(n)
			parent.InsertBefore(n, at)
			r.emit(Patch{Op: PatchMoveNode, Target: n, Parent: parent, Index: i})
			continue
		}
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		parent.InsertBefore(n, at)
		op := PatchInsertNode
		if replaced[n] {
			op = PatchReplaceNode
		}
		r.emit(Patch{Op: op, Target: n, Parent: parent, Index: i})
	}
}

// morph updates a live node in place to match next.
func (r *reconciler) morph(live, next *html.Node) {
	switch live.Type {
	case html.TextNode, html.CommentNode:
		if live.Data != next.Data {
			live.Data = next.Data
			r.emit(Patch{Op: PatchSetText, Target: live, Value: next.Data})
		}
	case html.ElementNode:
		r.attrs(live, next)
		r.children(live, childList(next))
	}
}

// attrs compares and patches attributes.
func (r *reconciler) attrs(live, next *html.Node) {
	want := make(map[string]string, len(next.Attr))
	for _, a := range next.Attr {
		want[a.Key] = a.Val
	}

	kept := live.Attr[:0]
	seen := make(map[string]bool, len(live.Attr))
	for _, a := range live.Attr {
		val, ok := want[a.Key]
		if !ok {
			r.emit(Patch{Op: PatchRemoveAttr, Target: live, Key: a.Key})
			continue
		}
		if val != a.Val {
			a.Val = val
			r.emit(Patch{Op: PatchSetAttr, Target: live, Key: a.Key, Value: val})
		}
		seen[a.Key] = true
		kept = append(kept, a)
	}

	for _, a := range next.Attr {
		if seen[a.Key] {
			continue
		}
		seen[a.Key] = true
		kept = append(kept, html.Attribute{Key: a.Key, Val: a.Val})
		r.emit(Patch{Op: PatchSetAttr, Target: live, Key: a.Key, Value: a.Val})
	}
	live.Attr = kept
}

// detached reports n and its descendants as removed.
func (r *reconciler) detached(n *html.Node) {
	if r.opts.OnRemove == nil {
		return
	}
	r.opts.OnRemove(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.detached(c)
	}
}

// Key returns the reconciliation key of an element: data-key, then id.
func Key(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	var id string
	for _, a := range n.Attr {
		switch a.Key {
		case "data-key":
			return a.Val
		case "id":
			id = a.Val
		}
	}
	return id
}

// compatible reports whether live can be morphed into next.
func compatible(live, next *html.Node) bool {
	if live.Type != next.Type {
		return false
	}
	if live.Type != html.ElementNode {
		return true
	}
	return live.Data == next.Data && live.Namespace == next.Namespace
}

func childList(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}
