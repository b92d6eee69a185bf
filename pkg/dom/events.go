package dom

import "golang.org/x/net/html"

// nonBubbling lists events delivered only to their target.
var nonBubbling = map[string]bool{
	"focus":      true,
	"blur":       true,
	"mouseenter": true,
	"mouseleave": true,
}

// Dispatch delivers event to target and then to each ancestor, unless the
// event does not bubble. The propagation path is fixed before the first
// listener runs; listeners removed during dispatch, including those on
// elements a re-render discarded, are skipped.
func (d *Document) Dispatch(target *Node, event string) {
	if target == nil || !target.Live() {
		return
	}

	path := []*Node{target}
	if !nonBubbling[event] {
		for p := target.n.Parent; p != nil; p = p.Parent {
			if p.Type != html.ElementNode {
				continue
			}
			if n, ok := d.nodes[p]; ok && len(n.listeners[event]) > 0 {
				path = append(path, n)
			}
		}
	}

	d.logger.Debug("dom dispatch", "event", event, "target", target.id, "path", len(path))

	for _, n := range path {
		// Snapshot so listeners added during dispatch wait for the next event.
		ls := append([]*listener(nil), n.listeners[event]...)
		for _, l := range ls {
			if l.removed {
				continue
			}
			l.fn(target)
		}
	}
}
