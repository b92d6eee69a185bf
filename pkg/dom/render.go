package dom

import (
	"bytes"

	"golang.org/x/net/html"
)

// IDAttr is the attribute carrying element ids in annotated markup.
const IDAttr = "data-qid"

// AnnotatedInnerMarkup renders the element's children with every element
// tagged by its id, so a remote mirror can address it.
func (n *Node) AnnotatedInnerMarkup() string {
	var buf bytes.Buffer
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, n.doc.annotate(c))
	}
	return buf.String()
}

// annotate returns a detached copy of h with id attributes added.
func (d *Document) annotate(h *html.Node) *html.Node {
	cp := &html.Node{
		Type:      h.Type,
		DataAtom:  h.DataAtom,
		Data:      h.Data,
		Namespace: h.Namespace,
	}
	if h.Type == html.ElementNode {
		cp.Attr = make([]html.Attribute, 0, len(h.Attr)+1)
		for _, a := range h.Attr {
			if a.Key != IDAttr {
				cp.Attr = append(cp.Attr, a)
			}
		}
		cp.Attr = append(cp.Attr, html.Attribute{Key: IDAttr, Val: d.wrap(h).id})
	} else {
		cp.Attr = append([]html.Attribute(nil), h.Attr...)
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(d.annotate(c))
	}
	return cp
}
