package dom

import "strconv"

// idGenerator hands out element ids ("q1", "q2", ...).
// Ids are never reused within a document.
type idGenerator struct {
	counter uint64
}

// next returns the next element id.
func (g *idGenerator) next() string {
	g.counter++
	return "q" + strconv.FormatUint(g.counter, 10)
}
