package quasar

// slot holds a *T for the key's type T.
type slot struct {
	value  any
	borrow borrow
}

// dataStore maps keys to boxed application state.
type dataStore map[TypedKey]*slot

// keySet is an insertion-ordered set of view keys.
type keySet struct {
	order []TypedKey
	index map[TypedKey]int
}

func (s *keySet) add(k TypedKey) bool {
	if s.index == nil {
		s.index = make(map[TypedKey]int)
	}
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.order)
	s.order = append(s.order, k)
	return true
}

func (s *keySet) remove(k TypedKey) {
	i, ok := s.index[k]
	if !ok {
		return
	}
	s.order = append(s.order[:i], s.order[i+1:]...)
	delete(s.index, k)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
}

func (s *keySet) len() int {
	return len(s.order)
}

// observerStore records which views read which data keys.
type observerStore struct {
	byData map[TypedKey]*keySet
	// byView is the reverse index used to forget a view's reads before it
	// renders again.
	byView map[TypedKey]*keySet
}

func newObserverStore() *observerStore {
	return &observerStore{
		byData: make(map[TypedKey]*keySet),
		byView: make(map[TypedKey]*keySet),
	}
}

// add is idempotent. It reports whether the edge is new.
func (o *observerStore) add(data, view TypedKey) bool {
	set := o.byData[data]
	if set == nil {
		set = &keySet{}
		o.byData[data] = set
	}
	if !set.add(view) {
		return false
	}
	rev := o.byView[view]
	if rev == nil {
		rev = &keySet{}
		o.byView[view] = rev
	}
	rev.add(data)
	return true
}

// observers returns the views observing data in registration order.
func (o *observerStore) observers(data TypedKey) []TypedKey {
	set := o.byData[data]
	if set == nil {
		return nil
	}
	return append([]TypedKey(nil), set.order...)
}

// resetView drops every edge from view.
func (o *observerStore) resetView(view TypedKey) {
	rev := o.byView[view]
	if rev == nil {
		return
	}
	for _, data := range rev.order {
		if set := o.byData[data]; set != nil {
			set.remove(view)
			if set.len() == 0 {
				delete(o.byData, data)
			}
		}
	}
	delete(o.byView, view)
}

// renderQueue collects view keys. Duplicates are kept until take.
type renderQueue struct {
	keys []TypedKey
}

func (q *renderQueue) push(k TypedKey) {
	q.keys = append(q.keys, k)
}

func (q *renderQueue) len() int {
	return len(q.keys)
}

func (q *renderQueue) contains(k TypedKey) bool {
	for _, existing := range q.keys {
		if existing == k {
			return true
		}
	}
	return false
}

// take empties the queue and returns its keys deduplicated, in order of
// first enqueue.
func (q *renderQueue) take() []TypedKey {
	if len(q.keys) == 0 {
		return nil
	}
	seen := make(map[TypedKey]bool, len(q.keys))
	out := make([]TypedKey, 0, len(q.keys))
	for _, k := range q.keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	q.keys = nil
	return out
}
