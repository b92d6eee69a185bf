package quasar

// borrow tracks single-writer/multi-reader access to one resource.
type borrow struct {
	shared    int
	exclusive bool
}

// read takes a shared borrow. It panics if the resource is held exclusively.
func (b *borrow) read(resource string) (release func()) {
	if b.exclusive {
		panic(&ReentrancyError{Resource: resource, Reason: "read while mutably borrowed"})
	}
	b.shared++
	return func() { b.shared-- }
}

// write takes an exclusive borrow. It panics if any borrow is outstanding.
func (b *borrow) write(resource string) (release func()) {
	switch {
	case b.exclusive:
		panic(&ReentrancyError{Resource: resource, Reason: "already mutably borrowed"})
	case b.shared > 0:
		panic(&ReentrancyError{Resource: resource, Reason: "mutated while borrowed"})
	}
	b.exclusive = true
	return func() { b.exclusive = false }
}
