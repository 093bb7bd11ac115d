package media

// releaser is implemented by both platform handles.
type releaser interface {
	Release() error
}

// A lazyHandle owns one platform handle. It starts out unopened, opens the
// handle on first use, and returns to unopened on release, so that the next use
// opens a fresh handle.
type lazyHandle[T releaser] struct {
	open   func() (T, error)
	handle T
	opened bool
}

func newLazyHandle[T releaser](open func() (T, error)) *lazyHandle[T] {
	return &lazyHandle[T]{open: open}
}

// get returns the handle, opening it if needed. A failed open leaves the handle
// unopened; the next call tries again.
func (h *lazyHandle[T]) get() (T, error) {
	if !h.opened {
		handle, err := h.open()
		if err != nil {
			var zero T
			return zero, err
		}
		h.handle = handle
		h.opened = true
	}
	return h.handle, nil
}

// release releases the handle if it is open. Releasing an unopened handle is a
// no-op. The handle is considered released even if Release fails.
func (h *lazyHandle[T]) release() error {
	if !h.opened {
		return nil
	}
	handle := h.handle
	var zero T
	h.handle = zero
	h.opened = false
	return handle.Release()
}

func (h *lazyHandle[T]) isOpen() bool {
	return h.opened
}
