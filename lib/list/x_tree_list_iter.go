package list

var _ TreeListIterator[int] = (*xTreeListIterator[int])(nil) // Type check assertion

// xTreeListIterator is the fail-fast cursor over an xTreeList. It caches the
// node a forward step would return and advances it over the threading links,
// falling back to a positional lookup whenever a structural change through
// the cursor invalidated the cache.
type xTreeListIterator[E comparable] struct {
	parent *xTreeList[E]
	// next is the cached node the next forward step returns, nil when the
	// cache was invalidated and must be re-fetched by index.
	next      *xTreeListNode[E]
	nextIndex int64
	// current is the node returned by the last Next or Prev, nil when no
	// such call happened or a structural change consumed it.
	current          *xTreeListNode[E]
	currentIndex     int64
	expectedModCount uint64
}

func (it *xTreeListIterator[E]) checkModCount() error {
	if it.parent.modCount != it.expectedModCount {
		return ErrXTreeListConcurrentModification
	}
	return nil
}

func (it *xTreeListIterator[E]) HasNext() bool {
	return it.nextIndex < it.parent.size
}

func (it *xTreeListIterator[E]) Next() (E, error) {
	var zero E
	if err := it.checkModCount(); err != nil {
		return zero, err
	}
	if !it.HasNext() {
		return zero, ErrXTreeListIterExhausted
	}
	if it.next == nil {
		it.next = it.parent.root.get(it.nextIndex)
	}
	v := it.next.value
	it.current = it.next
	it.currentIndex = it.nextIndex
	it.nextIndex++
	it.next = it.next.next()
	return v, nil
}

func (it *xTreeListIterator[E]) HasPrev() bool {
	return it.nextIndex > 0
}

func (it *xTreeListIterator[E]) Prev() (E, error) {
	var zero E
	if err := it.checkModCount(); err != nil {
		return zero, err
	}
	if !it.HasPrev() {
		return zero, ErrXTreeListIterExhausted
	}
	if it.next == nil {
		it.next = it.parent.root.get(it.nextIndex - 1)
	} else {
		it.next = it.next.previous()
	}
	v := it.next.value
	it.current = it.next
	it.nextIndex--
	it.currentIndex = it.nextIndex
	return v, nil
}

func (it *xTreeListIterator[E]) NextIndex() int64 {
	return it.nextIndex
}

func (it *xTreeListIterator[E]) PrevIndex() int64 {
	return it.nextIndex - 1
}

func (it *xTreeListIterator[E]) Remove() error {
	if err := it.checkModCount(); err != nil {
		return err
	}
	if it.currentIndex == -1 {
		return ErrXTreeListIterInvalidState
	}
	if _, err := it.parent.RemoveAt(it.currentIndex); err != nil {
		return err
	}
	if it.nextIndex != it.currentIndex {
		// removal happened behind the cursor, after a forward step
		it.nextIndex--
	}
	// removal may have restructured the tree, force a positional re-fetch
	it.next = nil
	it.current = nil
	it.currentIndex = -1
	it.expectedModCount = it.parent.modCount
	return nil
}

func (it *xTreeListIterator[E]) Set(v E) error {
	if err := it.checkModCount(); err != nil {
		return err
	}
	if it.current == nil {
		return ErrXTreeListIterInvalidState
	}
	it.current.value = v
	return nil
}

func (it *xTreeListIterator[E]) Add(v E) error {
	if err := it.checkModCount(); err != nil {
		return err
	}
	if err := it.parent.Insert(it.nextIndex, v); err != nil {
		return err
	}
	it.next = nil
	it.current = nil
	it.currentIndex = -1
	it.nextIndex++
	it.expectedModCount = it.parent.modCount
	return nil
}
