package list

var _ TreeListSpliterator[int] = (*xTreeListSpliterator[int])(nil) // Type check assertion

// xTreeListSpliterator walks the inclusive index range [firstIndex, lastIndex]
// over the threading links. Splitting hands the lower half of the remaining
// range to a new traversal and keeps the upper half, so repeated splits carve
// the sequence into disjoint chunks sharing the same underlying nodes.
type xTreeListSpliterator[E comparable] struct {
	parent     *xTreeList[E]
	firstIndex int64
	lastIndex  int64
	// next caches the node at firstIndex, nil until the first advance after
	// creation or a split.
	next             *xTreeListNode[E]
	expectedModCount uint64
}

func (sp *xTreeListSpliterator[E]) TrySplit() (TreeListSpliterator[E], bool) {
	remaining := sp.lastIndex - sp.firstIndex + 1
	if remaining < 2 {
		return nil, false
	}
	mid := sp.firstIndex + remaining>>1
	lower := &xTreeListSpliterator[E]{
		parent:           sp.parent,
		firstIndex:       sp.firstIndex,
		lastIndex:        mid - 1,
		next:             sp.next, // cache stays valid for the lower half only
		expectedModCount: sp.expectedModCount,
	}
	sp.firstIndex = mid
	sp.next = nil
	return lower, true
}

func (sp *xTreeListSpliterator[E]) TryAdvance(fn func(v E)) (bool, error) {
	if sp.parent.modCount != sp.expectedModCount {
		return false, ErrXTreeListConcurrentModification
	}
	if sp.firstIndex > sp.lastIndex {
		return false, nil
	}
	if sp.next == nil {
		sp.next = sp.parent.root.get(sp.firstIndex)
	}
	v := sp.next.value
	sp.next = sp.next.next()
	sp.firstIndex++
	fn(v)
	return true, nil
}

func (sp *xTreeListSpliterator[E]) ForEachRemaining(fn func(v E)) error {
	for {
		ok, err := sp.TryAdvance(fn)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func (sp *xTreeListSpliterator[E]) EstimateSize() int64 {
	if sp.firstIndex > sp.lastIndex {
		return 0
	}
	return sp.lastIndex - sp.firstIndex + 1
}
