package list

import (
	"errors"
	"fmt"
)

var (
	ErrXTreeListIndexOutOfRange        = errors.New("[x-tree-list] index out of range")
	ErrXTreeListConcurrentModification = errors.New("[x-tree-list] concurrent structural modification")
	ErrXTreeListIterExhausted          = errors.New("[x-tree-list] iteration exhausted")
	ErrXTreeListIterInvalidState       = errors.New("[x-tree-list] iterator requires a preceding next or prev")
)

var _ TreeList[int] = (*xTreeList[int])(nil) // Type check assertion

// xTreeList owns the tree root, the element count and the modification
// counter. All structural work is delegated to the node algorithms, which
// hand back a possibly new root; nothing outside this type mutates size or
// modCount.
type xTreeList[E comparable] struct {
	root     *xTreeListNode[E]
	size     int64
	modCount uint64
	stats    *treeListStats
}

type TreeListOpt[E comparable] func(*xTreeList[E])

// WithTreeListStats enables opt-in operation metrics published through the
// global otel meter provider under the given instance name.
func WithTreeListStats[E comparable](name string) TreeListOpt[E] {
	return func(l *xTreeList[E]) {
		l.stats = newTreeListStats(name)
	}
}

func NewTreeList[E comparable](opts ...TreeListOpt[E]) TreeList[E] {
	l := &xTreeList[E]{}
	for _, o := range opts {
		o(l)
	}
	return l
}

// NewTreeListFromSlice builds the sequence from values in O(n) through a
// single balanced construction pass instead of n logarithmic inserts.
func NewTreeListFromSlice[E comparable](values []E, opts ...TreeListOpt[E]) TreeList[E] {
	l := &xTreeList[E]{}
	for _, o := range opts {
		o(l)
	}
	if len(values) > 0 {
		l.root = newXTreeListSubtree(values, 0, int64(len(values))-1, 0, nil, nil)
		l.size = int64(len(values))
	}
	return l
}

// checkInterval validates index against [lower, upper], both inclusive.
func (l *xTreeList[E]) checkInterval(index, lower, upper int64) error {
	if index < lower || index > upper {
		return fmt.Errorf("%w: index %d, size %d", ErrXTreeListIndexOutOfRange, index, l.size)
	}
	return nil
}

func (l *xTreeList[E]) Len() int64 {
	return l.size
}

func (l *xTreeList[E]) Get(index int64) (E, error) {
	if err := l.checkInterval(index, 0, l.size-1); err != nil {
		var zero E
		return zero, err
	}
	return l.root.get(index).value, nil
}

func (l *xTreeList[E]) Set(index int64, v E) (E, error) {
	if err := l.checkInterval(index, 0, l.size-1); err != nil {
		var zero E
		return zero, err
	}
	node := l.root.get(index)
	old := node.value
	node.value = v
	return old, nil
}

func (l *xTreeList[E]) Append(v E) {
	_ = l.Insert(l.size, v)
}

func (l *xTreeList[E]) Insert(index int64, v E) error {
	if err := l.checkInterval(index, 0, l.size); err != nil {
		return err
	}
	l.modCount++
	if l.root == nil {
		l.root = newXTreeListNode(index, v, nil, nil)
	} else {
		l.root = l.root.insert(index, v)
	}
	l.size++
	l.stats.RecordElementCount(1)
	l.stats.IncreaseInsertedCount()
	return nil
}

func (l *xTreeList[E]) RemoveAt(index int64) (E, error) {
	if err := l.checkInterval(index, 0, l.size-1); err != nil {
		var zero E
		return zero, err
	}
	l.modCount++
	result := l.root.get(index).value
	l.root = l.root.remove(index)
	l.size--
	l.stats.RecordElementCount(-1)
	l.stats.IncreaseRemovedCount(1)
	return result, nil
}

func (l *xTreeList[E]) RemoveValue(v E) bool {
	index := l.IndexOf(v)
	if index < 0 {
		return false
	}
	_, err := l.RemoveAt(index)
	return err == nil
}

func (l *xTreeList[E]) RemoveRange(from, to int64) error {
	if err := l.checkInterval(from, 0, l.size-1); err != nil {
		return err
	}
	if err := l.checkInterval(to, from, l.size-1); err != nil {
		return err
	}
	l.modCount++
	newRoot, removed := l.root.removeRange(from, to)
	if removed != to-from+1 {
		// impossible run to here
		panic( /* debug assertion */ "[x-tree-list] range removal count mismatch")
	}
	l.root = newRoot
	l.size -= removed
	l.stats.RecordElementCount(-removed)
	l.stats.IncreaseRemovedCount(removed)
	return nil
}

func (l *xTreeList[E]) AddAll(values ...E) {
	if len(values) == 0 {
		return
	}
	l.modCount++
	otherTree := newXTreeListSubtree(values, 0, int64(len(values))-1, 0, nil, nil)
	if l.root == nil {
		l.root = otherTree
	} else {
		l.root = l.root.addAll(otherTree, l.size)
	}
	l.size += int64(len(values))
	l.stats.RecordElementCount(int64(len(values)))
	l.stats.IncreaseMergedCount()
}

func (l *xTreeList[E]) IndexOf(v E) int64 {
	if l.root == nil {
		return -1
	}
	idx := int64(0)
	for node := l.root.min(); node != nil; node = node.next() {
		if node.value == v {
			return idx
		}
		idx++
	}
	return -1
}

func (l *xTreeList[E]) LastIndexOf(v E) int64 {
	if l.root == nil {
		return -1
	}
	idx := l.size - 1
	for node := l.root.max(); node != nil; node = node.previous() {
		if node.value == v {
			return idx
		}
		idx--
	}
	return -1
}

func (l *xTreeList[E]) Contains(v E) bool {
	return l.IndexOf(v) >= 0
}

func (l *xTreeList[E]) Clear() {
	l.modCount++
	l.stats.RecordElementCount(-l.size)
	l.root = nil
	l.size = 0
}

func (l *xTreeList[E]) ToSlice() []E {
	target := make([]E, l.size)
	if l.root != nil {
		l.root.toSliceRecursive(target, l.root.relativePosition)
	}
	return target
}

func (l *xTreeList[E]) Foreach(fn func(idx int64, v E) bool) {
	if l.root == nil {
		return
	}
	idx := int64(0)
	for node := l.root.min(); node != nil; node = node.next() {
		if !fn(idx, node.value) {
			return
		}
		idx++
	}
}

func (l *xTreeList[E]) Iter() TreeListIterator[E] {
	it, _ := l.IterAt(0)
	return it
}

func (l *xTreeList[E]) IterAt(index int64) (TreeListIterator[E], error) {
	if err := l.checkInterval(index, 0, l.size); err != nil {
		return nil, err
	}
	return &xTreeListIterator[E]{
		parent:           l,
		nextIndex:        index,
		currentIndex:     -1,
		expectedModCount: l.modCount,
	}, nil
}

func (l *xTreeList[E]) DescendingIter() TreeListIterator[E] {
	it, _ := l.IterAt(l.size)
	return it
}

func (l *xTreeList[E]) SubList(from, to int64) (TreeList[E], error) {
	if err := l.checkInterval(from, 0, l.size); err != nil {
		return nil, err
	}
	if err := l.checkInterval(to, from-1, l.size-1); err != nil {
		return nil, err
	}
	return &xTreeListView[E]{backing: l, from: from, to: to}, nil
}

func (l *xTreeList[E]) Split() TreeListSpliterator[E] {
	return l.splitRange(0, l.size-1)
}

func (l *xTreeList[E]) splitRange(first, last int64) TreeListSpliterator[E] {
	return &xTreeListSpliterator[E]{
		parent:           l,
		firstIndex:       first,
		lastIndex:        last,
		expectedModCount: l.modCount,
	}
}
