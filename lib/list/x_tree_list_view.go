package list

import "fmt"

var _ TreeList[int] = (*xTreeListView[int])(nil) // Type check assertion

// xTreeListView is a window over the inclusive backing range [from, to].
// It owns no nodes; every operation translates the local index and delegates,
// adjusting its own bounds after structural changes it performs. Windows nest,
// so backing may itself be a view. to == from-1 denotes an empty window.
type xTreeListView[E comparable] struct {
	backing TreeList[E]
	from    int64
	to      int64
}

func (v *xTreeListView[E]) checkInterval(index, lower, upper int64) error {
	if index < lower || index > upper {
		return fmt.Errorf("%w: index %d, size %d", ErrXTreeListIndexOutOfRange, index, v.Len())
	}
	return nil
}

func (v *xTreeListView[E]) Len() int64 {
	return v.to - v.from + 1
}

func (v *xTreeListView[E]) Get(index int64) (E, error) {
	if err := v.checkInterval(index, 0, v.Len()-1); err != nil {
		var zero E
		return zero, err
	}
	return v.backing.Get(v.from + index)
}

func (v *xTreeListView[E]) Set(index int64, e E) (E, error) {
	if err := v.checkInterval(index, 0, v.Len()-1); err != nil {
		var zero E
		return zero, err
	}
	return v.backing.Set(v.from+index, e)
}

func (v *xTreeListView[E]) Append(e E) {
	_ = v.Insert(v.Len(), e)
}

func (v *xTreeListView[E]) Insert(index int64, e E) error {
	if err := v.checkInterval(index, 0, v.Len()); err != nil {
		return err
	}
	if err := v.backing.Insert(v.from+index, e); err != nil {
		return err
	}
	v.to++
	return nil
}

func (v *xTreeListView[E]) RemoveAt(index int64) (E, error) {
	if err := v.checkInterval(index, 0, v.Len()-1); err != nil {
		var zero E
		return zero, err
	}
	e, err := v.backing.RemoveAt(v.from + index)
	if err == nil {
		v.to--
	}
	return e, err
}

func (v *xTreeListView[E]) RemoveValue(e E) bool {
	index := v.IndexOf(e)
	if index < 0 {
		return false
	}
	_, err := v.RemoveAt(index)
	return err == nil
}

func (v *xTreeListView[E]) RemoveRange(from, to int64) error {
	if err := v.checkInterval(from, 0, v.Len()-1); err != nil {
		return err
	}
	if err := v.checkInterval(to, from, v.Len()-1); err != nil {
		return err
	}
	if err := v.backing.RemoveRange(v.from+from, v.from+to); err != nil {
		return err
	}
	v.to -= to - from + 1
	return nil
}

func (v *xTreeListView[E]) AddAll(values ...E) {
	for _, e := range values {
		v.Append(e)
	}
}

func (v *xTreeListView[E]) IndexOf(e E) int64 {
	idx := int64(-1)
	v.Foreach(func(i int64, cur E) bool {
		if cur == e {
			idx = i
			return false
		}
		return true
	})
	return idx
}

func (v *xTreeListView[E]) LastIndexOf(e E) int64 {
	it := v.DescendingIter()
	for it.HasPrev() {
		cur, err := it.Prev()
		if err != nil {
			return -1
		}
		if cur == e {
			return it.NextIndex()
		}
	}
	return -1
}

func (v *xTreeListView[E]) Contains(e E) bool {
	return v.IndexOf(e) >= 0
}

func (v *xTreeListView[E]) Clear() {
	if v.Len() <= 0 {
		return
	}
	_ = v.backing.RemoveRange(v.from, v.to)
	v.to = v.from - 1
}

func (v *xTreeListView[E]) ToSlice() []E {
	target := make([]E, 0, v.Len())
	v.Foreach(func(_ int64, e E) bool {
		target = append(target, e)
		return true
	})
	return target
}

func (v *xTreeListView[E]) Foreach(fn func(idx int64, e E) bool) {
	it := v.Iter()
	for it.HasNext() {
		e, err := it.Next()
		if err != nil {
			return
		}
		if !fn(it.NextIndex()-1, e) {
			return
		}
	}
}

func (v *xTreeListView[E]) Iter() TreeListIterator[E] {
	it, _ := v.IterAt(0)
	return it
}

func (v *xTreeListView[E]) IterAt(index int64) (TreeListIterator[E], error) {
	if err := v.checkInterval(index, 0, v.Len()); err != nil {
		return nil, err
	}
	inner, err := v.backing.IterAt(v.from + index)
	if err != nil {
		return nil, err
	}
	return &xTreeListViewIterator[E]{view: v, inner: inner}, nil
}

func (v *xTreeListView[E]) DescendingIter() TreeListIterator[E] {
	it, _ := v.IterAt(v.Len())
	return it
}

func (v *xTreeListView[E]) SubList(from, to int64) (TreeList[E], error) {
	if err := v.checkInterval(from, 0, v.Len()); err != nil {
		return nil, err
	}
	if err := v.checkInterval(to, from-1, v.Len()-1); err != nil {
		return nil, err
	}
	return &xTreeListView[E]{backing: v, from: from, to: to}, nil
}

func (v *xTreeListView[E]) Split() TreeListSpliterator[E] {
	return v.splitRange(0, v.Len()-1)
}

func (v *xTreeListView[E]) splitRange(first, last int64) TreeListSpliterator[E] {
	return v.backing.splitRange(v.from+first, v.from+last)
}

var _ TreeListIterator[int] = (*xTreeListViewIterator[int])(nil) // Type check assertion

// xTreeListViewIterator clamps an inner cursor to the window bounds and keeps
// the window bounds in sync with structural changes made through the cursor.
type xTreeListViewIterator[E comparable] struct {
	view  *xTreeListView[E]
	inner TreeListIterator[E]
}

func (it *xTreeListViewIterator[E]) HasNext() bool {
	return it.inner.NextIndex() <= it.view.to
}

func (it *xTreeListViewIterator[E]) Next() (E, error) {
	if !it.HasNext() {
		var zero E
		return zero, ErrXTreeListIterExhausted
	}
	return it.inner.Next()
}

func (it *xTreeListViewIterator[E]) HasPrev() bool {
	return it.inner.PrevIndex() >= it.view.from
}

func (it *xTreeListViewIterator[E]) Prev() (E, error) {
	if !it.HasPrev() {
		var zero E
		return zero, ErrXTreeListIterExhausted
	}
	return it.inner.Prev()
}

func (it *xTreeListViewIterator[E]) NextIndex() int64 {
	return it.inner.NextIndex() - it.view.from
}

func (it *xTreeListViewIterator[E]) PrevIndex() int64 {
	return it.NextIndex() - 1
}

func (it *xTreeListViewIterator[E]) Remove() error {
	if err := it.inner.Remove(); err != nil {
		return err
	}
	it.view.to--
	return nil
}

func (it *xTreeListViewIterator[E]) Set(e E) error {
	return it.inner.Set(e)
}

func (it *xTreeListViewIterator[E]) Add(e E) error {
	if err := it.inner.Add(e); err != nil {
		return err
	}
	it.view.to++
	return nil
}
