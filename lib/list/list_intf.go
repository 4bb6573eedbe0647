package list

import "encoding/json"

// Note that the tree list is not thread safe. It follows a single-writer,
// fail-fast model: traversal objects snapshot the modification counter and
// refuse to continue after a structural change they did not perform.

// TreeList is an indexable sequence backed by a height-balanced binary tree.
// Random access, insertion and removal by position are O(log n), while the
// threaded traversal links keep full iteration close to array speed.
// All indices are zero based. The persisted (JSON) form is the logical
// element sequence only, never the physical tree shape.
type TreeList[E comparable] interface {
	json.Marshaler
	json.Unmarshaler
	Len() int64
	// Get returns the element at index without touching the sequence.
	Get(index int64) (E, error)
	// Set replaces the element at index and returns the previous value.
	// It is a value-only operation and does not count as a structural change.
	Set(index int64, v E) (E, error)
	// Append adds v at the end of the sequence.
	Append(v E)
	// Insert adds v at index, shifting later elements one position up.
	// The valid index range is [0, Len()].
	Insert(index int64, v E) error
	// RemoveAt removes and returns the element at index.
	RemoveAt(index int64) (E, error)
	// RemoveValue removes the first occurrence of v, reporting whether
	// an element was removed. Linear scan over the threaded links.
	RemoveValue(v E) bool
	// RemoveRange removes the elements at indices [from, to], both inclusive.
	RemoveRange(from, to int64) error
	// AddAll appends all values in one bulk merge instead of element-wise
	// insertion. An empty input is a no-op.
	AddAll(values ...E)
	// IndexOf returns the index of the first occurrence of v, or -1.
	IndexOf(v E) int64
	// LastIndexOf returns the index of the last occurrence of v, or -1.
	LastIndexOf(v E) int64
	Contains(v E) bool
	Clear()
	// ToSlice exports the sequence in order.
	ToSlice() []E
	// Foreach traverses the sequence in order until fn returns false.
	Foreach(fn func(idx int64, v E) bool)
	// Iter returns a cursor positioned before the first element.
	Iter() TreeListIterator[E]
	// IterAt returns a cursor positioned before index, so that the next
	// forward step returns the element at index. The valid range is [0, Len()].
	IterAt(index int64) (TreeListIterator[E], error)
	// DescendingIter returns a cursor positioned after the last element,
	// to be consumed through Prev.
	DescendingIter() TreeListIterator[E]
	// SubList returns a window over the inclusive index range [from, to].
	// The window shares storage with this list; structural mutation through
	// the window is visible in the backing list and vice versa.
	// to == from-1 denotes an empty window.
	SubList(from, to int64) (TreeList[E], error)
	// Split returns a divisible read-only traversal over the whole sequence.
	Split() TreeListSpliterator[E]

	splitRange(first, last int64) TreeListSpliterator[E]
}

// TreeListIterator is a bidirectional fail-fast cursor. Remove, Set and Add
// operate at the cursor position; Remove and Set require a preceding
// successful Next or Prev without an intervening Remove or Add.
type TreeListIterator[E comparable] interface {
	HasNext() bool
	Next() (E, error)
	HasPrev() bool
	Prev() (E, error)
	// NextIndex returns the index of the element a forward step would return.
	NextIndex() int64
	// PrevIndex returns the index of the element a backward step would
	// return, -1 when the cursor sits before the first element.
	PrevIndex() int64
	// Remove removes the element returned by the last Next or Prev.
	Remove() error
	// Set replaces the element returned by the last Next or Prev in place,
	// without counting as a structural change.
	Set(v E) error
	// Add inserts v before the element a forward step would return.
	Add(v E) error
}

// TreeListSpliterator is a read-only traversal over an index range that can
// be split for parallel consumption. Both halves of a split share the
// underlying nodes; no elements are copied.
type TreeListSpliterator[E comparable] interface {
	// TrySplit carves off the lower half of the remaining range into a new
	// traversal and keeps the upper half, reporting whether a split happened.
	TrySplit() (TreeListSpliterator[E], bool)
	// TryAdvance consumes one element, reporting false when the range is
	// exhausted.
	TryAdvance(fn func(v E)) (bool, error)
	// ForEachRemaining consumes every remaining element in order.
	ForEachRemaining(fn func(v E)) error
	// EstimateSize returns the exact number of remaining elements.
	EstimateSize() int64
}
