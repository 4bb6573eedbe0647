package list

import (
	"fmt"

	"go.uber.org/multierr"
)

// Structural validators, mainly for tests. They inspect the physical tree of
// a tree list (unwrapping window views down to the backing list) and report
// every violation found instead of stopping at the first one.

func treeListUnwrap[E comparable](tl TreeList[E]) (*xTreeList[E], error) {
	switch impl := tl.(type) {
	case *xTreeList[E]:
		return impl, nil
	case *xTreeListView[E]:
		return treeListUnwrap(impl.backing)
	default:
		return nil, fmt.Errorf("[x-tree-list] unknown tree list implementation %T", tl)
	}
}

// BalanceViolationValidate checks the cached heights and the AVL height bound
// on every node.
func BalanceViolationValidate[E comparable](tl TreeList[E]) error {
	l, err := treeListUnwrap(tl)
	if err != nil {
		return err
	}
	if l.root == nil {
		return nil
	}
	var walk func(node *xTreeListNode[E]) error
	walk = func(node *xTreeListNode[E]) error {
		var merr error
		expected := max(getNodeHeight(node.leftSubtree()), getNodeHeight(node.rightSubtree())) + 1
		if node.height != expected {
			merr = multierr.Append(merr, fmt.Errorf("[x-tree-list] stale height cache %d, expected %d", node.height, expected))
		}
		if diff := node.heightRightMinusLeft(); diff < -1 || diff > 1 {
			merr = multierr.Append(merr, fmt.Errorf("[x-tree-list] height gap %d breaks the balance bound", diff))
		}
		if left := node.leftSubtree(); left != nil {
			merr = multierr.Append(merr, walk(left))
		}
		if right := node.rightSubtree(); right != nil {
			merr = multierr.Append(merr, walk(right))
		}
		return merr
	}
	return walk(l.root)
}

// PositionViolationValidate checks that the parent relative offsets resolve
// every node to its in-order rank and that the node count matches the size.
func PositionViolationValidate[E comparable](tl TreeList[E]) error {
	l, err := treeListUnwrap(tl)
	if err != nil {
		return err
	}
	var merr error
	counted := int64(0)
	var walk func(node *xTreeListNode[E], absolute int64)
	walk = func(node *xTreeListNode[E], absolute int64) {
		if left := node.leftSubtree(); left != nil {
			walk(left, absolute+left.relativePosition)
		}
		if absolute != counted {
			merr = multierr.Append(merr, fmt.Errorf("[x-tree-list] node resolves to index %d, expected %d", absolute, counted))
		}
		counted++
		if right := node.rightSubtree(); right != nil {
			walk(right, absolute+right.relativePosition)
		}
	}
	if l.root != nil {
		walk(l.root, l.root.relativePosition)
	}
	if counted != l.size {
		merr = multierr.Append(merr, fmt.Errorf("[x-tree-list] tree holds %d nodes, size says %d", counted, l.size))
	}
	return merr
}

// ThreadViolationValidate checks every predecessor and successor link against
// the in-order node sequence, then replays the sequence in both directions
// over the links alone.
func ThreadViolationValidate[E comparable](tl TreeList[E]) error {
	l, err := treeListUnwrap(tl)
	if err != nil {
		return err
	}
	if l.root == nil {
		return nil
	}
	var ordered []*xTreeListNode[E]
	var walk func(node *xTreeListNode[E])
	walk = func(node *xTreeListNode[E]) {
		if left := node.leftSubtree(); left != nil {
			walk(left)
		}
		ordered = append(ordered, node)
		if right := node.rightSubtree(); right != nil {
			walk(right)
		}
	}
	walk(l.root)

	var merr error
	for i, node := range ordered {
		if node.leftIsPrevious {
			var want *xTreeListNode[E]
			if i > 0 {
				want = ordered[i-1]
			}
			if node.left != want {
				merr = multierr.Append(merr, fmt.Errorf("[x-tree-list] broken predecessor thread at index %d", i))
			}
		}
		if node.rightIsNext {
			var want *xTreeListNode[E]
			if i < len(ordered)-1 {
				want = ordered[i+1]
			}
			if node.right != want {
				merr = multierr.Append(merr, fmt.Errorf("[x-tree-list] broken successor thread at index %d", i))
			}
		}
	}

	i := 0
	for node := l.root.min(); node != nil; node = node.next() {
		if i >= len(ordered) || node != ordered[i] {
			merr = multierr.Append(merr, fmt.Errorf("[x-tree-list] forward stepping diverges at index %d", i))
			break
		}
		i++
	}
	if i < len(ordered) && merr == nil {
		merr = multierr.Append(merr, fmt.Errorf("[x-tree-list] forward stepping stops at index %d of %d", i, len(ordered)))
	}
	j := len(ordered) - 1
	for node := l.root.max(); node != nil; node = node.previous() {
		if j < 0 || node != ordered[j] {
			merr = multierr.Append(merr, fmt.Errorf("[x-tree-list] backward stepping diverges at index %d", j))
			break
		}
		j--
	}
	return merr
}

// TreeListViolationValidate runs all structural validators.
func TreeListViolationValidate[E comparable](tl TreeList[E]) error {
	return multierr.Combine(
		BalanceViolationValidate(tl),
		PositionViolationValidate(tl),
		ThreadViolationValidate(tl),
	)
}
