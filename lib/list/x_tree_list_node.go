package list

// References:
// https://en.wikipedia.org/wiki/AVL_tree
// https://en.wikipedia.org/wiki/Threaded_binary_tree
//
// The node graph below stores one list element per node. Positions are kept
// as offsets relative to the parent node, so a structural change only has to
// touch the O(log n) ancestors of the mutated slot instead of renumbering
// the whole sequence. A child slot without a real subtree is reused as a
// threading link to the in-order predecessor (left slot) or successor
// (right slot), which gives O(1) amortized stepping in both directions.
//
//	         D(+3)
//	        /      \
//	    B(-2)      F(+2)
//	    /   \      /   \
//	 A(-1) C(+1) E(-1) G(+1)
//
// Absolute index of a node = sum of relativePosition along the root path.

type xTreeListNode[E comparable] struct {
	left  *xTreeListNode[E]
	right *xTreeListNode[E]
	// When a slot holds no real subtree, the pointer threads to the in-order
	// neighbor on that side (nil at the sequence ends) and the flag is set.
	leftIsPrevious bool
	rightIsNext    bool
	// Offset of this node's index from its parent's index. The root stores
	// its absolute index.
	relativePosition int64
	// Cached subtree height. A leaf has height 0, an absent child counts -1.
	height int64
	value  E
}

func newXTreeListNode[E comparable](relativePosition int64, v E, rightFollower, leftFollower *xTreeListNode[E]) *xTreeListNode[E] {
	return &xTreeListNode[E]{
		relativePosition: relativePosition,
		value:            v,
		rightIsNext:      true,
		leftIsPrevious:   true,
		right:            rightFollower,
		left:             leftFollower,
	}
}

// newXTreeListSubtree builds an already balanced, correctly threaded subtree
// over values[start..end] in a single midpoint split. prev and next are the
// in-order neighbors of the whole range, threaded into the boundary nodes.
// No rebalancing pass is needed afterwards.
func newXTreeListSubtree[E comparable](values []E, start, end, absolutePositionOfParent int64, prev, next *xTreeListNode[E]) *xTreeListNode[E] {
	mid := start + (end-start)>>1
	n := &xTreeListNode[E]{
		relativePosition: mid - absolutePositionOfParent,
		value:            values[mid],
	}
	if start < mid {
		n.left = newXTreeListSubtree(values, start, mid-1, mid, prev, n)
	} else {
		n.leftIsPrevious = true
		n.left = prev
	}
	if mid < end {
		n.right = newXTreeListSubtree(values, mid+1, end, mid, n, next)
	} else {
		n.rightIsNext = true
		n.right = next
	}
	n.recalcHeight()
	return n
}

func (n *xTreeListNode[E]) leftSubtree() *xTreeListNode[E] {
	if n.leftIsPrevious {
		return nil
	}
	return n.left
}

func (n *xTreeListNode[E]) rightSubtree() *xTreeListNode[E] {
	if n.rightIsNext {
		return nil
	}
	return n.right
}

// setLeft installs node as the left subtree; a nil node turns the slot into
// a threading link to previous.
func (n *xTreeListNode[E]) setLeft(node, previous *xTreeListNode[E]) {
	n.leftIsPrevious = node == nil
	if n.leftIsPrevious {
		n.left = previous
	} else {
		n.left = node
	}
	n.recalcHeight()
}

// setRight installs node as the right subtree; a nil node turns the slot
// into a threading link to next.
func (n *xTreeListNode[E]) setRight(node, next *xTreeListNode[E]) {
	n.rightIsNext = node == nil
	if n.rightIsNext {
		n.right = next
	} else {
		n.right = node
	}
	n.recalcHeight()
}

func (n *xTreeListNode[E]) min() *xTreeListNode[E] {
	if n.leftSubtree() == nil {
		return n
	}
	return n.leftSubtree().min()
}

func (n *xTreeListNode[E]) max() *xTreeListNode[E] {
	if n.rightSubtree() == nil {
		return n
	}
	return n.rightSubtree().max()
}

// next steps to the in-order successor, via the thread when there is no
// right subtree.
func (n *xTreeListNode[E]) next() *xTreeListNode[E] {
	if n.rightIsNext || n.right == nil {
		return n.right
	}
	return n.right.min()
}

// previous steps to the in-order predecessor, via the thread when there is
// no left subtree.
func (n *xTreeListNode[E]) previous() *xTreeListNode[E] {
	if n.leftIsPrevious || n.left == nil {
		return n.left
	}
	return n.left.max()
}

// get locates the node at index, expressed in the same coordinate space as
// relativePosition. The container validates the bound, so a descent that
// runs out of subtree indicates a corrupted tree.
func (n *xTreeListNode[E]) get(index int64) *xTreeListNode[E] {
	indexRelativeToMe := index - n.relativePosition
	if indexRelativeToMe == 0 {
		return n
	}
	var nextNode *xTreeListNode[E]
	if indexRelativeToMe < 0 {
		nextNode = n.leftSubtree()
	} else {
		nextNode = n.rightSubtree()
	}
	if nextNode == nil {
		// impossible run to here
		panic( /* debug assertion */ "[x-tree-list] positional descent hit a thread link")
	}
	return nextNode.get(indexRelativeToMe)
}

// insert adds v at index and returns the new local root.
func (n *xTreeListNode[E]) insert(index int64, v E) *xTreeListNode[E] {
	indexRelativeToMe := index - n.relativePosition
	if indexRelativeToMe <= 0 {
		return n.insertOnLeft(indexRelativeToMe, v)
	}
	return n.insertOnRight(indexRelativeToMe, v)
}

func (n *xTreeListNode[E]) insertOnLeft(indexRelativeToMe int64, v E) *xTreeListNode[E] {
	if n.leftSubtree() == nil {
		n.setLeft(newXTreeListNode(-1, v, n, n.left), nil)
	} else {
		n.setLeft(n.leftSubtree().insert(indexRelativeToMe, v), nil)
	}
	if n.relativePosition >= 0 {
		n.relativePosition++
	}
	ret := n.balance()
	n.recalcHeight()
	return ret
}

func (n *xTreeListNode[E]) insertOnRight(indexRelativeToMe int64, v E) *xTreeListNode[E] {
	if n.rightSubtree() == nil {
		n.setRight(newXTreeListNode(1, v, n.right, n), nil)
	} else {
		n.setRight(n.rightSubtree().insert(indexRelativeToMe, v), nil)
	}
	if n.relativePosition < 0 {
		n.relativePosition--
	}
	ret := n.balance()
	n.recalcHeight()
	return ret
}

// remove deletes the node at index and returns the new local root, nil when
// the subtree becomes empty.
func (n *xTreeListNode[E]) remove(index int64) *xTreeListNode[E] {
	indexRelativeToMe := index - n.relativePosition
	if indexRelativeToMe == 0 {
		return n.removeSelf()
	}
	if indexRelativeToMe > 0 {
		n.setRight(n.rightSubtree().remove(indexRelativeToMe), n.right.right)
		if n.relativePosition < 0 {
			n.relativePosition++
		}
	} else {
		n.setLeft(n.leftSubtree().remove(indexRelativeToMe), n.left.left)
		if n.relativePosition > 0 {
			n.relativePosition--
		}
	}
	n.recalcHeight()
	return n.balance()
}

func (n *xTreeListNode[E]) removeMax() *xTreeListNode[E] {
	if n.rightSubtree() == nil {
		return n.removeSelf()
	}
	n.setRight(n.rightSubtree().removeMax(), n.right.right)
	if n.relativePosition < 0 {
		n.relativePosition++
	}
	n.recalcHeight()
	return n.balance()
}

func (n *xTreeListNode[E]) removeMin() *xTreeListNode[E] {
	if n.leftSubtree() == nil {
		return n.removeSelf()
	}
	n.setLeft(n.leftSubtree().removeMin(), n.left.left)
	if n.relativePosition > 0 {
		n.relativePosition--
	}
	n.recalcHeight()
	return n.balance()
}

// removeSelf splices this node out of the subtree. Nodes with at most one
// real child are unlinked and their neighbors re-threaded; a node with two
// children borrows the boundary value of the taller subtree (left on ties)
// and removes that boundary node instead, so the splice stays O(log n).
func (n *xTreeListNode[E]) removeSelf() *xTreeListNode[E] {
	if n.rightSubtree() == nil && n.leftSubtree() == nil {
		return nil
	}
	if n.rightSubtree() == nil {
		if n.relativePosition > 0 {
			n.left.relativePosition += n.relativePosition
		}
		n.left.max().setRight(nil, n.right)
		return n.left
	}
	if n.leftSubtree() == nil {
		if n.relativePosition < 0 {
			n.right.relativePosition += n.relativePosition
		} else {
			n.right.relativePosition += n.relativePosition - 1
		}
		n.right.min().setLeft(nil, n.left)
		return n.right
	}

	if n.heightRightMinusLeft() > 0 {
		// more on the right, so borrow from the right
		rightMin := n.rightSubtree().min()
		n.value = rightMin.value
		if n.leftIsPrevious {
			n.left = rightMin.left
		}
		n.right = n.rightSubtree().removeMin()
		if n.relativePosition < 0 {
			n.relativePosition++
		}
	} else {
		// more on the left or equal, so borrow from the left
		leftMax := n.leftSubtree().max()
		n.value = leftMax.value
		if n.rightIsNext {
			n.right = leftMax.right
		}
		leftPrevious := n.left.left
		n.left = n.leftSubtree().removeMax()
		if n.left == nil {
			// the removed left node was a double link, only possible when
			// both sides have equal height
			n.left = leftPrevious
			n.leftIsPrevious = true
		}
		if n.relativePosition > 0 {
			n.relativePosition--
		}
	}
	n.recalcHeight()
	return n
}

// removeRange deletes every node of this subtree whose index, expressed in
// the same coordinate space as relativePosition, falls inside [from, to].
// Children are cleared before the node itself, so the bounds captured on
// entry keep addressing the original positions. Returns the new subtree
// root (nil when emptied) and the number of nodes removed.
func (n *xTreeListNode[E]) removeRange(from, to int64) (*xTreeListNode[E], int64) {
	fromRelativeToMe := from - n.relativePosition
	toRelativeToMe := to - n.relativePosition

	removed := int64(0)
	if r := n.rightSubtree(); r != nil && toRelativeToMe > 0 {
		var flankNext *xTreeListNode[E]
		if fromRelativeToMe <= 1 {
			// the whole right flank may go; its max carries the thread to
			// the successor of the entire subtree
			flankNext = r.max().right
		}
		newRight, k := r.removeRange(fromRelativeToMe, toRelativeToMe)
		if newRight == nil {
			n.setRight(nil, flankNext)
		} else {
			n.setRight(newRight, nil)
		}
		if n.relativePosition < 0 {
			n.relativePosition += k
		}
		removed += k
	}
	if l := n.leftSubtree(); l != nil && fromRelativeToMe < 0 {
		var flankPrev *xTreeListNode[E]
		if toRelativeToMe >= -1 {
			flankPrev = l.min().left
		}
		newLeft, k := l.removeRange(fromRelativeToMe, toRelativeToMe)
		if newLeft == nil {
			n.setLeft(nil, flankPrev)
		} else {
			n.setLeft(newLeft, nil)
		}
		if n.relativePosition > 0 {
			n.relativePosition -= k
		}
		removed += k
	}

	root := n
	if fromRelativeToMe <= 0 && toRelativeToMe >= 0 {
		root = n.removeSelf()
		removed++
	}
	if root != nil {
		root = root.rebalanceDeep()
	}
	return root, removed
}

// rebalanceDeep restores the AVL bound after a range removal, which can
// leave a height gap larger than a single rotation step can repair. It
// re-applies the standard rotation step, repairing the demoted side
// recursively, until the local gap is back within one. Single-element
// operations keep using balance; the two paths are never unified.
func (n *xTreeListNode[E]) rebalanceDeep() *xTreeListNode[E] {
	for {
		n.recalcHeight()
		switch diff := n.heightRightMinusLeft(); {
		case diff >= -1 && diff <= 1:
			return n
		case diff < -1:
			if n.leftSubtree().heightRightMinusLeft() > 0 {
				n.setLeft(n.leftSubtree().rotateLeft(), nil)
			}
			n = n.rotateRight()
			if r := n.rightSubtree(); r != nil {
				n.setRight(r.rebalanceDeep(), nil)
			}
		default:
			if n.rightSubtree().heightRightMinusLeft() < 0 {
				n.setRight(n.rightSubtree().rotateRight(), nil)
			}
			n = n.rotateLeft()
			if l := n.leftSubtree(); l != nil {
				n.setLeft(l.rebalanceDeep(), nil)
			}
		}
	}
}

// addAll merges otherTree, holding the elements to append, behind the
// currentSize elements of this subtree in O(log(m+n)). The shorter tree
// donates its boundary node as the connector; the taller tree is descended
// along the adjacent flank until a subtree of comparable height is found,
// then the pieces are spliced, threaded, and the descended ancestors are
// rebalanced on the way back out.
func (n *xTreeListNode[E]) addAll(otherTree *xTreeListNode[E], currentSize int64) *xTreeListNode[E] {
	maxNode := n.max()
	otherTreeMin := otherTree.min()

	if otherTree.height > n.height {
		// the appended tree is taller, merge this tree into it

		leftSubTree := n.removeMax()

		sAncestors := make([]*xTreeListNode[E], 0, otherTree.height)
		s := otherTree
		sAbsolutePosition := s.relativePosition + currentSize
		sParentAbsolutePosition := int64(0)
		for s != nil && s.height > getNodeHeight(leftSubTree) {
			sParentAbsolutePosition = sAbsolutePosition
			sAncestors = append(sAncestors, s)
			s = s.left
			if s != nil {
				sAbsolutePosition += s.relativePosition
			}
		}

		maxNode.setLeft(leftSubTree, nil)
		maxNode.setRight(s, otherTreeMin)
		if leftSubTree != nil {
			leftSubTree.max().setRight(nil, maxNode)
			leftSubTree.relativePosition -= currentSize - 1
		}
		if s != nil {
			s.min().setLeft(nil, maxNode)
			s.relativePosition = sAbsolutePosition - currentSize + 1
		}
		maxNode.relativePosition = currentSize - 1 - sParentAbsolutePosition
		otherTree.relativePosition += currentSize

		s = maxNode
		for len(sAncestors) > 0 {
			sAncestor := sAncestors[len(sAncestors)-1]
			sAncestors = sAncestors[:len(sAncestors)-1]
			sAncestor.setLeft(s, nil)
			s = sAncestor.balance()
		}
		return s
	}

	otherTree = otherTree.removeMin()

	sAncestors := make([]*xTreeListNode[E], 0, n.height)
	s := n
	sAbsolutePosition := s.relativePosition
	sParentAbsolutePosition := int64(0)
	for s != nil && s.height > getNodeHeight(otherTree) {
		sParentAbsolutePosition = sAbsolutePosition
		sAncestors = append(sAncestors, s)
		s = s.right
		if s != nil {
			sAbsolutePosition += s.relativePosition
		}
	}

	otherTreeMin.setRight(otherTree, nil)
	otherTreeMin.setLeft(s, maxNode)
	if otherTree != nil {
		otherTree.min().setLeft(nil, otherTreeMin)
		otherTree.relativePosition++
	}
	if s != nil {
		s.max().setRight(nil, otherTreeMin)
		s.relativePosition = sAbsolutePosition - currentSize
	}
	otherTreeMin.relativePosition = currentSize - sParentAbsolutePosition

	s = otherTreeMin
	for len(sAncestors) > 0 {
		sAncestor := sAncestors[len(sAncestors)-1]
		sAncestors = sAncestors[:len(sAncestors)-1]
		sAncestor.setRight(s, nil)
		s = sAncestor.balance()
	}
	return s
}

// balance is the standard single-step AVL fix-up used by single-element
// insert and remove.
func (n *xTreeListNode[E]) balance() *xTreeListNode[E] {
	switch n.heightRightMinusLeft() {
	case 1, 0, -1:
		return n
	case -2:
		if n.leftSubtree().heightRightMinusLeft() > 0 {
			n.setLeft(n.leftSubtree().rotateLeft(), nil)
		}
		return n.rotateRight()
	case 2:
		if n.rightSubtree().heightRightMinusLeft() < 0 {
			n.setRight(n.rightSubtree().rotateRight(), nil)
		}
		return n.rotateLeft()
	default:
		// impossible run to here
		panic( /* debug assertion */ "[x-tree-list] tree inconsistent, height gap beyond a rotation step")
	}
}

func (n *xTreeListNode[E]) recalcHeight() {
	n.height = max(getNodeHeight(n.leftSubtree()), getNodeHeight(n.rightSubtree())) + 1
}

func (n *xTreeListNode[E]) heightRightMinusLeft() int64 {
	return getNodeHeight(n.rightSubtree()) - getNodeHeight(n.leftSubtree())
}

/*
	     |                          |
	     X                        newTop
	    / \     rotateLeft(X)     /    \
	   L  newTop ============>   X     Sd
	      /    \                / \
	    moved  Sd              L  moved
*/
func (n *xTreeListNode[E]) rotateLeft() *xTreeListNode[E] {
	newTop := n.right // cannot be a thread link here
	movedNode := n.rightSubtree().leftSubtree()

	newTopPosition := n.relativePosition + getNodeOffset(newTop)
	myNewPosition := -newTop.relativePosition
	movedPosition := getNodeOffset(newTop) + getNodeOffset(movedNode)

	n.setRight(movedNode, newTop)
	newTop.setLeft(n, nil)

	setNodeOffset(newTop, newTopPosition)
	setNodeOffset(n, myNewPosition)
	setNodeOffset(movedNode, movedPosition)
	return newTop
}

/*
	       |                      |
	       X                    newTop
	      / \   rotateRight(X)  /    \
	  newTop Sd ============>  Sc     X
	  /    \                         / \
	 Sc   moved                  moved  Sd
*/
func (n *xTreeListNode[E]) rotateRight() *xTreeListNode[E] {
	newTop := n.left // cannot be a thread link here
	movedNode := n.leftSubtree().rightSubtree()

	newTopPosition := n.relativePosition + getNodeOffset(newTop)
	myNewPosition := -newTop.relativePosition
	movedPosition := getNodeOffset(newTop) + getNodeOffset(movedNode)

	n.setLeft(movedNode, newTop)
	newTop.setRight(n, nil)

	setNodeOffset(newTop, newTopPosition)
	setNodeOffset(n, myNewPosition)
	setNodeOffset(movedNode, movedPosition)
	return newTop
}

// toSliceRecursive exports the subtree in order; index is this node's
// position inside target.
func (n *xTreeListNode[E]) toSliceRecursive(target []E, index int64) {
	target[index] = n.value
	if l := n.leftSubtree(); l != nil {
		l.toSliceRecursive(target, index+l.relativePosition)
	}
	if r := n.rightSubtree(); r != nil {
		r.toSliceRecursive(target, index+r.relativePosition)
	}
}

func getNodeHeight[E comparable](node *xTreeListNode[E]) int64 {
	if node == nil {
		return -1
	}
	return node.height
}

func getNodeOffset[E comparable](node *xTreeListNode[E]) int64 {
	if node == nil {
		return 0
	}
	return node.relativePosition
}

func setNodeOffset[E comparable](node *xTreeListNode[E], newOffset int64) {
	if node == nil {
		return
	}
	node.relativePosition = newOffset
}
