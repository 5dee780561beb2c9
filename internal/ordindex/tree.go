// Copyright (c) 2025
// SPDX-License-Identifier: MIT

// Package ordindex implements a generic, arena-backed AVL tree used as the
// ordering container behind tsbuild's left/right/path indexes.
//
// No ordered-container-with-neighbor-navigation library appears anywhere in
// the reference corpus this package was grounded on, so the tree is
// hand-rolled; everything else about its shape (ids instead of pointers,
// a free list, stats counters) follows the arena idiom used throughout the
// rest of the module.
package ordindex

import "github.com/hapseq/tsbuild/internal/arena"

// ID identifies a node within a Tree. Ids start at 0, so the zero value is
// a valid id; compare against Nil for absence.
type ID = arena.ID

// Nil is the "no node" id, also returned by searches that find nothing.
const Nil = arena.Nil

// node is one AVL node. payload is caller data (typically an edge id);
// the tree only ever compares keys, never payloads, and never relocates a
// node's payload to a different id during rebalancing or deletion, so
// external code may safely hold an ID as a long-lived handle to a
// particular (key, payload) pair until it explicitly deletes it.
type node[K any] struct {
	key     K
	payload int32

	left, right, parent ID
	height              int8
}

// Tree is a balanced BST ordered by less, supporting insert, delete, exact
// lookup and closest-match-with-neighbors in O(log n). Predecessor and
// successor from a node follow child or parent links: O(log n) in the
// worst case, O(1) amortized over a full in-order walk.
//
// The zero value is not ready to use; construct a Tree with New.
type Tree[K any] struct {
	nodes arena.Pool[node[K]]
	root  ID
	less  func(a, b K) bool
	count int
}

// New returns a Tree ordered by less. less must be a strict weak ordering.
func New[K any](less func(a, b K) bool) *Tree[K] {
	return &Tree[K]{less: less, root: Nil}
}

// Len reports the number of keys currently in the tree.
func (t *Tree[K]) Len() int { return t.count }

func (t *Tree[K]) h(id ID) int8 {
	if id == Nil {
		return 0
	}
	return t.nodes.Get(id).height
}

func (t *Tree[K]) updateHeight(id ID) {
	n := t.nodes.Get(id)
	lh, rh := t.h(n.left), t.h(n.right)
	if lh > rh {
		n.height = lh + 1
	} else {
		n.height = rh + 1
	}
}

func (t *Tree[K]) balanceFactor(id ID) int {
	n := t.nodes.Get(id)
	return int(t.h(n.left)) - int(t.h(n.right))
}

// reattach points parent's child slot that used to hold oldChild at
// newChild instead (or, if parent is Nil, replaces the tree root), and
// fixes up newChild's parent pointer. Used after both rotations and
// deletions to keep the grandparent link consistent.
func (t *Tree[K]) reattach(parent, oldChild, newChild ID) {
	if parent == Nil {
		t.root = newChild
	} else {
		pn := t.nodes.Get(parent)
		if pn.left == oldChild {
			pn.left = newChild
		} else {
			pn.right = newChild
		}
	}
	if newChild != Nil {
		t.nodes.Get(newChild).parent = parent
	}
}

// rotateLeft promotes id's right child; returns the new subtree root. The
// caller is responsible for relinking the grandparent via reattach.
func (t *Tree[K]) rotateLeft(id ID) ID {
	n := t.nodes.Get(id)
	r := n.right
	rn := t.nodes.Get(r)

	n.right = rn.left
	if rn.left != Nil {
		t.nodes.Get(rn.left).parent = id
	}
	rn.left = id
	n.parent = r

	t.updateHeight(id)
	t.updateHeight(r)
	return r
}

// rotateRight promotes id's left child; returns the new subtree root. The
// caller is responsible for relinking the grandparent via reattach.
func (t *Tree[K]) rotateRight(id ID) ID {
	n := t.nodes.Get(id)
	l := n.left
	ln := t.nodes.Get(l)

	n.left = ln.right
	if ln.right != Nil {
		t.nodes.Get(ln.right).parent = id
	}
	ln.right = id
	n.parent = l

	t.updateHeight(id)
	t.updateHeight(l)
	return l
}

// rebalance restores the AVL property at id, which must have correctly
// updated child heights, and returns the (possibly different) id now
// rooting that subtree. It does not touch id's former parent's child
// pointer; callers use reattach for that.
func (t *Tree[K]) rebalance(id ID) ID {
	t.updateHeight(id)
	bf := t.balanceFactor(id)

	if bf > 1 {
		n := t.nodes.Get(id)
		if t.balanceFactor(n.left) < 0 {
			newLeft := t.rotateLeft(n.left)
			t.reattach(id, n.left, newLeft)
		}
		return t.rotateRight(id)
	}
	if bf < -1 {
		n := t.nodes.Get(id)
		if t.balanceFactor(n.right) > 0 {
			newRight := t.rotateRight(n.right)
			t.reattach(id, n.right, newRight)
		}
		return t.rotateLeft(id)
	}
	return id
}

// rebalanceFrom walks upward from id, whose subtree height may have just
// changed, rebalancing each ancestor and fixing up grandparent links. id
// itself may already have been freed by the caller, in which case pass the
// first surviving ancestor instead.
func (t *Tree[K]) rebalanceFrom(id ID) {
	for id != Nil {
		parent := t.nodes.Get(id).parent
		newSub := t.rebalance(id)
		t.reattach(parent, id, newSub)
		id = parent
	}
}

// Insert adds key with the given payload and returns its node id. Duplicate
// keys (per less) are inserted as distinct nodes, ordered arbitrarily with
// respect to each other but consistently with the rest of the tree; callers
// needing a stable tie-break must fold it into K.
func (t *Tree[K]) Insert(key K, payload int32) ID {
	id := t.nodes.Alloc()
	n := t.nodes.Get(id)
	n.key, n.payload = key, payload
	n.left, n.right, n.parent, n.height = Nil, Nil, Nil, 1
	t.count++

	if t.root == Nil {
		t.root = id
		return id
	}

	cur := t.root
	for {
		cn := t.nodes.Get(cur)
		if t.less(key, cn.key) {
			if cn.left == Nil {
				cn.left = id
				n.parent = cur
				break
			}
			cur = cn.left
		} else {
			if cn.right == Nil {
				cn.right = id
				n.parent = cur
				break
			}
			cur = cn.right
		}
	}

	t.rebalanceFrom(n.parent)
	return id
}

// Delete removes the node id from the tree. id must currently be present.
// Deletion never moves another entry's (key, payload) to a different id:
// when id has two children, its in-order successor is spliced into id's
// structural position (and id is freed), so an external handle to the
// successor continues to resolve to the same key and payload it always
// did.
func (t *Tree[K]) Delete(id ID) {
	t.count--
	n := t.nodes.Get(id)

	if n.left == Nil || n.right == Nil {
		child := n.left
		if child == Nil {
			child = n.right
		}
		parent := n.parent
		t.reattach(parent, id, child)
		t.nodes.Free(id)
		if parent != Nil {
			t.rebalanceFrom(parent)
		}
		return
	}

	succ := t.leftmost(n.right)
	sn := t.nodes.Get(succ)
	var fixFrom ID

	if succ == n.right {
		sn.left = n.left
		if sn.left != Nil {
			t.nodes.Get(sn.left).parent = succ
		}
		fixFrom = succ
	} else {
		succParent := sn.parent
		t.reattach(succParent, succ, sn.right)
		fixFrom = succParent

		sn.left, sn.right = n.left, n.right
		if sn.left != Nil {
			t.nodes.Get(sn.left).parent = succ
		}
		if sn.right != Nil {
			t.nodes.Get(sn.right).parent = succ
		}
	}

	parent := n.parent
	t.reattach(parent, id, succ)
	t.nodes.Free(id)
	t.rebalanceFrom(fixFrom)
}

func (t *Tree[K]) leftmost(id ID) ID {
	for {
		n := t.nodes.Get(id)
		if n.left == Nil {
			return id
		}
		id = n.left
	}
}

func (t *Tree[K]) rightmost(id ID) ID {
	for {
		n := t.nodes.Get(id)
		if n.right == Nil {
			return id
		}
		id = n.right
	}
}

// Key returns the key stored at id.
func (t *Tree[K]) Key(id ID) K { return t.nodes.Get(id).key }

// Payload returns the payload stored at id.
func (t *Tree[K]) Payload(id ID) int32 { return t.nodes.Get(id).payload }

// SetPayload overwrites the payload stored at id without touching the key
// or tree structure.
func (t *Tree[K]) SetPayload(id ID, payload int32) { t.nodes.Get(id).payload = payload }

// Min returns the id of the smallest key, or Nil if the tree is empty.
func (t *Tree[K]) Min() ID {
	if t.root == Nil {
		return Nil
	}
	return t.leftmost(t.root)
}

// Max returns the id of the largest key, or Nil if the tree is empty.
func (t *Tree[K]) Max() ID {
	if t.root == Nil {
		return Nil
	}
	return t.rightmost(t.root)
}

// Successor returns the id immediately after id in key order, or Nil if id
// is the maximum.
func (t *Tree[K]) Successor(id ID) ID {
	n := t.nodes.Get(id)
	if n.right != Nil {
		return t.leftmost(n.right)
	}
	cur, p := id, n.parent
	for p != Nil && t.nodes.Get(p).right == cur {
		cur, p = p, t.nodes.Get(p).parent
	}
	return p
}

// Predecessor returns the id immediately before id in key order, or Nil if
// id is the minimum.
func (t *Tree[K]) Predecessor(id ID) ID {
	n := t.nodes.Get(id)
	if n.left != Nil {
		return t.rightmost(n.left)
	}
	cur, p := id, n.parent
	for p != Nil && t.nodes.Get(p).left == cur {
		cur, p = p, t.nodes.Get(p).parent
	}
	return p
}

// FindExact returns the id whose key is equal to key (neither less(key,k)
// nor less(k,key)), or Nil if no such key exists. If duplicates exist, an
// arbitrary one among them is returned.
func (t *Tree[K]) FindExact(key K) ID {
	if id, exact := t.FindClosest(key); exact {
		return id
	}
	return Nil
}

// FindClosest searches for key and returns the node id it lands on plus
// whether that node's key exactly equals key. When key is absent, the
// returned id is the last node visited by the search — the in-order
// predecessor or successor of where key would be inserted — so that
// Predecessor/Successor on it give the two neighbors key would sit
// between, each in O(log n) worst case (no re-search from the root). This
// is the "exact match plus two neighbors" contract path compression
// relies on.
func (t *Tree[K]) FindClosest(key K) (id ID, exact bool) {
	cur := t.root
	var last ID = Nil
	for cur != Nil {
		last = cur
		n := t.nodes.Get(cur)
		switch {
		case t.less(key, n.key):
			cur = n.left
		case t.less(n.key, key):
			cur = n.right
		default:
			return cur, true
		}
	}
	return last, false
}
