// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import "log"

// V returns the variable of node n; the two constant nodes carry the all-ones
// value.
func (z *ZDD) V(n uint32) uint16 { return z.pool[n].v }

// Lo returns the branch of node n for sets that do not contain its variable.
func (z *ZDD) Lo(n uint32) uint32 { return z.pool[n].lo }

// Hi returns the branch of node n for sets that contain its variable.
func (z *ZDD) Hi(n uint32) uint32 { return z.pool[n].hi }

// SetLo overwrites the LO branch of an already-allocated node and returns the
// new branch.
func (z *ZDD) SetLo(n, lo uint32) uint32 {
	z.pool[n].lo = lo
	return lo
}

// SetHi overwrites the HI branch of an already-allocated node and returns the
// new branch.
func (z *ZDD) SetHi(n, hi uint32) uint32 {
	z.pool[n].hi = hi
	return hi
}

// SetHilo overwrites both branches of an already-allocated node with the same
// target and returns it.
func (z *ZDD) SetHilo(n, hilo uint32) uint32 {
	z.pool[n].lo = hilo
	z.pool[n].hi = hilo
	return hilo
}

// NextNode returns the index at which the next node will be allocated.
func (z *ZDD) NextNode() uint32 { return z.freenode }

// LastNode returns the index of the most recently allocated node.
func (z *ZDD) LastNode() uint32 { return z.freenode - 1 }

// grow makes sure the slot at freenode exists, extending the pool up to the
// configured maximum. Node indexes never move. Returns false, and poisons the
// engine, when the pool is full.
func (z *ZDD) grow() bool {
	if int(z.freenode) < len(z.pool) {
		return true
	}
	if len(z.pool) >= z.maxpoolsize {
		z.seterror("pool is full (%d nodes)", len(z.pool))
		return false
	}
	size := len(z.pool) * 2
	if size > z.maxpoolsize {
		size = z.maxpoolsize
	}
	if _LOGLEVEL > 0 {
		log.Printf("growing pool: %d -> %d\n", len(z.pool), size)
	}
	tmp := z.pool
	z.pool = make([]node, size)
	copy(z.pool, tmp)
	return true
}

func (z *ZDD) setnode(n uint32, v uint16, lo, hi uint32) {
	z.pool[n] = node{v: v, lo: lo, hi: hi}
}

// AbsNode writes a node with absolute branch indexes at the next free slot
// and returns its index.
func (z *ZDD) AbsNode(v int, lo, hi uint32) uint32 {
	if z.error != nil || !z.grow() {
		return 0
	}
	n := z.freenode
	z.setnode(n, uint16(v), lo, hi)
	z.freenode++
	z.produced++
	return n
}

// AddNode writes a node at the next free slot, translating branch offsets: 0
// means FALSE, -1 means TRUE, and any other offset k addresses the node k
// slots past the one being created. The convention suits combinators that
// emit a straight-line spine and patch edges afterwards.
func (z *ZDD) AddNode(v int, offlo, offhi int) uint32 {
	if z.error != nil || !z.grow() {
		return 0
	}
	n := z.freenode
	adjust := func(off int) uint32 {
		switch off {
		case 0:
			return 0
		case -1:
			return 1
		}
		return n + uint32(off)
	}
	z.setnode(n, uint16(v), adjust(offlo), adjust(offhi))
	z.freenode++
	z.produced++
	return n
}

// swap exchanges the contents of two pool slots and rewrites every edge in
// the live region that referenced either one. Only used to move a chosen root
// onto a stack mark.
func (z *ZDD) swap(x, y uint32) {
	z.pool[x], z.pool[y] = z.pool[y], z.pool[x]
	for i := uint32(2); i < z.freenode; i++ {
		if z.pool[i].lo == x {
			z.pool[i].lo = y
		} else if z.pool[i].lo == y {
			z.pool[i].lo = x
		}
		if z.pool[i].hi == x {
			z.pool[i].hi = y
		} else if z.pool[i].hi == y {
			z.pool[i].hi = x
		}
	}
}
