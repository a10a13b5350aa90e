// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import "log"

// template is a transient vertex of the meld. While the meld runs it points
// at the trie entries of its two children; instantiation replaces that with
// the pool index of the real node. A nil lo marks an instantiated template.
type template struct {
	v      uint16
	lo, hi *MemoEntry[*template]
	n      uint32
}

// melder carries the two tables of one intersection: templates keyed by the
// ordered pair of operand nodes (8 bytes), and the uniqueness table keyed by
// (lo, hi, v) (12 bytes). Both live only for the duration of the call.
type melder struct {
	z        *ZDD
	tab      Memo[*template]
	nodeTab  Memo[uint32]
	bot, top *template
}

// Intersection replaces the two topmost ZDDs with their meld: the family of
// sets belonging to both. The result overwrites the lower operand's region
// and is reduced by construction. A result that collapses to a constant
// becomes the new top-of-stack entry as such. Returns the new root.
func (z *ZDD) Intersection() uint32 {
	if z.error != nil || len(z.stack) == 0 {
		return 0
	}
	if len(z.stack) == 1 {
		return z.stack[0]
	}
	z0 := z.stack[len(z.stack)-2]
	z1 := z.stack[len(z.stack)-1]
	z.stack = z.stack[:len(z.stack)-1]

	// Constant operands shortcut the meld: intersecting with FALSE is FALSE,
	// and intersecting with TRUE keeps at most the empty set.
	if z0 < 2 || z1 < 2 {
		var r uint32
		switch {
		case z0 == 0 || z1 == 0:
			r = 0
		case z0 == 1:
			r = z.emptyin(z1)
		default:
			r = z.emptyin(z0)
		}
		if z0 >= 2 {
			z.freenode = z0
		} else if z1 >= 2 {
			z.freenode = z1
		}
		z.stack[len(z.stack)-1] = r
		return r
	}

	m := &melder{
		z:   z,
		bot: &template{n: 0},
		top: &template{n: 1},
	}
	m.insert(z0, z1)

	// Overwrite the input trees.
	z.freenode = z0
	var buf [8]byte
	root := m.instantiate(m.tab.Get(key8(buf[:], z0, z1)))
	if root < 2 {
		z.stack[len(z.stack)-1] = root
		z.freenode = z0
		return root
	}
	if root < z0 {
		z.pool[z0] = z.pool[root]
	} else if root > z0 {
		z.swap(z0, root)
	}
	return z0
}

// emptyin follows the LO chain of n down to a constant: TRUE exactly when the
// family rooted at n contains the empty set.
func (z *ZDD) emptyin(n uint32) uint32 {
	for n > 1 {
		n = z.pool[n].lo
	}
	return n
}

// insert builds the meld template for the pair (k0, k1), reusing the entry
// when the pair was melded before. Intersection is symmetric, so the key is
// the ordered pair; this sharing helps a little on its own.
func (m *melder) insert(k0, k1 uint32) *MemoEntry[*template] {
	var buf [8]byte
	var key []byte
	if k0 < k1 {
		key = key8(buf[:], k0, k1)
	} else {
		key = key8(buf[:], k1, k0)
	}
	it, created := m.tab.Insert(key)
	if !created {
		return it
	}
	if k0 == 0 || k1 == 0 {
		it.Data = m.bot
		return it
	}
	if k0 == 1 && k1 == 1 {
		it.Data = m.top
		return it
	}
	// Melding with TRUE keeps at most the empty set, so only the LO chain of
	// the other operand matters; likewise a variable present in only one
	// operand can never be picked, so it is dropped by following its LO
	// branch.
	if k0 == 1 {
		it2 := m.insert(k0, m.z.pool[k1].lo)
		it.Data = it2.Data
		return it2
	}
	if k1 == 1 {
		it2 := m.insert(m.z.pool[k0].lo, k1)
		it.Data = it2.Data
		return it2
	}
	n0 := m.z.pool[k0]
	n1 := m.z.pool[k1]
	switch {
	case n0.v == n1.v:
		t := &template{v: n0.v}
		if n0.lo == n0.hi && n1.lo == n1.hi {
			t.lo = m.insert(n0.lo, n1.lo)
			t.hi = t.lo
		} else {
			t.lo = m.insert(n0.lo, n1.lo)
			t.hi = m.insert(n0.hi, n1.hi)
		}
		it.Data = t
		return it
	case n0.v < n1.v:
		it2 := m.insert(n0.lo, k1)
		it.Data = it2.Data
		return it2
	default:
		it2 := m.insert(k0, n1.lo)
		it.Data = it2.Data
		return it2
	}
}

// instantiate converts a template tree to real nodes, bottom-up. HI edges
// leading to FALSE vanish here: the template collapses to its LO child and no
// node is emitted, which is what keeps the output reduced.
func (m *melder) instantiate(it *MemoEntry[*template]) uint32 {
	t := it.Data
	if t.lo == nil {
		return t.n
	}
	lo := m.instantiate(t.lo)
	hi := m.instantiate(t.hi)
	if hi == 0 {
		t.lo, t.hi = nil, nil
		t.n = lo
		return lo
	}
	r := m.getNode(t.v, lo, hi)
	t.lo, t.hi = nil, nil
	t.n = r
	return r
}

// getNode creates or returns the existing node representing !v ? lo : hi.
func (m *melder) getNode(v uint16, lo, hi uint32) uint32 {
	var buf [12]byte
	it, created := m.nodeTab.Insert(key12(buf[:], lo, hi, v))
	if created {
		it.Data = m.z.AbsNode(int(v), lo, hi)
		if _LOGLEVEL > 0 && m.z.freenode%100000 == 0 {
			log.Printf("freenode = %d\n", m.z.freenode)
		}
	}
	return it.Data
}
