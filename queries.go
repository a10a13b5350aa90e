// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"fmt"
	"math/big"
)

// Count returns the number of sets in the family denoted by the topmost ZDD.
// We return a result using arbitrary-precision arithmetic: the count is often
// far beyond 64 bits while the diagram stays small. The per-node results are
// memoized for the duration of the call.
func (z *ZDD) Count() *big.Int {
	if z.error != nil || len(z.stack) == 0 {
		return big.NewInt(0)
	}
	memo := make(map[uint32]*big.Int)
	return z.count(z.stack[len(z.stack)-1], memo)
}

func (z *ZDD) count(n uint32, memo map[uint32]*big.Int) *big.Int {
	if n <= 1 {
		return big.NewInt(int64(n))
	}
	if c, ok := memo[n]; ok {
		return c
	}
	c := new(big.Int).Add(z.count(z.pool[n].lo, memo), z.count(z.pool[n].hi, memo))
	memo[n] = c
	return c
}

type sums1 struct {
	c *big.Int // number of sets passing through the node
	s *big.Int // sum of their sizes
}

// Count1 returns the number of sets in the topmost family together with the
// sum of their sizes. Every set reached through a HI edge contains that
// node's variable, hence the extra count term on the HI side.
func (z *ZDD) Count1() (*big.Int, *big.Int) {
	if z.error != nil || len(z.stack) == 0 {
		return big.NewInt(0), big.NewInt(0)
	}
	memo := make(map[uint32]sums1)
	res := z.count1(z.stack[len(z.stack)-1], memo)
	return res.c, res.s
}

func (z *ZDD) count1(n uint32, memo map[uint32]sums1) sums1 {
	if n <= 1 {
		return sums1{c: big.NewInt(int64(n)), s: big.NewInt(0)}
	}
	if r, ok := memo[n]; ok {
		return r
	}
	lo := z.count1(z.pool[n].lo, memo)
	hi := z.count1(z.pool[n].hi, memo)
	r := sums1{
		c: new(big.Int).Add(lo.c, hi.c),
		s: new(big.Int).Add(lo.s, hi.s),
	}
	r.s.Add(r.s, hi.c)
	memo[n] = r
	return r
}

type sums2 struct {
	c  *big.Int
	s  *big.Int
	s2 *big.Int // sum of squared sizes
}

// Count2 returns the number of sets in the topmost family, the sum of their
// sizes, and the sum of their squared sizes. Adding the variable on the HI
// side turns |S|^2 into (|S|+1)^2, hence the 2s+c correction.
func (z *ZDD) Count2() (*big.Int, *big.Int, *big.Int) {
	if z.error != nil || len(z.stack) == 0 {
		return big.NewInt(0), big.NewInt(0), big.NewInt(0)
	}
	memo := make(map[uint32]sums2)
	res := z.count2(z.stack[len(z.stack)-1], memo)
	return res.c, res.s, res.s2
}

func (z *ZDD) count2(n uint32, memo map[uint32]sums2) sums2 {
	if n <= 1 {
		return sums2{c: big.NewInt(int64(n)), s: big.NewInt(0), s2: big.NewInt(0)}
	}
	if r, ok := memo[n]; ok {
		return r
	}
	lo := z.count2(z.pool[n].lo, memo)
	hi := z.count2(z.pool[n].hi, memo)
	r := sums2{
		c:  new(big.Int).Add(lo.c, hi.c),
		s:  new(big.Int).Add(lo.s, hi.s),
		s2: new(big.Int).Add(lo.s2, hi.s2),
	}
	r.s.Add(r.s, hi.c)
	r.s2.Add(r.s2, new(big.Int).Lsh(hi.s, 1))
	r.s2.Add(r.s2, hi.c)
	memo[n] = r
	return r
}

// Forall calls fn on every set of the topmost family, as a sorted element
// list, visiting members without the branch variable before members with it.
// The slice is reused between calls; fn must copy it to keep it. An error
// from fn stops the walk and is returned. Only usable on finite families,
// which is every family the engine can represent.
func (z *ZDD) Forall(fn func([]int) error) error {
	if z.error != nil {
		return z.error
	}
	if len(z.stack) == 0 {
		return fmt.Errorf("Forall called on an empty stack")
	}
	elems := make([]int, 0, int(z.vmax))
	return z.forall(z.stack[len(z.stack)-1], elems, fn)
}

func (z *ZDD) forall(n uint32, elems []int, fn func([]int) error) error {
	if n == 0 {
		return nil
	}
	if n == 1 {
		return fn(elems)
	}
	if err := z.forall(z.pool[n].lo, elems, fn); err != nil {
		return err
	}
	return z.forall(z.pool[n].hi, append(elems, int(z.pool[n].v)), fn)
}

type maxinfo struct {
	card int
	ok   bool // false below FALSE: no set down there at all
}

// Forlargest calls fn once, on a maximum-cardinality member of the topmost
// family; ties are broken toward the LO branch. fn is not called when the
// family is empty.
func (z *ZDD) Forlargest(fn func([]int) error) error {
	if z.error != nil {
		return z.error
	}
	if len(z.stack) == 0 {
		return fmt.Errorf("Forlargest called on an empty stack")
	}
	r := z.stack[len(z.stack)-1]
	if r == 0 {
		return nil
	}
	memo := make(map[uint32]maxinfo)
	best := z.largest(r, memo)
	if !best.ok {
		return nil
	}
	elems := make([]int, 0, best.card)
	for n := r; n > 1; {
		lo := z.largest(z.pool[n].lo, memo)
		hi := z.largest(z.pool[n].hi, memo)
		if hi.ok && (!lo.ok || hi.card+1 > lo.card) {
			elems = append(elems, int(z.pool[n].v))
			n = z.pool[n].hi
		} else {
			n = z.pool[n].lo
		}
	}
	return fn(elems)
}

func (z *ZDD) largest(n uint32, memo map[uint32]maxinfo) maxinfo {
	if n == 0 {
		return maxinfo{}
	}
	if n == 1 {
		return maxinfo{ok: true}
	}
	if r, ok := memo[n]; ok {
		return r
	}
	lo := z.largest(z.pool[n].lo, memo)
	hi := z.largest(z.pool[n].hi, memo)
	var r maxinfo
	switch {
	case lo.ok && hi.ok:
		if hi.card+1 > lo.card {
			r = maxinfo{card: hi.card + 1, ok: true}
		} else {
			r = lo
		}
	case hi.ok:
		r = maxinfo{card: hi.card + 1, ok: true}
	default:
		r = lo
	}
	memo[n] = r
	return r
}

// Check scans the region of the topmost ZDD and reports violations of the
// reduction invariants: duplicate (v, lo, hi) triples, HI edges to FALSE, and
// self-loops. A reduced ZDD reports none and Check returns nil.
func (z *ZDD) Check() error {
	if len(z.stack) == 0 {
		return nil
	}
	r := z.stack[len(z.stack)-1]
	if r < 2 {
		return nil
	}
	var nodeTab Memo[uint32]
	var dups, hifalse, loops int
	var buf [12]byte
	for i := r; i < z.freenode; i++ {
		it, created := nodeTab.Insert(key12(buf[:], z.pool[i].lo, z.pool[i].hi, z.pool[i].v))
		if created {
			it.Data = i
		} else {
			dups++
		}
		if z.pool[i].hi == 0 {
			hifalse++
		}
		if z.pool[i].lo == i || z.pool[i].hi == i {
			loops++
		}
	}
	if dups == 0 && hifalse == 0 && loops == 0 {
		return nil
	}
	return fmt.Errorf("check: %d duplicate triples, %d HI edges to FALSE, %d self-loops in [%d, %d)", dups, hifalse, loops, r, z.freenode)
}
