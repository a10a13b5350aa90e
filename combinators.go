// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

// Combinators build constraint ZDDs over the ground set {1, ..., vmax} and
// push them on the stack. Element lists must be strictly ascending. Every
// combinator emits already-reduced output: no HI edge to FALSE, no duplicate
// triple, strictly increasing variables. The delicate part is
// zero-suppression. When a constraint forbids the current variable we cannot
// emit a node whose HI branch is FALSE; instead the previous node is rerouted
// so that control continues down the LO side, which is why most builders
// stitch a main spine ("still feasible") to a shorter one ("constraint
// already settled").

// checkelems validates a combinator element list.
func (z *ZDD) checkelems(name string, a []int) bool {
	for i, v := range a {
		if v < 1 || v > int(z.vmax) {
			z.seterror("%s: element %d outside [1, %d]", name, v, z.vmax)
			return false
		}
		if i > 0 && a[i-1] >= v {
			z.seterror("%s: element list must be strictly ascending", name)
			return false
		}
	}
	return true
}

// setsentinel replaces the mark just pushed with a constant root.
func (z *ZDD) setsentinel(r uint32) {
	z.stack[len(z.stack)-1] = r
}

// Powerset pushes the ZDD of all 2^vmax subsets of the ground set and returns
// its root.
func (z *ZDD) Powerset() uint32 {
	if !z.vmaxcheck() {
		return 0
	}
	r := z.NextNode()
	z.Push()
	for v := 1; v < int(z.vmax); v++ {
		z.AddNode(v, 1, 1)
	}
	z.AddNode(int(z.vmax), -1, -1)
	return r
}

// ContainsNone pushes the ZDD of sets containing no element of a.
func (z *ZDD) ContainsNone(a []int) {
	if !z.vmaxcheck() || !z.checkelems("ContainsNone", a) {
		return
	}
	z.Push()
	i := 1
	v1 := -1
	if len(a) > 0 {
		v1 = a[0]
	}
	mark := z.NextNode()
	for v := 1; v <= int(z.vmax); v++ {
		if v == v1 {
			if i < len(a) {
				v1 = a[i]
				i++
			} else {
				v1 = -1
			}
		} else {
			z.AddNode(v, 1, 1)
		}
	}
	if z.NextNode() == mark {
		// Every variable is excluded; only the empty set remains.
		z.setsentinel(1)
		return
	}
	z.SetHilo(z.LastNode(), 1)
}

// ContainsAtLeast1 pushes the ZDD of sets containing at least one element of
// a. With an empty list no set qualifies and the result is the constant
// FALSE.
func (z *ZDD) ContainsAtLeast1(a []int) {
	if !z.vmaxcheck() || !z.checkelems("ContainsAtLeast1", a) {
		return
	}
	z.Push()
	if len(a) == 0 {
		z.setsentinel(0)
		return
	}
	// Start with the ZDD of all sets.
	n := z.LastNode()
	for v := 1; v < int(z.vmax); v++ {
		z.AddNode(v, 1, 1)
	}
	z.AddNode(int(z.vmax), -1, -1)

	// Construct a new branch for when elements of the list have not been
	// found yet.
	v := a[0]
	if len(a) == 1 {
		z.SetLo(n+uint32(v), 0)
		return
	}
	n1 := z.NextNode()
	z.SetLo(n+uint32(v), n1)
	v++
	for i := 1; i < len(a); i++ {
		v1 := a[i]
		for v <= v1 {
			z.AddNode(v, 1, 1)
			v++
		}
		z.SetHi(z.LastNode(), n+uint32(v))
	}
	z.SetLo(z.LastNode(), 0)
	if int(z.vmax) < v {
		z.SetHi(z.LastNode(), 1)
	}
}

// ContainsAtMost1 pushes the ZDD of sets containing at most one element of a.
func (z *ZDD) ContainsAtMost1(a []int) {
	if !z.vmaxcheck() || !z.checkelems("ContainsAtMost1", a) {
		return
	}
	z.Push()
	// Start with the ZDD of all sets.
	n := z.LastNode()
	for v := 1; v < int(z.vmax); v++ {
		z.AddNode(v, 1, 1)
	}
	z.AddNode(int(z.vmax), -1, -1)
	// If there is nothing or only one element in the list then we are done.
	if len(a) <= 1 {
		return
	}

	// At this point there are at least two elements in the list. Construct a
	// new branch for when an element of the list has been detected: branch off
	// at the first element, hop over all remaining elements, then rejoin.
	v := a[0]
	n1 := z.NextNode()
	z.SetHi(n+uint32(v), n1)
	v++
	last := uint32(0)
	for i := 1; i < len(a); i++ {
		v1 := a[i]
		for v < v1 {
			last = z.AddNode(v, 1, 1)
			v++
		}
		z.SetHi(n+uint32(v), z.NextNode())
		v++
	}
	// v is now one past the last element of the list.

	// The HI edges of the last element of the list, and more generally of the
	// last consecutive run in the list, must be corrected.
	for v1 := a[len(a)-1]; z.Hi(n+uint32(v1)) == z.NextNode(); v1-- {
		z.SetHi(n+uint32(v1), n+uint32(v))
	}

	if int(z.vmax) < v {
		// Special case: the list ends at vmax. Especially troublesome when a
		// run such as vmax-2, vmax-1, vmax sits at the end.
		for vv := int(z.vmax); z.Hi(n+uint32(vv)) > n+uint32(z.vmax); vv-- {
			z.SetHi(n+uint32(vv), 1)
		}
		// Only needed when the branch received any nodes, but harmless
		// otherwise since the last node added was (!vmax ? 1 : 1).
		z.SetHilo(z.LastNode(), 1)
		return
	}

	// Rejoin the main branch.
	if last != 0 {
		z.SetHilo(last, n+uint32(v))
	}
}

// ContainsExactly1 pushes the ZDD of sets containing exactly one element of
// a. Zero suppression means consecutive runs in the list need care: once an
// element of a run is picked, the HI edge must hop over the remainder of the
// run.
func (z *ZDD) ContainsExactly1(a []int) {
	if !z.vmaxcheck() || !z.checkelems("ContainsExactly1", a) {
		return
	}
	if len(a) == 0 {
		z.seterror("ContainsExactly1: empty element list")
		return
	}
	z.Push()
	v := 1
	i := 0
	for v <= int(z.vmax) {
		switch {
		case i >= len(a):
			// Don't care about the rest of the elements.
			z.AddNode(v, 1, 1)
			v++
		case v == a[i]:
			// Find the length of the consecutive run.
			k := 0
			for i+k < len(a) && v+k == a[i+k] {
				k++
			}
			n := z.NextNode()
			var h uint32
			if v+k > int(z.vmax) {
				h = 1
			} else {
				h = n + uint32(k)
				if len(a) != i+k {
					h++
				}
			}
			if i >= 1 {
				// In the middle of the list: fix the previous node. We reach
				// it once an element has already been seen, in which case the
				// edges must bypass the entire run, i.e. the whole run must
				// stay out of the set.
				z.SetHilo(n-1, h)
			}
			i += k
			k += v
			for v < k {
				// On seeing an element, bypass the rest of the run;
				// otherwise keep looking for the next element of the run.
				z.AddNode(v, 1, 1)
				v++
				z.SetHi(z.LastNode(), h)
			}
			if len(a) == i {
				// If none of the list showed up we must fail; otherwise
				// onwards, through the remaining elements to the end.
				z.SetLo(z.LastNode(), 0)
				z.SetHi(z.LastNode(), h)
			}
		case i == 0:
			// Membership of elements before the list does not matter.
			z.AddNode(v, 1, 1)
			v++
		default:
			// Two interleaved spines: still searching, and already settled.
			z.AddNode(v, 2, 2)
			z.AddNode(v, 2, 2)
			v++
		}
	}
	// Fix the last node.
	last := z.LastNode()
	if z.Lo(last) > last {
		z.SetLo(last, 1)
	}
	if z.Hi(last) > last {
		z.SetHi(last, 1)
	}
}

// ContainsExactlyN pushes the ZDD of sets containing exactly n elements of a.
// Asking for more elements than the list holds is a fatal error.
func (z *ZDD) ContainsExactlyN(n int, a []int) {
	if !z.vmaxcheck() || !z.checkelems("ContainsExactlyN", a) {
		return
	}
	if n < 0 || n > len(a) {
		z.seterror("ContainsExactlyN: need %d elements from a list of %d", n, len(a))
		return
	}
	z.Push()
	vmax := int(z.vmax)
	tab := make([][]uint32, len(a))
	for i := range tab {
		tab[i] = make([]uint32, n+1)
	}
	var recurse func(i, n int) uint32
	recurse = func(i, n int) uint32 {
		v := 1
		if i != -1 {
			v = a[i] + 1
		}
		var root uint32
		if i == len(a)-1 {
			// n is irrelevant once the end of the list is reached: no branch
			// ever asks for more picks than there are elements left.
			if i != -1 && tab[i][0] != 0 {
				return tab[i][0]
			}
			if vmax < v {
				root = 1
			} else {
				root = z.NextNode()
				for v < vmax {
					z.AddNode(v, 1, 1)
					v++
				}
				z.AddNode(v, -1, -1)
			}
			if i != -1 {
				tab[i][0] = root
			}
			return root
		}
		if i != -1 && tab[i][n] != 0 {
			return tab[i][n]
		}
		v1 := a[i+1]
		isEmpty := v == v1
		root = z.NextNode()
		for v < v1 {
			z.AddNode(v, 1, 1)
			v++
		}
		if n == 0 {
			if isEmpty {
				root = recurse(i+1, 0)
			} else {
				z.SetHilo(z.LastNode(), recurse(i+1, 0))
			}
			if i != -1 {
				tab[i][0] = root
			}
			return root
		}
		last := z.AddNode(v, 0, 0)
		z.SetHi(last, recurse(i+1, n-1))
		if n < len(a)-i-1 {
			z.SetLo(last, recurse(i+1, n))
		}
		if i != -1 {
			tab[i][n] = root
		}
		return root
	}
	if root := recurse(-1, n); root < 2 {
		z.setsentinel(root)
	}
}

// OnePerInterval pushes the ZDD of sets containing exactly one element in
// each interval [list[k], list[k+1]) of the partition of {1, ..., vmax}
// described by list. The list must start at 1; an implied vmax+1 closes the
// last interval.
func (z *ZDD) OnePerInterval(list []int) {
	if !z.vmaxcheck() || !z.checkelems("OnePerInterval", list) {
		return
	}
	if len(list) == 0 || list[0] != 1 {
		z.seterror("OnePerInterval: interval list must start at 1")
		return
	}
	z.Push()
	i := 0
	n := z.LastNode()
	get := func() int {
		i++
		if i < len(list) {
			return list[i]
		}
		return -1
	}
	target := get()
	for v := 1; v <= int(z.vmax); v++ {
		if target > 0 {
			z.AbsNode(v, n+uint32(v)+1, n+uint32(target))
		} else {
			z.AbsNode(v, n+uint32(v)+1, 1)
		}
		if v == target-1 || v == int(z.vmax) {
			z.SetLo(z.LastNode(), 0)
			target = get()
		}
	}
}
