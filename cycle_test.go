// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd_test

// Count simple cycles in n x n grid graphs with a frontier dynamic program
// built on top of the engine: states describe the partial matching across the
// active edge frontier, Memo caches states per edge, and UniqueTable keeps
// the emitted ZDD reduced. The counts include the empty subgraph, so an n x n
// grid yields one more than the number of proper cycles (2x2: 2, 3x3: 14,
// 8x8: 603841648932, matching Knuth).

import (
	"math/big"
	"testing"

	"github.com/dalzilio/zudd"
	"github.com/stretchr/testify/require"
)

// gridCycles builds the ZDD of all simple loops of the n x n grid graph and
// leaves it on the stack.
func gridCycles(t *testing.T, z *zudd.ZDD, max int) {
	// Label the vertices of the grid graph along antidiagonals, so that the
	// frontier of any edge is a contiguous vertex range. For max = 3:
	//   1 2 4
	//   3 5 7
	//   6 8 9
	vtab := make([][]int, max)
	for i := range vtab {
		vtab[i] = make([]int, max)
	}
	rtab := make([]int, max*max+1)
	ctab := make([]int, max*max+1)
	v := 1
	i, j := 0, 0
	for {
		rtab[v] = i
		ctab[v] = j
		vtab[i][j] = v
		v++
		if i == max-1 {
			if j == max-1 {
				break
			}
			i = j + 1
			j = max - 1
		} else if j == 0 {
			j = i + 1
			i = 0
		} else {
			i++
			j--
		}
	}

	require.NoError(t, z.SetVmax(max*(max-1)*2))
	vmax := z.Vmax()

	// Arcs go from au to av, ordered by source.
	au := make([]int, vmax+1)
	av := make([]int, vmax+1)
	e := 1
	for v := 1; v <= max*max; v++ {
		if ctab[v] != max-1 {
			au[e] = v
			av[e] = vtab[rtab[v]][ctab[v]+1]
			e++
		}
		if rtab[v] != max-1 {
			au[e] = v
			av[e] = vtab[rtab[v]+1][ctab[v]]
			e++
		}
	}

	unique := zudd.NewUniqueTable(z)

	// By arc e we have already considered all arcs with smaller sources, so
	// nothing we do from now on can affect their state; and av[e] is at least
	// as large as every target considered so far, so our choices cannot
	// influence larger targets either. The state therefore only covers the
	// vertices au[e], ..., av[e]:
	//   -1 means two chosen edges already meet this vertex
	//    n means the other end of its path is n + au[e] - 1
	// (a vertex not yet on any chosen edge is its own other end). All states
	// cached at one edge have the same frontier width, so they make uniform
	// fixed-length keys; -1 becomes 0xff in the key.
	cache := make([]zudd.Memo[uint32], vmax+1)

	var recurse func(e int, state []int8, start int) uint32
	recurse = func(e int, state []int8, start int) uint32 {
		var it *zudd.MemoEntry[uint32]
		memoize := func(n uint32) uint32 {
			if it != nil {
				it.Data = n
			}
			return n
		}
		newstate := make([]int8, 0, max+1)
		if state == nil {
			// First call: the frontier is the two ends of arc 1.
			newstate = append(newstate, 1, 2)
		} else {
			key := make([]byte, len(state))
			for i, c := range state {
				key[i] = byte(c)
			}
			var created bool
			it, created = cache[e].Insert(key)
			if !created {
				return it.Data
			}
			// The part of the state behind the new source can no longer be
			// touched: any vertex still dangling there can never join a loop.
			j := au[e] - start
			require.LessOrEqual(t, j, len(state)-1, "bad vertex or edge numbering")
			for i := 0; i < j; i++ {
				otherend := int(state[i])
				if otherend != -1 && otherend-1 != i {
					return memoize(0)
				}
			}
			// Copy over the part of the state that is still relevant.
			for ; j < len(state); j++ {
				if state[j] < 0 {
					newstate = append(newstate, -1)
				} else {
					newstate = append(newstate, state[j]+int8(start-au[e]))
				}
			}
			// Add the vertices that now matter.
			for w := j + start; w <= av[e]; w++ {
				newstate = append(newstate, int8(w-au[e]+1))
			}
		}

		// At the last edge we either have the empty graph or we need this
		// very edge to finish the loop: !V ? FALSE : TRUE, an elementary
		// family.
		if e == vmax {
			if newstate[0] == 1 {
				return memoize(1)
			}
			return memoize(unique.Node(e, 0, 1))
		}

		// The case where we do not pick the current edge.
		lo := recurse(e+1, newstate, au[e])

		// Before recursing the other case, look at the two endpoints of the
		// current edge, conveniently sitting at the two ends of the state.
		hi := uint32(1)
		u := int(newstate[0])
		w := int(newstate[len(newstate)-1])
		if u == -1 || w == -1 {
			// An endpoint of the current edge is already busy.
			hi = 0
		} else if u+au[e]-1 == av[e] {
			// Picking the edge closes a loop; good as long as nothing else
			// dangles.
			for i := 1; i < len(newstate)-1; i++ {
				if newstate[i] != -1 && int(newstate[i]) != i+1 {
					hi = 0
					break
				}
			}
		} else {
			// Pick the current edge: both endpoints get busy and their other
			// ends join up.
			newstate[0] = -1
			newstate[len(newstate)-1] = -1
			newstate[w-1] = int8(u)
			newstate[u-1] = int8(w)
			hi = recurse(e+1, newstate, au[e])
		}
		// Compress HI -> FALSE on the fly.
		if hi == 0 {
			return memoize(lo)
		}
		return memoize(unique.Node(e, lo, hi))
	}

	z.Push()
	z.SetRoot(recurse(1, nil, 0))
	unique.Clear()
}

func TestGridCycles(t *testing.T) {
	expected := map[int]string{
		2: "2",
		3: "14",
		4: "214",
		5: "9350",
		6: "1222364",
		8: "603841648932",
	}
	for n := 2; n <= 8; n++ {
		want, ok := expected[n]
		if !ok {
			continue
		}
		if n > 6 && testing.Short() {
			continue
		}
		z := zudd.New()
		gridCycles(t, z, n)
		require.NoError(t, z.Check(), "n = %d", n)
		answer, _ := new(big.Int).SetString(want, 10)
		require.Equal(t, 0, z.Count().Cmp(answer), "n = %d", n)
		z.Pop()
	}
}
