// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"errors"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

// Count, Count1 and Count2 against a walk of the family.
func TestCountMoments(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 100; round++ {
		v := 1 + r.Intn(10)
		a := randElems(r, v)

		z := New()
		require.NoError(t, z.SetVmax(v))
		z.ContainsAtMost1(a)

		var nsets, sum, sumsq int64
		err := z.Forall(func(elems []int) error {
			nsets++
			sum += int64(len(elems))
			sumsq += int64(len(elems)) * int64(len(elems))
			return nil
		})
		require.NoError(t, err)

		c := z.Count()
		require.Equal(t, 0, c.Cmp(big.NewInt(nsets)))

		c, s := z.Count1()
		require.Equal(t, 0, c.Cmp(big.NewInt(nsets)))
		require.Equal(t, 0, s.Cmp(big.NewInt(sum)))

		c, s, s2 := z.Count2()
		require.Equal(t, 0, c.Cmp(big.NewInt(nsets)))
		require.Equal(t, 0, s.Cmp(big.NewInt(sum)))
		require.Equal(t, 0, s2.Cmp(big.NewInt(sumsq)))
	}
}

func TestForallStops(t *testing.T) {
	z := New()
	require.NoError(t, z.SetVmax(5))
	z.Powerset()
	visited := 0
	err := z.Forall(func(elems []int) error {
		visited++
		if visited == 7 {
			return errStop
		}
		return nil
	})
	require.ErrorIs(t, err, errStop)
	require.Equal(t, 7, visited)
}

var errStop = errors.New("stop")

func TestForlargest(t *testing.T) {
	z := New()
	require.NoError(t, z.SetVmax(4))
	z.ContainsAtMost1([]int{2, 3})
	var got []int
	err := z.Forlargest(func(elems []int) error {
		got = append([]int(nil), elems...)
		return nil
	})
	require.NoError(t, err)
	// Largest members have three elements; the LO tie-break keeps the later
	// of the two optional elements.
	require.Equal(t, []int{1, 3, 4}, got)

	// Maximum cardinality agrees with a walk, on random families.
	r := rand.New(rand.NewSource(8))
	for round := 0; round < 50; round++ {
		v := 1 + r.Intn(10)
		a := randElems(r, v)
		w := New()
		require.NoError(t, w.SetVmax(v))
		w.ContainsAtMost1(a)
		w.ContainsAtLeast1(a)
		w.Intersection()
		if w.Root() == 0 {
			require.NoError(t, w.Forlargest(func([]int) error {
				t.Fatal("callback on an empty family")
				return nil
			}))
			continue
		}
		best := -1
		require.NoError(t, w.Forall(func(elems []int) error {
			if len(elems) > best {
				best = len(elems)
			}
			return nil
		}))
		var card int
		require.NoError(t, w.Forlargest(func(elems []int) error {
			card = len(elems)
			require.True(t, slices.IsSorted(elems))
			return nil
		}))
		require.Equal(t, best, card)
	}
}

func TestForlargestEmptyFamily(t *testing.T) {
	z := New()
	require.NoError(t, z.SetVmax(3))
	z.ContainsAtLeast1(nil)
	require.NoError(t, z.Forlargest(func([]int) error {
		t.Fatal("callback on an empty family")
		return nil
	}))
}

func TestCheckCatchesViolations(t *testing.T) {
	z := New()
	require.NoError(t, z.SetVmax(3))

	// HI edge to FALSE.
	z.Push()
	z.AbsNode(1, 1, 0)
	err := z.Check()
	require.Error(t, err)
	require.Contains(t, err.Error(), "HI edges to FALSE")
	z.Pop()

	// Duplicate triple.
	z.Push()
	z.AbsNode(2, 0, 1)
	z.AbsNode(1, 2, 2)
	z.AbsNode(2, 0, 1)
	err = z.Check()
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate")
	z.Pop()

	// Self-loop.
	z.Push()
	n := z.AbsNode(1, 0, 1)
	z.SetLo(n, n)
	err = z.Check()
	require.Error(t, err)
	require.Contains(t, err.Error(), "self-loops")
	z.Pop()
}

func TestSizeDumpStats(t *testing.T) {
	z := New()
	require.NoError(t, z.SetVmax(3))
	z.Powerset()
	require.Equal(t, 5, z.Size())

	dump := z.Dump()
	require.Equal(t, 3, strings.Count(dump, "\n"))
	require.Contains(t, dump, "I2:")

	stats := z.Stats()
	require.Contains(t, stats, "Vmax:")
	require.Contains(t, stats, "Stack:")

	var dot strings.Builder
	require.NoError(t, z.PrintDot(&dot))
	require.Contains(t, dot.String(), "digraph G {")
}

func TestPopReclaims(t *testing.T) {
	z := New()
	require.NoError(t, z.SetVmax(6))
	z.Powerset()
	mark2 := z.NextNode()
	z.ContainsAtMost1([]int{2, 4})
	z.Pop()
	require.Equal(t, mark2, z.NextNode())
	z.Pop()
	require.Equal(t, uint32(2), z.NextNode())
}

func TestSetVmaxGuards(t *testing.T) {
	z := New()
	require.Error(t, z.SetVmax(0))

	z = New()
	require.Error(t, z.SetVmax(1<<16))

	z = New()
	require.NoError(t, z.SetVmax(4))
	z.Powerset()
	require.Error(t, z.SetVmax(5))

	z = New()
	require.NoError(t, z.SetVmax(4))
	z.Powerset()
	z.Pop()
	require.NoError(t, z.SetVmax(6))
}

func TestPoolExhaustion(t *testing.T) {
	z := New(Poolsize(8), Maxpoolsize(8))
	require.NoError(t, z.SetVmax(100))
	z.Powerset()
	require.True(t, z.Errored())
	require.Contains(t, z.Error(), "pool is full")
}
