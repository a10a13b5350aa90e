// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package zudd defines a concrete type for Zero-suppressed Decision Diagrams
(ZDD), a data structure used to efficiently represent families of subsets of a
fixed ground set {1, ..., V}, following the development in Knuth's TAOCP
Vol. 4A, sect. 7.1.4. Families with astronomically many members (10^29 and
beyond) routinely fit in a few hundred thousand nodes.

# Basics

An engine is created with New and holds a pool of nodes, a stack of ZDD
roots, and the size V of the ground set (set once with SetVmax). Every node
reference is a 32-bit index into the pool; index 0 is the constant FALSE (the
empty family) and index 1 is the constant TRUE (the family containing only
the empty set). A node (v, lo, hi) reads: if v is not in the set, continue at
lo, otherwise continue at hi. Along any path variables strictly increase, no
HI edge points to FALSE, and no two nodes carry the same (v, lo, hi) triple;
every ZDD the engine produces is reduced in this sense, with no
post-processing pass.

Construction is stack based, in the style of a calculator: combinators such
as ContainsExactly1 or OnePerInterval push a constraint ZDD, Intersection
replaces the two topmost entries with their meld, and queries such as Count,
Forall or Forlargest read the top of the stack. Push records the current
allocation point and Pop reclaims the whole region above it, so intermediate
results are discarded in constant time; there is no garbage collector and no
reference counting.

A typical session, counting the ways to cover a board with pieces:

	z := zudd.New()
	z.SetVmax(npieces)
	for _, cell := range cells {
		z.ContainsExactly1(cell.pieces)
		z.Intersection()
	}
	fmt.Println(z.Count())

# Memoization

The package exports Memo, the crit-bit trie the engine itself uses for its
uniqueness and template tables. Client code building ZDDs bottom-up (for
instance a frontier dynamic program over a grid graph) can use Memo to cache
state-keyed intermediate results and UniqueTable to keep the emitted nodes
reduced.

# Use of build tags

To unlock logging of some operations (engine errors, pool growth, allocation
progress during Intersection), compile with the build tag `debug`. Stats is
available in every build.

# Errors

The engine is fail-fast: violated invariants (pool exhaustion, a combinator
called with an infeasible cardinality, a malformed element list) poison the
engine with a sticky error. Combinators, node allocation, SetRoot,
Intersection and the queries do nothing afterwards (SetVmax, Forall,
Forlargest and PrintDot return the recorded error); Push, Pop, Root, Check,
Size, Dump and the node accessors do not consult it. Inspect the failure with
Error or Errored.
*/
package zudd
