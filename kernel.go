// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

// _MAXVAR is the maximal number of variables in the ground set. Variables are
// stored on 16 bits and numbered from 1. The all-ones value is also the one
// stored on the two constant nodes; constants are told apart by their pool
// index (0 or 1), never by their variable, so the shared value is harmless.
const _MAXVAR int = 0xFFFF

// _DEFAULTPOOLSIZE is the initial number of slots in the node pool. The pool
// grows geometrically up to the configured maximum, so the initial value only
// matters for very small sessions.
const _DEFAULTPOOLSIZE int = 1 << 16

// _DEFAULTMAXPOOLSIZE is the default cap on the node pool (16M nodes).
// Exhausting it is a fatal engine error.
const _DEFAULTMAXPOOLSIZE int = 1 << 24

// vnone is the variable stored on the two constant nodes.
const vnone uint16 = 0xFFFF

// node is one slot of the pool. Children are pool indexes: 0 is the constant
// FALSE (the empty family), 1 the constant TRUE (the family {∅}).
type node struct {
	v  uint16 // variable in [1, vmax]; vnone on constants
	lo uint32 // branch taken when v is absent from the set
	hi uint32 // branch taken when v is a member of the set
}

// ZDD is a Zero-suppressed Decision Diagram engine: a pool of nodes together
// with a stack of ZDD roots. Allocation is a bump pointer (freenode) and whole
// regions are reclaimed by Pop; individual nodes are never freed.
type ZDD struct {
	pool     []node
	freenode uint32   // index of the first unused slot
	stack    []uint32 // start mark of each ZDD region; entries < 2 are sentinel roots
	vmax     uint16   // size of the ground set
	vmaxset  bool
	produced int // total number of slots ever written, across reclaims
	configs
	error error
}

// New returns a new ZDD engine with an empty stack and no variables; call
// SetVmax before building anything. It is possible to set optional
// (configuration) parameters, such as the initial size of the node pool
// (Poolsize) or the cap on its growth (Maxpoolsize), using configs functions.
func New(options ...func(*configs)) *ZDD {
	config := makeconfigs()
	for _, f := range options {
		f(config)
	}
	z := &ZDD{configs: *config}
	z.pool = make([]node, config.poolsize)
	z.pool[0] = node{v: vnone, lo: 0, hi: 0}
	z.pool[1] = node{v: vnone, lo: 1, hi: 1}
	z.freenode = 2
	z.stack = make([]uint32, 0, 16)
	return z
}

// SetVmax sets the size of the ground set {1, ..., v}. It can only be called
// while the stack is empty: the ZDDs built so far would otherwise silently
// change meaning.
func (z *ZDD) SetVmax(v int) error {
	if z.error != nil {
		return z.error
	}
	if v < 1 || v > _MAXVAR {
		z.seterror("bad number of variables (%d) in SetVmax", v)
		return z.error
	}
	if len(z.stack) != 0 {
		z.seterror("SetVmax(%d) called with %d entries on the stack", v, len(z.stack))
		return z.error
	}
	z.vmax = uint16(v)
	z.vmaxset = true
	return nil
}

// Vmax returns the size of the ground set, or 0 if SetVmax has not been
// called yet.
func (z *ZDD) Vmax() int {
	if !z.vmaxset {
		return 0
	}
	return int(z.vmax)
}

// vmaxcheck poisons the engine when a combinator runs before SetVmax.
func (z *ZDD) vmaxcheck() bool {
	if z.error != nil {
		return false
	}
	if !z.vmaxset {
		z.seterror("vmax not set")
		return false
	}
	return true
}
