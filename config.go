// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

// configs is used to store the values of different parameters of the engine.
type configs struct {
	poolsize    int // initial number of slots in the node pool
	maxpoolsize int // maximum number of slots; reaching it is fatal
}

func makeconfigs() *configs {
	return &configs{
		poolsize:    _DEFAULTPOOLSIZE,
		maxpoolsize: _DEFAULTMAXPOOLSIZE,
	}
}

// Poolsize is a configuration option (function). Used as a parameter in New it
// sets the initial number of slots in the node pool. The pool grows on demand,
// so this is only a sizing hint; values of 2 or less (no room beyond the two
// constant slots) are ignored.
func Poolsize(size int) func(*configs) {
	return func(c *configs) {
		if size > 2 {
			c.poolsize = size
		}
	}
}

// Maxpoolsize is a configuration option (function). Used as a parameter in New
// it caps the number of slots the pool may grow to. An operation trying to
// allocate past this limit poisons the engine with a fatal error. The default
// is 1 << 24 slots.
func Maxpoolsize(size int) func(*configs) {
	return func(c *configs) {
		if size > 2 {
			c.maxpoolsize = size
		}
	}
}
