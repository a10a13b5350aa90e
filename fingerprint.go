// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Fingerprint returns a canonical hash of the topmost ZDD, computed bottom-up
// over (v, lo, hi) with the children replaced by their own fingerprints.
// Reduced ZDDs are canonical for the family they encode, so two stack entries
// carry the same fingerprint exactly when they denote the same family, no
// matter where their nodes sit in the pool.
func (z *ZDD) Fingerprint() uint64 {
	if z.error != nil || len(z.stack) == 0 {
		return 0
	}
	memo := make(map[uint32]uint64)
	return z.fingerprint(z.stack[len(z.stack)-1], memo)
}

func (z *ZDD) fingerprint(n uint32, memo map[uint32]uint64) uint64 {
	if n <= 1 {
		return xxh3.Hash([]byte{byte(n)})
	}
	if h, ok := memo[n]; ok {
		return h
	}
	var buf [18]byte
	binary.LittleEndian.PutUint16(buf[0:], z.pool[n].v)
	binary.LittleEndian.PutUint64(buf[2:], z.fingerprint(z.pool[n].lo, memo))
	binary.LittleEndian.PutUint64(buf[10:], z.fingerprint(z.pool[n].hi, memo))
	h := xxh3.Hash(buf[:])
	memo[n] = h
	return h
}
