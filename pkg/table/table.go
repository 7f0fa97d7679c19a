// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package table implements a lookup table for short byte signatures, such as
// the magic numbers found at the start of on-disk structures.
package table

// hashSpace is the number of distinct prefix hashes.
const hashSpace = 1 << 16

const (
	none uint8 = iota
	prefixMark
	keyMark
)

// PrefixTable maps byte signatures to values and finds every stored
// signature that is a prefix of some data.
//
// A compact hash of each signature prefix is marked in a fixed array, so a
// scan over data stops at the first byte no signature continues with.
// Hashes of long signatures may collide; the marks only prune the search and
// matches are always confirmed against the stored keys.
type PrefixTable[T any] struct {
	marks [hashSpace]uint8
	elems map[string]T
}

func New[T any]() *PrefixTable[T] {
	return &PrefixTable[T]{
		elems: make(map[string]T),
	}
}

func next(h uint16, b byte) uint16 {
	return (h << 2) + uint16(b)
}

// Insert stores v under key, replacing any previous value.
func (t *PrefixTable[T]) Insert(key []byte, v T) {
	var h uint16
	for _, b := range key {
		h = next(h, b)
		t.marks[h] = max(t.marks[h], prefixMark)
	}
	t.marks[h] = keyMark
	t.elems[string(key)] = v
}

func (t *PrefixTable[T]) Get(key []byte) (T, bool) {
	v, found := t.elems[string(key)]
	return v, found
}

// Walk calls onMatch, shortest first, for every stored key that is a prefix
// of data. It stops early when onMatch returns true.
func (t *PrefixTable[T]) Walk(data []byte, onMatch func(T) bool) {
	var h uint16
	for i, b := range data {
		h = next(h, b)

		switch t.marks[h] {
		case none:
			return
		case keyMark:
			if v, ok := t.elems[string(data[:i+1])]; ok && onMatch(v) {
				return
			}
		}
	}
}

// Match returns the value of the longest stored key that prefixes data.
func (t *PrefixTable[T]) Match(data []byte) (T, bool) {
	var (
		res   T
		found bool
	)
	t.Walk(data, func(v T) bool {
		res, found = v, true
		return false
	})
	return res, found
}

// Size returns the number of stored keys.
func (t *PrefixTable[T]) Size() int {
	return len(t.elems)
}
