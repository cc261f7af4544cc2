package laxjson

import "github.com/cespare/xxhash/v2"

// dictIndexThreshold is the entry count at which a dictionary switches from
// linear scanning to a hash index. Small dictionaries stay un-indexed: a
// short scan beats hashing plus a probe for a handful of entries.
const dictIndexThreshold = 16

type dictEntry struct {
	name  string
	value *Value
}

// dict is the storage behind a dictionary value: an insertion-ordered entry
// list plus an optional open-addressing index mapping name hash to entry
// position. The index is nil below dictIndexThreshold and is rebuilt from
// scratch after any removal so it stays consistent with the compacted
// entry positions.
type dict struct {
	entries []dictEntry

	// index holds entry positions open-addressed by name hash, or -1 for
	// an empty slot. len(index) is always a power of two.
	index []int32
}

// find returns the insertion position of name, or -1.
func (d *dict) find(name string) int {
	if d.index == nil {
		for i := range d.entries {
			if d.entries[i].name == name {
				return i
			}
		}
		return -1
	}
	mask := uint64(len(d.index) - 1)
	slot := xxhash.Sum64String(name) & mask
	for {
		pos := d.index[slot]
		if pos < 0 {
			return -1
		}
		if d.entries[pos].name == name {
			return int(pos)
		}
		slot = (slot + 1) & mask
	}
}

// set adds a new entry or replaces the value of an existing one in place.
func (d *dict) set(name string, v *Value) {
	if i := d.find(name); i >= 0 {
		d.entries[i].value = v
		return
	}
	d.entries = append(d.entries, dictEntry{name: name, value: v})
	if len(d.entries) < dictIndexThreshold {
		return
	}
	if d.index == nil || len(d.entries)*2 > len(d.index) {
		d.rebuildIndex()
		return
	}
	d.indexInsert(name, int32(len(d.entries)-1))
}

// remove deletes the entry for name, shifting later entries left. The index
// is rebuilt from the remaining entries, or dropped when the count falls
// back below the threshold.
func (d *dict) remove(name string) bool {
	i := d.find(name)
	if i < 0 {
		return false
	}
	copy(d.entries[i:], d.entries[i+1:])
	d.entries[len(d.entries)-1] = dictEntry{}
	d.entries = d.entries[:len(d.entries)-1]
	if len(d.entries) < dictIndexThreshold {
		d.index = nil
	} else {
		d.rebuildIndex()
	}
	return true
}

func (d *dict) clear() {
	d.entries = d.entries[:0]
	d.index = nil
}

func (d *dict) rebuildIndex() {
	size := 4
	for size < len(d.entries)*2 {
		size <<= 1
	}
	d.index = make([]int32, size)
	for i := range d.index {
		d.index[i] = -1
	}
	for i := range d.entries {
		d.indexInsert(d.entries[i].name, int32(i))
	}
}

func (d *dict) indexInsert(name string, pos int32) {
	mask := uint64(len(d.index) - 1)
	slot := xxhash.Sum64String(name) & mask
	for d.index[slot] >= 0 {
		slot = (slot + 1) & mask
	}
	d.index[slot] = pos
}
