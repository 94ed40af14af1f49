package record

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryogrid/recordstore/types"
)

func TestScanOverEmptyFileIsImmediatelyAtEnd(t *testing.T) {
	fh := newTestFile(t, 2, 8, 4)
	s := NewScan(fh)
	assert.True(t, s.IsEnd())
}

func TestScanSkipsFullyDeletedPages(t *testing.T) {
	fh := newTestFile(t, 2, 8, 4)

	var rids []types.Rid
	for i := byte(0); i < 8; i++ {
		rid, err := fh.InsertRecord(rec(i))
		assert.NoError(t, err)
		rids = append(rids, rid)
	}
	// empty out the first page entirely; the scan must skip straight to
	// the second without yielding any of its cleared slots.
	for _, rid := range rids[:4] {
		assert.NoError(t, fh.DeleteRecord(rid))
	}

	s := NewScan(fh)
	var got []types.Rid
	for !s.IsEnd() {
		got = append(got, s.Rid())
		s.Next()
	}
	assert.Equal(t, []types.Rid{
		types.NewRid(2, 0), types.NewRid(2, 1), types.NewRid(2, 2), types.NewRid(2, 3),
	}, got)
}

func TestScanYieldsEachSlotExactlyOnceInOrder(t *testing.T) {
	fh := newTestFile(t, 2, 8, 4)

	const n = 17
	for i := byte(0); i < n; i++ {
		_, err := fh.InsertRecord(rec(i))
		assert.NoError(t, err)
	}

	seen := make(map[types.Rid]bool)
	s := NewScan(fh)
	var prev types.Rid
	first := true
	for !s.IsEnd() {
		r := s.Rid()
		assert.False(t, seen[r], "rid %v yielded twice", r)
		seen[r] = true
		if !first {
			assert.True(t, r.PageNo > prev.PageNo || (r.PageNo == prev.PageNo && r.SlotNo > prev.SlotNo))
		}
		first = false
		prev = r
		s.Next()
	}
	assert.Len(t, seen, n)
}
