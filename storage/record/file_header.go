package record

import (
	"encoding/binary"

	"github.com/ryogrid/recordstore/common"
)

// FileHeader lives at page 0 of a record file. It is the only state that
// must outlive an individual page fetch: everything else is recovered from
// the pages themselves.
type FileHeader struct {
	RecordSize        int32
	NumRecordsPerPage int32
	BitmapSizeBytes   int32
	NumPages          int32
	FirstFreePageNo   int32
}

const fileHeaderWireSize = 4*4 + 4 // four u32 fields, one i32 field

// newFileHeader computes the slotted layout for recordSize-byte records:
// the largest NumRecordsPerPage such that a PageHeader, its occupancy
// bitmap, and that many slots all fit within common.PageSize.
func newFileHeader(recordSize int32) FileHeader {
	available := int32(common.PageSize) - pageHeaderWireSize
	// Each record costs recordSize bytes of slot plus ~1/8 byte of bitmap;
	// start from that estimate and back off until it actually fits, since
	// the bitmap rounds up to a whole byte.
	n := (available * 8) / (recordSize*8 + 1)
	for n > 0 && pageBitmapBytes(n)+n*recordSize > available {
		n--
	}
	return newFileHeaderWithCapacity(recordSize, n)
}

// newFileHeaderWithCapacity builds a FileHeader for a caller-chosen
// NumRecordsPerPage, used when the layout is dictated by something other
// than "pack as many as fit" (e.g. a fixed test fixture).
func newFileHeaderWithCapacity(recordSize, numRecordsPerPage int32) FileHeader {
	return FileHeader{
		RecordSize:        recordSize,
		NumRecordsPerPage: numRecordsPerPage,
		BitmapSizeBytes:   pageBitmapBytes(numRecordsPerPage),
		NumPages:          1,
		FirstFreePageNo:   int32(common.RmNoPage),
	}
}

func pageBitmapBytes(n int32) int32 {
	return (n + 7) / 8
}

func (h FileHeader) encode(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.RecordSize))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.NumRecordsPerPage))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(h.BitmapSizeBytes))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(h.NumPages))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(h.FirstFreePageNo))
	for i := fileHeaderWireSize; i < len(buf); i++ {
		buf[i] = 0
	}
}

func decodeFileHeader(buf []byte) FileHeader {
	return FileHeader{
		RecordSize:        int32(binary.LittleEndian.Uint32(buf[0:4])),
		NumRecordsPerPage: int32(binary.LittleEndian.Uint32(buf[4:8])),
		BitmapSizeBytes:   int32(binary.LittleEndian.Uint32(buf[8:12])),
		NumPages:          int32(binary.LittleEndian.Uint32(buf[12:16])),
		FirstFreePageNo:   int32(binary.LittleEndian.Uint32(buf[16:20])),
	}
}
