package record

import (
	"encoding/binary"
)

// pageHeaderWireSize is PageHeader{num_records u32; next_free_page_no i32}.
const pageHeaderWireSize = 8

// PageHeader sits at the start of every data page, followed by the
// occupancy bitmap and then the slot array.
type PageHeader struct {
	NumRecords     int32
	NextFreePageNo int32
}

func readPageHeader(data []byte) PageHeader {
	return PageHeader{
		NumRecords:     int32(binary.LittleEndian.Uint32(data[0:4])),
		NextFreePageNo: int32(binary.LittleEndian.Uint32(data[4:8])),
	}
}

func (h PageHeader) write(data []byte) {
	binary.LittleEndian.PutUint32(data[0:4], uint32(h.NumRecords))
	binary.LittleEndian.PutUint32(data[4:8], uint32(h.NextFreePageNo))
}

// bitmapOf returns the occupancy region of a data page's buffer.
func bitmapOf(data []byte, h FileHeader) []byte {
	start := pageHeaderWireSize
	return data[start : start+int(h.BitmapSizeBytes)]
}

// slotOf returns the i'th record slot of a data page's buffer.
func slotOf(data []byte, h FileHeader, i int32) []byte {
	start := pageHeaderWireSize + int(h.BitmapSizeBytes) + int(i)*int(h.RecordSize)
	return data[start : start+int(h.RecordSize)]
}

// initPageHeader writes a PageHeader for a freshly allocated, all-zero data
// page linked at the head of the free chain. NewPage already zeroed the
// rest of the buffer, so the bitmap starts out clear.
func initPageHeader(data []byte, nextFree int32) {
	PageHeader{NumRecords: 0, NextFreePageNo: nextFree}.write(data)
}
