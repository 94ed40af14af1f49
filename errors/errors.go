// Package errors defines the typed failures a record file handle reports.
// The buffer pool itself never returns these: it signals failure through
// a nil frame or a false return, as documented on each of its methods.
package errors

import "fmt"

// PageNotExistsError reports that PageNo lies outside the file's current
// page count.
type PageNotExistsError struct {
	PageNo int32
}

func (e *PageNotExistsError) Error() string {
	return fmt.Sprintf("page %d does not exist", e.PageNo)
}

func NewPageNotExistsError(pageNo int32) error {
	return &PageNotExistsError{PageNo: pageNo}
}

// RecordNotFoundError reports that the occupancy bit at (PageNo, SlotNo)
// was clear at access time.
type RecordNotFoundError struct {
	PageNo int32
	SlotNo int32
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("record (%d,%d) not found", e.PageNo, e.SlotNo)
}

func NewRecordNotFoundError(pageNo, slotNo int32) error {
	return &RecordNotFoundError{PageNo: pageNo, SlotNo: slotNo}
}

// PoolExhaustedError reports that the buffer pool had no free frame and no
// evictable victim to hand back. It wraps whichever page handle request
// triggered it, mirroring the pool's own nil/false signaling for callers
// that need a typed error instead.
type PoolExhaustedError struct {
	PageID fmt.Stringer
}

func (e *PoolExhaustedError) Error() string {
	return fmt.Sprintf("buffer pool exhausted fetching %v", e.PageID)
}
