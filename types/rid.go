// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import "fmt"

// RmNoPage terminates the free-page chain and marks an exhausted scan.
const RmNoPage int32 = -1

// Rid identifies a record within a file by (page number, slot number).
// SlotNo == -1 is the "before first slot of this page" cursor position
// used by record.Scan; it never names an actual record.
type Rid struct {
	PageNo int32
	SlotNo int32
}

func NewRid(pageNo, slotNo int32) Rid {
	return Rid{PageNo: pageNo, SlotNo: slotNo}
}

func (r Rid) String() string {
	return fmt.Sprintf("(%d,%d)", r.PageNo, r.SlotNo)
}
