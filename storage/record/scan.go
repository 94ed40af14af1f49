// this code is from Renmin University of China's RMDB (src/record/rm_scan.cpp);
// RMDB is licensed under Mulan PSL v2.

package record

import (
	"github.com/ryogrid/recordstore/common"
	"github.com/ryogrid/recordstore/storage/page"
	"github.com/ryogrid/recordstore/types"
)

// Scan is a forward cursor over every occupied slot of a FileHandle, in
// ascending (page_no, slot_no) order. It observes the file as of each
// call; it is not a stable snapshot, and concurrent mutation of the file
// while a scan is live is undefined.
type Scan struct {
	fh  *FileHandle
	rid types.Rid
}

// NewScan positions the cursor at the first occupied slot, if any.
func NewScan(fh *FileHandle) *Scan {
	s := &Scan{fh: fh, rid: types.Rid{PageNo: common.RmFirstRecordPage, SlotNo: -1}}
	s.Next()
	return s
}

// Next advances to the next occupied slot, or to the end-of-scan position
// if none remains.
func (s *Scan) Next() {
	for s.rid.PageNo < s.fh.header.NumPages {
		fr, pid, err := s.fh.fetchPageHandle(s.rid.PageNo)
		if err != nil {
			break
		}
		bm := bitmapOf(fr.Data(), s.fh.header)
		nrpp := int(s.fh.header.NumRecordsPerPage)
		next := page.BitmapNextBit(true, bm, nrpp, int(s.rid.SlotNo))
		s.fh.pool.UnpinPage(pid, false)

		if next < nrpp {
			s.rid.SlotNo = int32(next)
			return
		}
		s.rid = types.Rid{PageNo: s.rid.PageNo + 1, SlotNo: -1}
	}
	s.rid = types.Rid{PageNo: int32(common.RmNoPage), SlotNo: -1}
}

// IsEnd reports whether the scan has been exhausted.
func (s *Scan) IsEnd() bool {
	return s.rid.PageNo == int32(common.RmNoPage)
}

// Rid returns the scan's current position.
func (s *Scan) Rid() types.Rid {
	return s.rid
}
