// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import "fmt"

// FileID identifies a record file among those a disk manager serves.
type FileID int32

// PageID names a page within a file. A page is addressed by the pair
// (FileID, PageNo); the same PageNo in two different files is a different
// page.
type PageID struct {
	FileID FileID
	PageNo int32
}

// InvalidPageID denotes "unallocated."
var InvalidPageID = PageID{FileID: -1, PageNo: -1}

// IsValid reports whether id names an allocated page.
func (id PageID) IsValid() bool {
	return id != InvalidPageID && id.PageNo >= 0
}

func (id PageID) String() string {
	return fmt.Sprintf("PageID{fd:%d,no:%d}", id.FileID, id.PageNo)
}
