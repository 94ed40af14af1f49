// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import "github.com/ryogrid/recordstore/types"

// Manager takes care of raw page I/O and page-number allocation for every
// record file the buffer pool mediates. A Manager serves many open files at
// once, each named by the FileID handed back from Open; a PageID only means
// something relative to the Manager that allocated its FileID.
//
// Manager is an external collaborator of the buffer pool: the pool never
// retries a failed read or write, and does not pass the error itself on.
// A failed read in FetchPage yields a nil frame and a failed write in
// FlushPage yields false; write errors during eviction and FlushAllPages
// are ignored.
type Manager interface {
	// Open returns the FileID for name, creating the backing file if it
	// does not already exist.
	Open(name string) (types.FileID, error)
	Close(fd types.FileID) error

	ReadPage(fd types.FileID, pageNo int32, buf []byte) error
	WritePage(fd types.FileID, pageNo int32, buf []byte) error

	// AllocatePage returns the next page number for fd, or
	// common.InvalidPageNo if none could be allocated.
	AllocatePage(fd types.FileID) int32
	DeallocatePage(fd types.FileID, pageNo int32)

	Size(fd types.FileID) int64
}
