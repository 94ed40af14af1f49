// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

const (
	// size of a data page in byte
	PageSize = 4096
	// the file header always lives at page 0 of a record file
	HeaderPageID = 0
	// RmNoPage terminates the intrusive free-page chain
	RmNoPage = -1
	// RmFirstRecordPage is the page number of the first data page in a record file
	RmFirstRecordPage = 1
	// InvalidPageNo is returned by a disk manager that cannot allocate a page
	InvalidPageNo = -1
)
