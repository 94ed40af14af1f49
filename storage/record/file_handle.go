// this code is from Renmin University of China's RMDB (src/record/rm_file_handle.cpp);
// RMDB is licensed under Mulan PSL v2.

package record

import (
	"github.com/ryogrid/recordstore/common"
	"github.com/ryogrid/recordstore/errors"
	"github.com/ryogrid/recordstore/storage/buffer"
	"github.com/ryogrid/recordstore/storage/disk"
	"github.com/ryogrid/recordstore/storage/page"
	"github.com/ryogrid/recordstore/types"
)

// FileHandle lays fixed-size records onto pages using a slotted layout with
// a per-page occupancy bitmap, and maintains an intrusive free-page list
// across the file. Every exported method pins exactly one page via the
// pool and unpins it before returning, on every exit path.
type FileHandle struct {
	fd     types.FileID
	dm     disk.Manager
	pool   *buffer.Pool
	header FileHeader
}

// Create makes a new, empty record file of recordSize-byte records, backed
// by name through dm, and caches its pages through pool.
func Create(dm disk.Manager, pool *buffer.Pool, name string, recordSize int32) (*FileHandle, error) {
	fd, err := dm.Open(name)
	if err != nil {
		return nil, err
	}

	fh := &FileHandle{fd: fd, dm: dm, pool: pool, header: newFileHeader(recordSize)}

	pid := types.PageID{FileID: fd}
	fr := pool.NewPage(&pid)
	if fr == nil {
		return nil, &errors.PoolExhaustedError{PageID: pid}
	}
	fh.header.encode(fr.Data())
	pool.UnpinPage(pid, true)
	return fh, nil
}

// Open reconstructs a FileHandle from an existing record file's header page.
func Open(dm disk.Manager, pool *buffer.Pool, name string) (*FileHandle, error) {
	fd, err := dm.Open(name)
	if err != nil {
		return nil, err
	}
	pid := types.PageID{FileID: fd, PageNo: common.HeaderPageID}
	fr := pool.FetchPage(pid)
	if fr == nil {
		return nil, &errors.PoolExhaustedError{PageID: pid}
	}
	header := decodeFileHeader(fr.Data())
	pool.UnpinPage(pid, false)
	return &FileHandle{fd: fd, dm: dm, pool: pool, header: header}, nil
}

// Close persists the file header and flushes every resident page belonging
// to this file.
func (fh *FileHandle) Close() error {
	pid := types.PageID{FileID: fh.fd, PageNo: common.HeaderPageID}
	fr := fh.pool.FetchPage(pid)
	if fr == nil {
		return &errors.PoolExhaustedError{PageID: pid}
	}
	fh.header.encode(fr.Data())
	fh.pool.UnpinPage(pid, true)
	fh.pool.FlushPage(pid)
	fh.pool.FlushAllPages(fh.fd)
	return nil
}

func (fh *FileHandle) NumRecordsPerPage() int32 { return fh.header.NumRecordsPerPage }
func (fh *FileHandle) RecordSize() int32        { return fh.header.RecordSize }
func (fh *FileHandle) NumPages() int32          { return fh.header.NumPages }
func (fh *FileHandle) FirstFreePageNo() int32   { return fh.header.FirstFreePageNo }

// fetchPageHandle pins page pageNo, failing with PageNotExistsError if it
// lies outside the file's current extent.
func (fh *FileHandle) fetchPageHandle(pageNo int32) (*page.Frame, types.PageID, error) {
	if pageNo >= fh.header.NumPages {
		return nil, types.PageID{}, errors.NewPageNotExistsError(pageNo)
	}
	pid := types.PageID{FileID: fh.fd, PageNo: pageNo}
	fr := fh.pool.FetchPage(pid)
	if fr == nil {
		return nil, pid, &errors.PoolExhaustedError{PageID: pid}
	}
	return fr, pid, nil
}

// createNewPageHandle allocates a brand new data page, initializes its
// header for an empty page at the head of the free chain, and links it in.
func (fh *FileHandle) createNewPageHandle() (*page.Frame, types.PageID, error) {
	pid := types.PageID{FileID: fh.fd}
	fr := fh.pool.NewPage(&pid)
	if fr == nil {
		return nil, pid, &errors.PoolExhaustedError{PageID: pid}
	}
	initPageHeader(fr.Data(), fh.header.FirstFreePageNo)
	fh.header.NumPages++
	fh.header.FirstFreePageNo = pid.PageNo
	return fr, pid, nil
}

// createPageHandle returns a page with at least one free slot: the head of
// the free chain, or a freshly allocated page if the chain is empty.
func (fh *FileHandle) createPageHandle() (*page.Frame, types.PageID, error) {
	if fh.header.FirstFreePageNo == int32(common.RmNoPage) {
		return fh.createNewPageHandle()
	}
	return fh.fetchPageHandle(fh.header.FirstFreePageNo)
}

// GetRecord copies out the record named by rid.
func (fh *FileHandle) GetRecord(rid types.Rid) ([]byte, error) {
	fr, pid, err := fh.fetchPageHandle(rid.PageNo)
	if err != nil {
		return nil, err
	}
	bm := bitmapOf(fr.Data(), fh.header)
	if !page.BitmapIsSet(bm, int(rid.SlotNo)) {
		fh.pool.UnpinPage(pid, false)
		return nil, errors.NewRecordNotFoundError(rid.PageNo, rid.SlotNo)
	}
	buf := make([]byte, fh.header.RecordSize)
	copy(buf, slotOf(fr.Data(), fh.header, rid.SlotNo))
	fh.pool.UnpinPage(pid, false)
	return buf, nil
}

// InsertRecord copies buf into the first free slot of the head-of-chain
// page, allocating a new data page first if the file has none with room.
func (fh *FileHandle) InsertRecord(buf []byte) (types.Rid, error) {
	fr, pid, err := fh.createPageHandle()
	if err != nil {
		return types.Rid{}, err
	}

	bm := bitmapOf(fr.Data(), fh.header)
	nrpp := fh.header.NumRecordsPerPage
	slot := page.BitmapFirstBit(false, bm, int(nrpp))

	copy(slotOf(fr.Data(), fh.header, int32(slot)), buf)
	page.BitmapSet(bm, slot)

	ph := readPageHeader(fr.Data())
	ph.NumRecords++
	if ph.NumRecords == nrpp {
		fh.header.FirstFreePageNo = ph.NextFreePageNo
	}
	ph.write(fr.Data())

	fh.pool.UnpinPage(pid, true)
	return types.NewRid(pid.PageNo, int32(slot)), nil
}

// InsertRecordAt inserts buf at a caller-chosen rid, used for recovery and
// log replay. The file is grown with freshly initialized pages until rid's
// page exists.
func (fh *FileHandle) InsertRecordAt(rid types.Rid, buf []byte) error {
	for rid.PageNo >= fh.header.NumPages {
		_, pid, err := fh.createNewPageHandle()
		if err != nil {
			return err
		}
		fh.pool.UnpinPage(pid, true)
	}

	fr, pid, err := fh.fetchPageHandle(rid.PageNo)
	if err != nil {
		return err
	}

	bm := bitmapOf(fr.Data(), fh.header)
	nrpp := fh.header.NumRecordsPerPage
	page.BitmapSet(bm, int(rid.SlotNo))

	ph := readPageHeader(fr.Data())
	ph.NumRecords++
	if ph.NumRecords == nrpp {
		fh.header.FirstFreePageNo = ph.NextFreePageNo
	}
	ph.write(fr.Data())

	copy(slotOf(fr.Data(), fh.header, rid.SlotNo), buf)

	fh.pool.UnpinPage(pid, true)
	return nil
}

// DeleteRecord clears rid's occupancy bit, re-linking its page at the head
// of the free chain if the page was previously full.
func (fh *FileHandle) DeleteRecord(rid types.Rid) error {
	fr, pid, err := fh.fetchPageHandle(rid.PageNo)
	if err != nil {
		return err
	}

	bm := bitmapOf(fr.Data(), fh.header)
	if !page.BitmapIsSet(bm, int(rid.SlotNo)) {
		fh.pool.UnpinPage(pid, false)
		return errors.NewRecordNotFoundError(rid.PageNo, rid.SlotNo)
	}

	ph := readPageHeader(fr.Data())
	wasFull := ph.NumRecords == fh.header.NumRecordsPerPage

	page.BitmapReset(bm, int(rid.SlotNo))
	ph.NumRecords--

	if wasFull {
		ph.NextFreePageNo = fh.header.FirstFreePageNo
		fh.header.FirstFreePageNo = rid.PageNo
	}
	ph.write(fr.Data())

	fh.pool.UnpinPage(pid, true)
	return nil
}

// UpdateRecord overwrites the slot named by rid in place.
func (fh *FileHandle) UpdateRecord(rid types.Rid, buf []byte) error {
	fr, pid, err := fh.fetchPageHandle(rid.PageNo)
	if err != nil {
		return err
	}

	bm := bitmapOf(fr.Data(), fh.header)
	if !page.BitmapIsSet(bm, int(rid.SlotNo)) {
		fh.pool.UnpinPage(pid, false)
		return errors.NewRecordNotFoundError(rid.PageNo, rid.SlotNo)
	}

	copy(slotOf(fr.Data(), fh.header, rid.SlotNo), buf)
	fh.pool.UnpinPage(pid, true)
	return nil
}
