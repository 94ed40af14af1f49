// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/ryogrid/recordstore/common"
	"github.com/ryogrid/recordstore/storage/disk"
	"github.com/ryogrid/recordstore/storage/page"
	"github.com/ryogrid/recordstore/types"
)

// Pool mediates all access to disk pages through a fixed-size frame array.
// It holds one coarse latch covering the frame array, the page table and
// the free list; every public method takes it for its whole duration, so
// disk I/O issued while fetching or evicting a page serializes with every
// other pool operation. This is deliberate: see the package doc for the
// trade-off.
type Pool struct {
	mu        deadlock.Mutex
	disk      disk.Manager
	frames    []*page.Frame
	replacer  Replacer
	freeList  []FrameID
	pageTable map[types.PageID]FrameID
}

// NewPool builds a pool of poolSize frames backed by dm, evicting via
// replacer once the free list is drained.
func NewPool(poolSize uint32, dm disk.Manager, replacer Replacer) *Pool {
	frames := make([]*page.Frame, poolSize)
	freeList := make([]FrameID, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		frames[i] = page.NewFrame()
		freeList[i] = FrameID(i)
	}
	return &Pool{
		disk:      dm,
		frames:    frames,
		replacer:  replacer,
		freeList:  freeList,
		pageTable: make(map[types.PageID]FrameID),
	}
}

// FetchPage returns the frame holding pid, pinning it, faulting it in from
// disk if necessary. It returns nil if pid is not resident and no frame
// could be freed to hold it.
func (p *Pool) FetchPage(pid types.PageID) *page.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fid, ok := p.pageTable[pid]; ok {
		fr := p.frames[fid]
		fr.IncPinCount()
		p.replacer.Pin(fid)
		return fr
	}

	fid, ok := p.findVictimFrame()
	if !ok {
		return nil
	}

	fr := p.frames[fid]
	p.evict(fid, fr)

	if err := p.disk.ReadPage(pid.FileID, pid.PageNo, fr.Data()); err != nil {
		return nil
	}
	fr.SetPageID(pid)
	fr.IncPinCount()
	p.pageTable[pid] = fid
	p.replacer.Pin(fid)
	return fr
}

// NewPage allocates a fresh page number on disk, obtains a frame for it via
// the same free-list/replacer rule as FetchPage, and returns the zeroed,
// pinned frame. It returns nil if the disk manager could not allocate a
// page number, or if no frame could be freed; in the latter case the
// allocated page number is deallocated before returning so it is not
// leaked.
func (p *Pool) NewPage(pid *types.PageID) *page.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	pageNo := p.disk.AllocatePage(pid.FileID)
	if pageNo == -1 {
		return nil
	}
	pid.PageNo = pageNo

	fid, ok := p.findVictimFrame()
	if !ok {
		p.disk.DeallocatePage(pid.FileID, pageNo)
		return nil
	}

	fr := p.frames[fid]
	p.evict(fid, fr)

	fr.ResetMemory()
	fr.SetPageID(*pid)
	fr.IncPinCount()
	p.pageTable[*pid] = fid
	p.replacer.Pin(fid)
	return fr
}

// evict prepares fr, currently occupying fid, to be handed a new identity:
// flushing it if dirty and removing its old identity from the page table.
// fr may be resident-but-unused (from findVictimFrame's replacer branch) or
// already identity-less (fresh off the free list), in which case this is a
// no-op.
func (p *Pool) evict(fid FrameID, fr *page.Frame) {
	common.SH_Assert(fr.PinCount() == 0, "evict: victim frame is pinned")
	if !fr.PageID().IsValid() {
		return
	}
	if fr.IsDirty() {
		p.disk.WritePage(fr.PageID().FileID, fr.PageID().PageNo, fr.Data())
		fr.ClearDirty()
	}
	delete(p.pageTable, fr.PageID())
}

// UnpinPage decrements pid's pin count and, if isDirty, marks it dirty
// (dirty is sticky: it is never cleared here). Unpinning a non-resident
// page is an idempotent no-op and returns true; unpinning a page whose
// pin count is already zero leaves pool state untouched and returns
// false.
func (p *Pool) UnpinPage(pid types.PageID, isDirty bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, ok := p.pageTable[pid]
	if !ok {
		return true
	}
	fr := p.frames[fid]
	if fr.PinCount() == 0 {
		return false
	}

	fr.DecPinCount()
	fr.SetDirty(isDirty)
	if fr.PinCount() == 0 {
		p.replacer.Unpin(fid)
	}
	return true
}

// FlushPage writes pid's buffer to disk unconditionally of pin count and
// clears its dirty flag. It returns false if pid is not resident.
func (p *Pool) FlushPage(pid types.PageID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, ok := p.pageTable[pid]
	if !ok {
		return false
	}
	fr := p.frames[fid]
	if err := p.disk.WritePage(pid.FileID, pid.PageNo, fr.Data()); err != nil {
		return false
	}
	fr.ClearDirty()
	return true
}

// FlushAllPages writes every resident page belonging to fd, dirty or not.
func (p *Pool) FlushAllPages(fd types.FileID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, fr := range p.frames {
		pid := fr.PageID()
		if pid.FileID == fd && pid.IsValid() {
			p.disk.WritePage(pid.FileID, pid.PageNo, fr.Data())
			fr.ClearDirty()
		}
	}
}

// DeletePage removes pid from the pool, returning its frame to the free
// list and asking the disk manager to reclaim the page number. It returns
// true if pid was not resident (a no-op), or if the delete succeeded; it
// returns false, leaving the frame resident, if pid is still pinned.
func (p *Pool) DeletePage(pid types.PageID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, ok := p.pageTable[pid]
	if !ok {
		return true
	}
	fr := p.frames[fid]
	if fr.PinCount() > 0 {
		return false
	}

	delete(p.pageTable, pid)
	fr.ResetMemory()
	fr.SetPageID(types.InvalidPageID)
	fr.ClearDirty()
	p.freeList = append(p.freeList, fid)
	p.disk.DeallocatePage(pid.FileID, pid.PageNo)
	return true
}

// findVictimFrame returns a frame id from the free list if one is
// available (FIFO), else delegates to the replacer. Free-list frames carry
// no identity; replacer-chosen frames are resident and must be evicted by
// the caller before reuse.
func (p *Pool) findVictimFrame() (FrameID, bool) {
	if len(p.freeList) > 0 {
		fid := p.freeList[0]
		p.freeList = p.freeList[1:]
		return fid, true
	}

	var fid FrameID
	if !p.replacer.Victim(&fid) {
		return 0, false
	}
	return fid, true
}

// PoolSize returns the number of frames under management.
func (p *Pool) PoolSize() int {
	return len(p.frames)
}
