// this code is grounded on Renmin University of China's RMDB
// (src/replacer/lru_replacer.cpp); RMDB is licensed under Mulan PSL v2.

package buffer

import (
	"container/list"
	"sync"
)

// LRUReplacer implements the least-recently-used replacement policy: the
// frame that has gone longest without being unpinned is the next victim.
// It is interchangeable with ClockReplacer behind the Replacer interface.
type LRUReplacer struct {
	mu       sync.Mutex
	list     *list.List
	elements map[FrameID]*list.Element
}

// NewLRUReplacer instantiates an LRU replacer with no frames tracked yet.
// Unlike ClockReplacer it needs no capacity up front: the backing list
// grows and shrinks with Unpin/Pin/Victim.
func NewLRUReplacer() *LRUReplacer {
	return &LRUReplacer{
		list:     list.New(),
		elements: make(map[FrameID]*list.Element),
	}
}

// Victim evicts the frame at the back of the list, the least recently
// unpinned one, and reports whether any frame was available.
func (r *LRUReplacer) Victim(frameID *FrameID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	back := r.list.Back()
	if back == nil {
		return false
	}
	*frameID = r.list.Remove(back).(FrameID)
	delete(r.elements, *frameID)
	return true
}

// Pin removes id from eviction consideration. A no-op if id is not
// currently tracked (already pinned, or never unpinned).
func (r *LRUReplacer) Pin(id FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.elements[id]; ok {
		r.list.Remove(el)
		delete(r.elements, id)
	}
}

// Unpin marks id evictable, pushing it to the front (most recently used
// end) of the list. A no-op if id is already tracked.
func (r *LRUReplacer) Unpin(id FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.elements[id]; ok {
		return
	}
	r.elements[id] = r.list.PushFront(id)
}

// Size returns the number of frames currently eligible for eviction.
func (r *LRUReplacer) Size() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint32(r.list.Len())
}
