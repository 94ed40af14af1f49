package disk

import (
	"sync"

	"github.com/dsnet/golib/memfile"
	"github.com/ryogrid/recordstore/common"
	"github.com/ryogrid/recordstore/types"
)

type memFileState struct {
	mu   sync.Mutex
	f    *memfile.File
	size int64
	next int32
}

// MemManager is an in-memory Manager backed by memfile.File, used by tests
// that want record-file semantics without touching the filesystem.
type MemManager struct {
	mu    sync.Mutex
	files map[types.FileID]*memFileState
	next  types.FileID
}

func NewMemManager() *MemManager {
	return &MemManager{files: make(map[types.FileID]*memFileState)}
}

// Open always creates a new, empty in-memory file and ignores name: opening
// the same name twice yields two distinct files.
func (m *MemManager) Open(name string) (types.FileID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fd := m.next
	m.next++
	m.files[fd] = &memFileState{f: memfile.New(make([]byte, 0))}
	return fd, nil
}

func (m *MemManager) Close(fd types.FileID) error {
	return nil
}

func (m *MemManager) state(fd types.FileID) *memFileState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[fd]
}

func (m *MemManager) WritePage(fd types.FileID, pageNo int32, buf []byte) error {
	st := m.state(fd)
	if st == nil {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	offset := int64(pageNo) * int64(common.PageSize)
	if _, err := st.f.WriteAt(buf[:common.PageSize], offset); err != nil {
		return err
	}
	if end := offset + int64(common.PageSize); end > st.size {
		st.size = end
	}
	return nil
}

func (m *MemManager) ReadPage(fd types.FileID, pageNo int32, buf []byte) error {
	st := m.state(fd)
	if st == nil {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	offset := int64(pageNo) * int64(common.PageSize)
	if offset >= st.size {
		for i := range buf[:common.PageSize] {
			buf[i] = 0
		}
		return nil
	}
	_, err := st.f.ReadAt(buf[:common.PageSize], offset)
	return err
}

func (m *MemManager) AllocatePage(fd types.FileID) int32 {
	st := m.state(fd)
	if st == nil {
		return common.InvalidPageNo
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	pageNo := st.next
	st.next++
	return pageNo
}

func (m *MemManager) DeallocatePage(fd types.FileID, pageNo int32) {}

func (m *MemManager) Size(fd types.FileID) int64 {
	st := m.state(fd)
	if st == nil {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.size
}
