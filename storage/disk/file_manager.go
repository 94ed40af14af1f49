// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ryogrid/recordstore/common"
	"github.com/ryogrid/recordstore/types"
)

type fileState struct {
	mu         sync.Mutex
	f          *os.File
	name       string
	size       int64
	nextPageNo int32
}

// FileManager is the on-disk implementation of Manager: each open file is a
// flat sequence of common.PageSize pages, page 0 included.
type FileManager struct {
	mu    sync.Mutex
	files map[types.FileID]*fileState
	next  types.FileID
}

func NewFileManager() *FileManager {
	return &FileManager{files: make(map[types.FileID]*fileState)}
}

func (m *FileManager) Open(name string) (types.FileID, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return types.FileID(-1), fmt.Errorf("disk: open %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return types.FileID(-1), fmt.Errorf("disk: stat %s: %w", name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	fd := m.next
	m.next++
	m.files[fd] = &fileState{
		f:          f,
		name:       name,
		size:       info.Size(),
		nextPageNo: int32(info.Size() / common.PageSize),
	}
	return fd, nil
}

func (m *FileManager) Close(fd types.FileID) error {
	st, err := m.state(fd)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.f.Close()
}

func (m *FileManager) state(fd types.FileID) (*fileState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.files[fd]
	if !ok {
		return nil, fmt.Errorf("disk: unknown file id %d", fd)
	}
	return st, nil
}

func (m *FileManager) WritePage(fd types.FileID, pageNo int32, buf []byte) error {
	st, err := m.state(fd)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	offset := int64(pageNo) * int64(common.PageSize)
	if _, err := st.f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("disk: seek %s: %w", st.name, err)
	}
	n, err := st.f.Write(buf[:common.PageSize])
	if err != nil {
		return fmt.Errorf("disk: write %s: %w", st.name, err)
	}
	if n != common.PageSize {
		return fmt.Errorf("disk: short write to %s: %d of %d bytes", st.name, n, common.PageSize)
	}
	if offset+int64(n) > st.size {
		st.size = offset + int64(n)
	}
	return st.f.Sync()
}

func (m *FileManager) ReadPage(fd types.FileID, pageNo int32, buf []byte) error {
	st, err := m.state(fd)
	if err != nil {
		return err
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
	if _, err := st.f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("disk: seek %s: %w", st.name, err)
	}
	n, err := st.f.Read(buf[:common.PageSize])
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("disk: read %s: %w", st.name, err)
	}
	for i := n; i < common.PageSize; i++ {
		buf[i] = 0
	}
	return nil
}

func (m *FileManager) AllocatePage(fd types.FileID) int32 {
	st, err := m.state(fd)
	if err != nil {
		return common.InvalidPageNo
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	pageNo := st.nextPageNo
	st.nextPageNo++
	return pageNo
}

// DeallocatePage is a no-op: this core does not physically reclaim pages
// (see the record file handle's free-page chain instead).
func (m *FileManager) DeallocatePage(fd types.FileID, pageNo int32) {}

func (m *FileManager) Size(fd types.FileID) int64 {
	st, err := m.state(fd)
	if err != nil {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.size
}
