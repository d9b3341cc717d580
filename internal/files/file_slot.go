package files

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Poll interval while waiting for the lock file
const lockRetryDelay = 5 * time.Millisecond

// FileSlot keeps the slot in a single JSON file. Writes go through a temp file
// and a rename so readers never see a partially written collection. Every
// operation holds an advisory lock on a <path>.lock sidecar, shared for reads
// and exclusive otherwise, so Swap is atomic across processes too.
type FileSlot struct {
	filePath string
	mu       sync.RWMutex
}

// NewFileSlot creates a slot stored at filePath. The parent directory is
// created on first write.
func NewFileSlot(filePath string) *FileSlot {
	return &FileSlot{filePath: filePath}
}

func (s *FileSlot) Name() string { return s.filePath }

func (s *FileSlot) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lock, err := s.lock(ctx, true)
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()
	return s.read()
}

func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, err := s.lock(ctx, false)
	if err != nil {
		return err
	}
	defer lock.Unlock()
	return s.write(data)
}

func (s *FileSlot) Swap(ctx context.Context, version string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, err := s.lock(ctx, false)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	current, err := s.read()
	switch {
	case errors.Is(err, ErrSlotEmpty):
		if version != "" {
			return ErrConflict
		}
	case err != nil:
		return err
	case Version(current) != version:
		return ErrConflict
	}
	return s.write(data)
}

func (s *FileSlot) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, err := s.lock(ctx, false)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	err = os.Remove(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// lock takes the sidecar lock. A fresh Flock per call keeps locks taken by
// goroutines of this process independent of each other. The sidecar itself is
// never removed.
func (s *FileSlot) lock(ctx context.Context, shared bool) (*flock.Flock, error) {
	err := os.MkdirAll(filepath.Dir(s.filePath), 0700)
	if err != nil {
		return nil, err
	}

	lock := flock.New(s.filePath + ".lock")
	var locked bool
	if shared {
		locked, err = lock.TryRLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = lock.TryLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("lock slot: %w", ctx.Err())
	}
	return lock, nil
}

func (s *FileSlot) read() ([]byte, error) {
	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return nil, ErrSlotEmpty
	}
	return data, err
}

func (s *FileSlot) write(data []byte) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.filePath)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.filePath)
}
