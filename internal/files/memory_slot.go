package files

import (
	"context"
	"sync"
)

// MemorySlot keeps the slot in process memory.
type MemorySlot struct {
	mu      sync.RWMutex
	data    []byte
	present bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Name() string { return "memory" }

func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemorySlot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(data)
	return nil
}

func (s *MemorySlot) Swap(ctx context.Context, version string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := ""
	if s.present {
		current = Version(s.data)
	}
	if current != version {
		return ErrConflict
	}
	s.set(data)
	return nil
}

func (s *MemorySlot) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.present = false
	return nil
}

func (s *MemorySlot) set(data []byte) {
	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.present = true
}
