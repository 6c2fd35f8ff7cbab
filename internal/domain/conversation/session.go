package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/platform/logger"
)

// SessionStore guarda el paso activo por owner. Sin entrada = idle.
type SessionStore interface {
	Get(ownerID string) (Step, bool)
	Put(ownerID string, step Step)
	Delete(ownerID string)
	// Sweep elimina sesiones inactivas y devuelve cuántas borró.
	Sweep(now time.Time) int
}

type sessionEntry struct {
	step    Step
	touched time.Time
}

// MemoryStore vive lo que vive el proceso. idleTimeout 0 desactiva la expiración.
type MemoryStore struct {
	mu          sync.Mutex
	entries     map[string]sessionEntry
	idleTimeout time.Duration
	now         func() time.Time
}

func NewMemoryStore(idleTimeout time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string]sessionEntry),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Get(ownerID string) (Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[ownerID]
	if !ok {
		return nil, false
	}
	if s.expired(e, s.now()) {
		delete(s.entries, ownerID)
		return nil, false
	}
	return e.step, true
}

func (s *MemoryStore) Put(ownerID string, step Step) {
	if step == nil {
		s.Delete(ownerID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ownerID] = sessionEntry{step: step, touched: s.now()}
}

func (s *MemoryStore) Delete(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, ownerID)
}

func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for owner, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, owner)
			n++
		}
	}
	return n
}

// Len devuelve cuántas sesiones hay guardadas (incluye expiradas aún no barridas).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) expired(e sessionEntry, now time.Time) bool {
	return s.idleTimeout > 0 && now.Sub(e.touched) > s.idleTimeout
}

// RunJanitor llama a Sweep cada intervalo hasta que ctx se cancele.
func RunJanitor(ctx context.Context, store SessionStore, every time.Duration, log logger.Logger) {
	if every <= 0 {
		return
	}
	if log == nil {
		log = logger.Nop()
	}

	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := store.Sweep(now); n > 0 {
				log.Debug("sessions evicted", map[string]any{"count": n})
			}
		}
	}
}
