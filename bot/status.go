package bot

import (
	"sync"
	"time"
)

// Status is the read side the HTTP surface uses to report whether the
// reply loop is alive. It exists so an authentication failure can leave
// the dashboard running with the bot shown as offline.
type Status struct {
	mu        sync.RWMutex
	online    bool
	lastTick  time.Time
	lastError string
}

type StatusSnapshot struct {
	Online    bool      `json:"online"`
	LastTick  time.Time `json:"last_tick,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

func NewStatus() *Status {
	return &Status{}
}

func (s *Status) SetOnline(online bool) {
	s.mu.Lock()
	s.online = online
	s.mu.Unlock()
}

func (s *Status) MarkTick() {
	s.mu.Lock()
	s.lastTick = time.Now()
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Status) MarkError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Status) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatusSnapshot{
		Online:    s.online,
		LastTick:  s.lastTick,
		LastError: s.lastError,
	}
}
