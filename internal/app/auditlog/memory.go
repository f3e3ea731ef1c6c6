package auditlog

import (
	"context"
	"sync"
	"time"

	"backoffice/internal/app/model"

	"github.com/rs/xid"
)

// Recorder collects one entry per mutating admin action. The append happens
// only after the backend acknowledged the underlying write; it cannot fail
// on its own, so there is no error to return.
type Recorder interface {
	Append(ctx context.Context, adminName, action, details string) model.AuditEntry
	Entries(ctx context.Context) []model.AuditEntry
}

// Recorder interface implementation
var _ Recorder = (*Memory)(nil)

// Memory is a process-local append-only log. Each admin session sees only
// the entries accumulated by its own process; durable audit storage, if
// any, lives behind a different Recorder.
type Memory struct {
	mu      sync.RWMutex
	now     func() time.Time
	entries []model.AuditEntry
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		now:     time.Now,
		entries: make([]model.AuditEntry, 0),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

type MemoryOption func(*Memory)

// WithClock overrides the entry timestamp source.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// Append method of Recorder implementation
func (m *Memory) Append(ctx context.Context, adminName, action, details string) model.AuditEntry {
	if adminName == "" {
		adminName = "unknown"
	}

	e := model.AuditEntry{
		ID:        xid.New().String(),
		AdminName: adminName,
		Action:    action,
		Details:   details,
		Date:      m.now(),
	}

	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()

	return e
}

// Entries method of Recorder implementation, newest first.
func (m *Memory) Entries(ctx context.Context) []model.AuditEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]model.AuditEntry, len(m.entries))
	for i, e := range m.entries {
		res[len(m.entries)-1-i] = e
	}

	return res
}

// Len reports the number of recorded entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
