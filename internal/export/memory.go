package export

import (
	"context"
	"fmt"
	"sync"

	"github.com/PatricioAlv/adminGastos/internal/amqp"
)

// MemoryWriter records appended events in memory. Used in tests and when
// running without Google credentials.
type MemoryWriter struct {
	mu     sync.Mutex
	Events []*amqp.ActivityEvent
}

var _ RowWriter = (*MemoryWriter)(nil)

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{}
}

func (m *MemoryWriter) AppendActivity(_ context.Context, event *amqp.ActivityEvent) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return fmt.Sprintf("memory!A%d", len(m.Events)), nil
}
