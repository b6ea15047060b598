package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ruteri/halow-dashboard/interfaces"
)

// MemoryBackend is an in-process record store for local runs without AWS.
// It keeps insertion order so listings behave like a small scan.
type MemoryBackend struct {
	mu      sync.Mutex
	order   []string
	records map[string]interfaces.Record
	log     *slog.Logger
	now     func() time.Time
}

func NewMemoryBackend(log *slog.Logger) *MemoryBackend {
	return &MemoryBackend{
		records: make(map[string]interfaces.Record),
		log:     log,
		now:     time.Now,
	}
}

func (b *MemoryBackend) Name() string {
	return "in-memory store"
}

func (b *MemoryBackend) ListAll(ctx context.Context) ([]interfaces.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records := make([]interfaces.Record, 0, len(b.order))
	for _, id := range b.order {
		records = append(records, b.records[id])
	}
	return records, nil
}

func (b *MemoryBackend) Get(ctx context.Context, id string) (*interfaces.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	record, ok := b.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (b *MemoryBackend) Put(ctx context.Context, record interfaces.Record) error {
	record.Timestamp = interfaces.FormatTimestamp(b.now())

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.records[record.ID]; !exists {
		b.order = append(b.order, record.ID)
	}
	b.records[record.ID] = record

	b.log.Debug("Stored record in memory", slog.String("id", record.ID))
	return nil
}

func (b *MemoryBackend) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.records[id]; !exists {
		return nil
	}
	delete(b.records, id)
	for i, existing := range b.order {
		if existing == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}
