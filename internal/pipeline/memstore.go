package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

// MemStore is an in-memory Store used by tests and by the CLI's
// dry-run mode. It mirrors the SQL store's matching semantics: url
// matches order before cfp matches, at most two results, and a record
// matching both keys appears once.
type MemStore struct {
	mu      sync.Mutex
	nextID  int64
	records []*conference.Record
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

// FindByIdentity implements Store.
func (m *MemStore) FindByIdentity(_ context.Context, normalizedURL, normalizedCFPURL *string) ([]*conference.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matches := make([]*conference.Record, 0, 2)
	for _, rec := range m.records {
		if normalizedURL != nil && rec.NormalizedURL == *normalizedURL {
			matches = append(matches, rec)
		}
	}
	for _, rec := range m.records {
		if normalizedCFPURL != nil && rec.NormalizedCFPURL != nil && *rec.NormalizedCFPURL == *normalizedCFPURL {
			if len(matches) == 0 || matches[0].ID != rec.ID {
				matches = append(matches, rec)
			}
		}
	}
	if len(matches) > 2 {
		matches = matches[:2]
	}
	return matches, nil
}

// Create implements Store.
func (m *MemStore) Create(_ context.Context, rec *conference.Record) (*conference.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Same uniqueness the SQL schema enforces
	for _, existing := range m.records {
		if existing.NormalizedURL == rec.NormalizedURL {
			return nil, fmt.Errorf("duplicate normalized_url: %s", rec.NormalizedURL)
		}
		if rec.NormalizedCFPURL != nil && existing.NormalizedCFPURL != nil &&
			*existing.NormalizedCFPURL == *rec.NormalizedCFPURL {
			return nil, fmt.Errorf("duplicate normalized_cfp_url: %s", *rec.NormalizedCFPURL)
		}
	}

	now := time.Now().UTC()
	stored := *rec
	stored.ID = m.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.nextID++
	m.records = append(m.records, &stored)
	return &stored, nil
}

// Update implements Store.
func (m *MemStore) Update(_ context.Context, id int64, rec *conference.Record) (*conference.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.records {
		if existing.ID != id {
			continue
		}
		updated := *rec
		updated.ID = id
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		m.records[i] = &updated
		return &updated, nil
	}
	return nil, fmt.Errorf("record not found: %d", id)
}

// Len returns the number of stored records.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// All returns a copy of the stored records, in insertion order.
func (m *MemStore) All() []*conference.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*conference.Record, len(m.records))
	copy(out, m.records)
	return out
}
