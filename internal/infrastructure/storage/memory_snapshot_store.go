package storage

import (
	"context"
	"sync"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/report"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// MemorySnapshotStore keeps snapshots in process memory. It is used when
// object storage is disabled; snapshots are lost on restart.
type MemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]report.Report
}

// NewMemorySnapshotStore creates an empty store
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{snapshots: make(map[string]report.Report)}
}

// Put replaces the snapshot for the report's tenant and type
func (s *MemorySnapshotStore) Put(_ context.Context, rep *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[SnapshotKey(rep.TenantID, rep.Type)] = *rep
	return nil
}

// GetLatest returns a copy of the stored snapshot
func (s *MemorySnapshotStore) GetLatest(_ context.Context, tenantID uuid.UUID, reportType report.Type) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rep, ok := s.snapshots[SnapshotKey(tenantID, reportType)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &rep, nil
}
