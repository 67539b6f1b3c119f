package db

import "context"

// SnapshotStore adapts the content snapshot queries to the persistence
// interface the content store expects.
type SnapshotStore struct {
	q *Queries
}

func NewSnapshotStore(q *Queries) *SnapshotStore {
	return &SnapshotStore{q: q}
}

func (s *SnapshotStore) Load(ctx context.Context) ([]byte, bool, error) {
	return s.q.GetContentSnapshot(ctx)
}

func (s *SnapshotStore) Save(ctx context.Context, raw []byte) error {
	return s.q.UpsertContentSnapshot(ctx, raw)
}

func (s *SnapshotStore) Clear(ctx context.Context) error {
	return s.q.DeleteContentSnapshot(ctx)
}
