// Package tablestore wraps the blob store with the load-normalize-
// mutate-save unit every top-level operation runs in. Persistence is
// whole-table overwrite; there is no row-level API.
package tablestore

import (
	"context"
	"fmt"

	"rapport-backend/internal/domain/store"
	"rapport-backend/internal/domain/table"
	"rapport-backend/internal/schema"
)

type Manager struct {
	store store.Store
	lock  store.Locker
	norm  *schema.Normalizer
}

func New(s store.Store, l store.Locker, n *schema.Normalizer) *Manager {
	if l == nil {
		l = store.NopLocker{}
	}
	if n == nil {
		n = schema.New()
	}
	return &Manager{store: s, lock: l, norm: n}
}

// Blobs exposes the underlying store for opaque (non-tabular) blobs
// such as rendered documents and signature images.
func (m *Manager) Blobs() store.Store { return m.store }

func (m *Manager) load(ctx context.Context, kind table.Kind) (*table.Table, string, error) {
	data, ref, err := m.store.Read(ctx, string(kind))
	if err != nil {
		return nil, "", err
	}
	t, err := table.DecodeCSV(data)
	if err != nil {
		return nil, "", fmt.Errorf("table %s: %w", kind, err)
	}
	return m.norm.Normalize(kind, t), ref, nil
}

// View loads one normalized table for read-only use. Readers do not
// take the advisory lock.
func (m *Manager) View(ctx context.Context, kind table.Kind, fn func(t *table.Table) error) error {
	t, _, err := m.load(ctx, kind)
	if err != nil {
		return err
	}
	return fn(t)
}

// Update runs fn on a freshly loaded table under the table's advisory
// lock and writes the whole table back once, as a single commit point.
// If fn fails nothing is written.
func (m *Manager) Update(ctx context.Context, kind table.Kind, fn func(t *table.Table) error) error {
	unlock, err := m.lock.Lock(ctx, string(kind))
	if err != nil {
		return err
	}
	defer unlock()

	t, ref, err := m.load(ctx, kind)
	if err != nil {
		return err
	}
	if err := fn(t); err != nil {
		return err
	}
	data, err := table.EncodeCSV(t)
	if err != nil {
		return fmt.Errorf("table %s: %w", kind, err)
	}
	if _, err := m.store.Write(ctx, string(kind), data, ref); err != nil {
		return err
	}
	return nil
}
