// Package service orchestrates validation, recurrence expansion, and
// persistence over the store adapter.
package service

import (
	"context"
	"log"

	"github.com/minhamerreca/backend/internal/ledger"
	"github.com/minhamerreca/backend/internal/store"
)

// LedgerService is the write path of the ledger: it validates submissions,
// expands recurrences, and persists through the store. Validation failures
// are reported before any persistence attempt; persistence failures surface
// with the underlying message and are never retried here — retry policy, if
// any, belongs to the adapter or the caller.
type LedgerService struct {
	store    store.Store
	registry *ledger.Registry
}

// NewLedgerService creates a service over the given store with the built-in
// category registry.
func NewLedgerService(s store.Store) *LedgerService {
	return &LedgerService{store: s, registry: ledger.NewRegistry()}
}

// Registry exposes the category registry for display resolution.
func (s *LedgerService) Registry() *ledger.Registry {
	return s.registry
}

// LoadCategories merges stored custom categories into the registry. Built-in
// ids in the store are ignored; the seed registry is authoritative for them.
func (s *LedgerService) LoadCategories(ctx context.Context) error {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if err := s.registry.Add(c); err != nil {
			log.Printf("[LedgerService] skipping stored category %s: %v", c.Id, err)
		}
	}
	return nil
}

// Record turns one logical submission into persisted entries. A one-off
// becomes a single insert; fixed-monthly and installment expansions persist
// as one atomic batch so readers never observe a partial series. The ids of
// the created entries are returned.
func (s *LedgerService) Record(ctx context.Context, sub ledger.Submission) ([]string, error) {
	entries, err := ledger.Expand(s.registry, sub)
	if err != nil {
		return nil, err
	}

	if len(entries) == 1 {
		id, err := s.store.InsertEntry(ctx, entries[0])
		if err != nil {
			return nil, err
		}
		return []string{id}, nil
	}

	ids, err := s.store.InsertEntries(ctx, entries)
	if err != nil {
		return nil, err
	}
	log.Printf("[LedgerService] recorded %s series of %d entries", sub.Recurrence, len(ids))
	return ids, nil
}

// SetStatus toggles an entry between paid and unpaid.
func (s *LedgerService) SetStatus(ctx context.Context, entryID string, status ledger.EntryStatus) error {
	if status != ledger.StatusPaid && status != ledger.StatusUnpaid {
		return ledger.NewValidationError("status must be paid or unpaid, got %q", status)
	}
	return s.store.UpdateEntryField(ctx, entryID, store.FieldStatus, string(status))
}

// UpdateAmount replaces an entry's magnitude. The amount stays positive;
// direction is always derived from the entry type.
func (s *LedgerService) UpdateAmount(ctx context.Context, entryID string, cents int64) error {
	if cents <= 0 {
		return ledger.NewValidationError("amount must be positive, got %d cents", cents)
	}
	if err := s.store.UpdateEntryField(ctx, entryID, store.FieldAmountCents, cents); err != nil {
		return err
	}
	// Keep the float mirror in step for clients reading raw documents.
	return s.store.UpdateEntryField(ctx, entryID, store.FieldAmount, float64(cents)/100)
}

// UpdateDescription replaces an entry's free-text description.
func (s *LedgerService) UpdateDescription(ctx context.Context, entryID, description string) error {
	if description == "" {
		return ledger.NewValidationError("description is required")
	}
	return s.store.UpdateEntryField(ctx, entryID, store.FieldDescription, description)
}

// UpdateCategory points an entry at a different category key.
func (s *LedgerService) UpdateCategory(ctx context.Context, entryID, categoryID string) error {
	if !s.registry.Has(categoryID) {
		return ledger.NewValidationError("category %s does not exist", categoryID)
	}
	return s.store.UpdateEntryField(ctx, entryID, store.FieldCategory, categoryID)
}

// UpdateNotes replaces an entry's optional notes.
func (s *LedgerService) UpdateNotes(ctx context.Context, entryID, notes string) error {
	return s.store.UpdateEntryField(ctx, entryID, store.FieldNotes, notes)
}

// UpdateDate moves an entry to another calendar date.
func (s *LedgerService) UpdateDate(ctx context.Context, entryID, isoDate string) error {
	if _, err := ledger.ParseDate(isoDate); err != nil {
		return err
	}
	return s.store.UpdateEntryField(ctx, entryID, store.FieldDate, isoDate)
}

// Delete removes a single entry.
func (s *LedgerService) Delete(ctx context.Context, entryID string) error {
	return s.store.DeleteEntry(ctx, entryID)
}

// AddCategory registers and persists a custom category.
func (s *LedgerService) AddCategory(ctx context.Context, c ledger.Category) error {
	if err := s.registry.Add(c); err != nil {
		return err
	}
	if err := s.store.PutCategory(ctx, s.registry.Resolve(c.Id)); err != nil {
		// Roll the registry back so in-memory and stored state agree.
		_ = s.registry.Remove(c.Id)
		return err
	}
	return nil
}

// RemoveCategory deletes a custom category. Built-in ids are rejected before
// any persistence attempt. Entries referencing the removed id keep their
// category value and render via the fallback category.
func (s *LedgerService) RemoveCategory(ctx context.Context, categoryID string) error {
	if err := s.registry.Remove(categoryID); err != nil {
		return err
	}
	return s.store.DeleteCategory(ctx, categoryID)
}

// Categories returns the registry contents, built-ins first.
func (s *LedgerService) Categories() []ledger.Category {
	return s.registry.All()
}

// Watch subscribes fn to full entry-set snapshots. Each delivery replaces the
// previous one wholesale; callers recompute projections from scratch per
// snapshot.
func (s *LedgerService) Watch(ctx context.Context, fn store.SnapshotFunc) (func(), error) {
	return s.store.Subscribe(ctx, fn)
}
