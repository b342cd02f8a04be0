package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/minhamerreca/backend/internal/ledger"
)

// MemoryStore implements Store with in-memory maps. It backs tests and local
// development, and honors the same contracts as the Firestore store:
// batch inserts are atomic and every mutation broadcasts a full snapshot.
type MemoryStore struct {
	mu          sync.RWMutex
	entries     map[string]*ledger.Entry
	categories  map[string]ledger.Category
	subscribers map[int]SnapshotFunc
	nextSub     int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string]*ledger.Entry),
		categories:  make(map[string]ledger.Category),
		subscribers: make(map[int]SnapshotFunc),
	}
}

// InsertEntry creates a single entry and returns its id.
func (s *MemoryStore) InsertEntry(ctx context.Context, entry *ledger.Entry) (string, error) {
	ids, err := s.InsertEntries(ctx, []*ledger.Entry{entry})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// InsertEntries inserts all entries atomically: validation runs over the whole
// batch before any row is stored, and one snapshot broadcast covers the batch.
func (s *MemoryStore) InsertEntries(_ context.Context, entries []*ledger.Entry) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		id := entry.Id
		if id == "" {
			id = uuid.New().String()
		}
		clone := *entry
		clone.Id = id
		s.entries[id] = &clone
		ids = append(ids, id)
	}
	s.mu.Unlock()

	s.broadcast()
	return ids, nil
}

// UpdateEntryField updates one field of a stored entry.
func (s *MemoryStore) UpdateEntryField(_ context.Context, entryID, field string, value any) error {
	if !IsUpdatableField(field) {
		return ledger.NewValidationError("field %s is not updatable", field)
	}

	s.mu.Lock()
	entry, ok := s.entries[entryID]
	if !ok {
		s.mu.Unlock()
		return ledger.NewNotFoundError(entryID, nil)
	}
	if err := applyField(entry, field, value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.broadcast()
	return nil
}

// DeleteEntry removes an entry. Deleting a vanished id succeeds, matching the
// Firestore store's idempotent delete.
func (s *MemoryStore) DeleteEntry(_ context.Context, entryID string) error {
	s.mu.Lock()
	_, existed := s.entries[entryID]
	delete(s.entries, entryID)
	s.mu.Unlock()

	if existed {
		s.broadcast()
	}
	return nil
}

// Subscribe registers fn for full-state snapshots. The current state is
// delivered immediately, then after every mutation, until stop is called or
// ctx is canceled.
func (s *MemoryStore) Subscribe(ctx context.Context, fn SnapshotFunc) (func(), error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	stop := func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
	go func() {
		<-ctx.Done()
		stop()
	}()

	fn(s.snapshot())
	return stop, nil
}

// ListCategories returns the stored custom categories ordered by id.
func (s *MemoryStore) ListCategories(_ context.Context) ([]ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]ledger.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Id < categories[j].Id })
	return categories, nil
}

// PutCategory creates or replaces a custom category.
func (s *MemoryStore) PutCategory(_ context.Context, category ledger.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.Id] = category
	return nil
}

// DeleteCategory removes a custom category, leaving entries untouched.
func (s *MemoryStore) DeleteCategory(_ context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, categoryID)
	return nil
}

// snapshot clones the full entry set ordered by id, matching the document
// ordering of an unordered Firestore collection query.
func (s *MemoryStore) snapshot() []*ledger.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*ledger.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		clone := *e
		entries = append(entries, &clone)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Id < entries[j].Id })
	return entries
}

func (s *MemoryStore) broadcast() {
	snap := s.snapshot()

	s.mu.RLock()
	fns := make([]SnapshotFunc, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// applyField mirrors the Firestore field-path update on an in-memory entry.
func applyField(e *ledger.Entry, field string, value any) error {
	switch field {
	case FieldAmountCents:
		cents, ok := toInt64(value)
		if !ok {
			return ledger.NewValidationError("AmountCents requires an integer value")
		}
		e.AmountCents = cents
		e.Amount = float64(cents) / 100
	case FieldAmount:
		units, ok := toFloat64(value)
		if !ok {
			return ledger.NewValidationError("Amount requires a numeric value")
		}
		e.Amount = units
	case FieldDescription:
		e.Description, _ = value.(string)
	case FieldCategory:
		e.Category, _ = value.(string)
	case FieldPaymentMethod:
		s, _ := value.(string)
		e.PaymentMethod = ledger.NormalizePaymentMethod(s)
	case FieldType:
		s, _ := value.(string)
		e.Type = ledger.NormalizeType(s)
	case FieldDate:
		s, _ := value.(string)
		t, err := ledger.ParseDate(s)
		if err != nil {
			return err
		}
		e.Date = t
	case FieldStatus:
		s, _ := value.(string)
		e.Status = ledger.NormalizeStatus(s)
	case FieldNotes:
		e.Notes, _ = value.(string)
	}
	return nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*FirestoreStore)(nil)
