package store

import (
	"context"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/minhamerreca/backend/internal/ledger"
)

// Default collection names. The original web client wrote entries to
// "transactions"; both names are configurable so either deployment works.
const (
	DefaultEntryCollection    = "transactions"
	DefaultCategoryCollection = "categories"
)

// FirestoreStore implements Store on Google Cloud Firestore.
type FirestoreStore struct {
	client     *firestore.Client
	entries    string
	categories string
}

// NewFirestoreStore creates a Firestore-backed store over the given
// collections. Empty collection names fall back to the defaults.
func NewFirestoreStore(client *firestore.Client, entryCollection, categoryCollection string) *FirestoreStore {
	if entryCollection == "" {
		entryCollection = DefaultEntryCollection
	}
	if categoryCollection == "" {
		categoryCollection = DefaultCategoryCollection
	}
	return &FirestoreStore{
		client:     client,
		entries:    entryCollection,
		categories: categoryCollection,
	}
}

// InsertEntry creates a single entry document and returns its id.
func (s *FirestoreStore) InsertEntry(ctx context.Context, entry *ledger.Entry) (string, error) {
	id := entry.Id
	if id == "" {
		id = uuid.New().String()
	}
	if _, err := s.client.Collection(s.entries).Doc(id).Set(ctx, docFromEntry(entry)); err != nil {
		return "", ledger.NewPersistenceError("insert entry", err)
	}
	return id, nil
}

// InsertEntries creates all entries in one atomic batch. Either every row of
// a recurrence expansion becomes visible or none does; readers never observe
// a partially applied submission.
func (s *FirestoreStore) InsertEntries(ctx context.Context, entries []*ledger.Entry) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	batch := s.client.Batch()
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		id := entry.Id
		if id == "" {
			id = uuid.New().String()
		}
		batch.Set(s.client.Collection(s.entries).Doc(id), docFromEntry(entry))
		ids = append(ids, id)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return nil, ledger.NewPersistenceError("insert entry batch", err)
	}
	return ids, nil
}

// UpdateEntryField updates a single field of an entry document.
func (s *FirestoreStore) UpdateEntryField(ctx context.Context, entryID, field string, value any) error {
	if !IsUpdatableField(field) {
		return ledger.NewValidationError("field %s is not updatable", field)
	}

	_, err := s.client.Collection(s.entries).Doc(entryID).Update(ctx, []firestore.Update{
		{Path: field, Value: value},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ledger.NewNotFoundError(entryID, err)
		}
		return ledger.NewPersistenceError("update entry field", err)
	}
	return nil
}

// DeleteEntry deletes an entry document. Deleting an already-vanished entry
// succeeds: Firestore deletes are idempotent, matching the benign-race policy.
func (s *FirestoreStore) DeleteEntry(ctx context.Context, entryID string) error {
	if _, err := s.client.Collection(s.entries).Doc(entryID).Delete(ctx); err != nil {
		return ledger.NewPersistenceError("delete entry", err)
	}
	return nil
}

// Subscribe streams full-collection snapshots until stop is called or ctx is
// canceled. Every change delivers the complete current entry set, never a
// diff, mirroring the web client's onSnapshot usage.
func (s *FirestoreStore) Subscribe(ctx context.Context, fn SnapshotFunc) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	snaps := s.client.Collection(s.entries).Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				log.Printf("[FirestoreStore] snapshot stream ended: %v", err)
				return
			}

			entries := make([]*ledger.Entry, 0, snap.Size)
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("[FirestoreStore] snapshot read error: %v", err)
					break
				}
				entries = append(entries, entryFromData(doc.Ref.ID, doc.Data()))
			}
			fn(entries)
		}
	}()

	return cancel, nil
}

// ListCategories returns the stored custom categories ordered by id.
func (s *FirestoreStore) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	docs, err := s.client.Collection(s.categories).Documents(ctx).GetAll()
	if err != nil {
		return nil, ledger.NewPersistenceError("list categories", err)
	}

	categories := make([]ledger.Category, 0, len(docs))
	for _, doc := range docs {
		var d categoryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, ledger.NewPersistenceError("parse category", err)
		}
		categories = append(categories, categoryFromDoc(doc.Ref.ID, d))
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Id < categories[j].Id })
	return categories, nil
}

// PutCategory creates or replaces a custom category document.
func (s *FirestoreStore) PutCategory(ctx context.Context, category ledger.Category) error {
	if _, err := s.client.Collection(s.categories).Doc(category.Id).Set(ctx, docFromCategory(category)); err != nil {
		return ledger.NewPersistenceError("put category", err)
	}
	return nil
}

// DeleteCategory deletes a custom category document. Entries referencing the
// id are left untouched; they resolve to the fallback category for display.
func (s *FirestoreStore) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.client.Collection(s.categories).Doc(categoryID).Delete(ctx); err != nil {
		return ledger.NewPersistenceError("delete category", err)
	}
	return nil
}
