// Package store abstracts the external document database holding the ledger.
//
// The engine and the ledger service consume this capability set, never a
// concrete implementation. Subscriptions deliver the complete current entry
// set on every change: each callback is a full-state replacement, not a diff.
package store

import (
	"context"

	"github.com/minhamerreca/backend/internal/ledger"
)

// SnapshotFunc receives the full entry set after every change.
type SnapshotFunc func(entries []*ledger.Entry)

// Store defines the persistence operations used by the ledger service.
//
// All operations are asynchronous network calls on the Firestore
// implementation; failures surface as wrapped errors carrying the underlying
// message, never as silent no-ops. InsertEntries is atomic: either every row
// of a recurrence expansion becomes visible or none does.
type Store interface {
	// Entry operations
	InsertEntry(ctx context.Context, entry *ledger.Entry) (string, error)
	InsertEntries(ctx context.Context, entries []*ledger.Entry) ([]string, error)
	UpdateEntryField(ctx context.Context, entryID, field string, value any) error
	DeleteEntry(ctx context.Context, entryID string) error

	// Subscribe streams full-collection snapshots to fn until the returned
	// stop function is called or ctx is canceled. The stream is infinite and
	// not restartable; unsubscribing is the only cancellation.
	Subscribe(ctx context.Context, fn SnapshotFunc) (func(), error)

	// Category operations
	ListCategories(ctx context.Context) ([]ledger.Category, error)
	PutCategory(ctx context.Context, category ledger.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}

// Entry document fields addressable by UpdateEntryField. Names match the
// persisted document keys.
const (
	FieldAmountCents   = "AmountCents"
	FieldAmount        = "Amount"
	FieldDescription   = "Description"
	FieldCategory      = "Category"
	FieldPaymentMethod = "PaymentMethod"
	FieldType          = "Type"
	FieldDate          = "Date"
	FieldStatus        = "Status"
	FieldNotes         = "Notes"
)

// IsUpdatableField reports whether field names a document key that inline
// edits may touch.
func IsUpdatableField(field string) bool {
	switch field {
	case FieldAmountCents, FieldAmount, FieldDescription, FieldCategory,
		FieldPaymentMethod, FieldType, FieldDate, FieldStatus, FieldNotes:
		return true
	}
	return false
}
