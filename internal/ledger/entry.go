package ledger

import (
	"strings"
	"time"
)

// EntryType is the authoritative sign driver for an entry. Category never
// influences whether an amount adds to or subtracts from the balance.
type EntryType string

const (
	TypeIncome  EntryType = "receita"
	TypeExpense EntryType = "despesa"
)

// PaymentMethod records how an entry was settled.
type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "pix"
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// EntryStatus marks whether an entry has been settled.
type EntryStatus string

const (
	StatusPaid   EntryStatus = "paid"
	StatusUnpaid EntryStatus = "unpaid"
)

// Recurrence describes how a submission expands into entries.
type Recurrence string

const (
	RecurrenceOneOff       Recurrence = "one-off"
	RecurrenceFixedMonthly Recurrence = "fixed-monthly"
	RecurrenceInstallment  Recurrence = "installment"
)

// Entry is one recorded income or expense line item.
//
// AmountCents is the canonical magnitude; Amount mirrors it as currency units
// for clients that read the raw documents. Both are always positive.
type Entry struct {
	Id               string
	AmountCents      int64
	Amount           float64
	Description      string
	Category         string
	PaymentMethod    PaymentMethod
	Type             EntryType
	Date             time.Time
	Status           EntryStatus
	Recurrence       Recurrence
	InstallmentIndex int32
	InstallmentCount int32
	Notes            string
}

// IsIncome reports whether the entry adds to the running balance.
func (e *Entry) IsIncome() bool {
	return e.Type == TypeIncome
}

// SignedCents returns the entry's contribution to the running balance.
func (e *Entry) SignedCents() int64 {
	if e.IsIncome() {
		return e.AmountCents
	}
	return -e.AmountCents
}

// NormalizePaymentMethod maps arbitrary stored values onto the payment enum,
// falling back to pix for unknown or missing values.
func NormalizePaymentMethod(v string) PaymentMethod {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(v))) {
	case PaymentCard:
		return PaymentCard
	case PaymentCash:
		return PaymentCash
	default:
		return PaymentPix
	}
}

// NormalizeType maps arbitrary stored values onto the entry type enum.
// Anything that is not income is treated as an expense.
func NormalizeType(v string) EntryType {
	if EntryType(strings.ToLower(strings.TrimSpace(v))) == TypeIncome {
		return TypeIncome
	}
	return TypeExpense
}

// NormalizeStatus maps arbitrary stored values onto the status enum,
// defaulting to paid.
func NormalizeStatus(v string) EntryStatus {
	if EntryStatus(strings.ToLower(strings.TrimSpace(v))) == StatusUnpaid {
		return StatusUnpaid
	}
	return StatusPaid
}

// NormalizeRecurrence maps arbitrary stored values onto the recurrence enum,
// defaulting to one-off.
func NormalizeRecurrence(v string) Recurrence {
	switch Recurrence(strings.ToLower(strings.TrimSpace(v))) {
	case RecurrenceFixedMonthly:
		return RecurrenceFixedMonthly
	case RecurrenceInstallment:
		return RecurrenceInstallment
	default:
		return RecurrenceOneOff
	}
}
