package ledger

import (
	"time"

	"github.com/google/uuid"
)

// fixedMonthlyRuns is how many rows a fixed-monthly submission expands to:
// the start month plus the following eleven.
const fixedMonthlyRuns = 12

// Submission is one logical user entry before recurrence expansion.
type Submission struct {
	AmountCents      int64
	Description      string
	Category         string
	PaymentMethod    PaymentMethod
	Type             EntryType
	StartDate        time.Time
	Recurrence       Recurrence
	InstallmentCount int32
	Notes            string

	// PriorStatus preserves the status of an existing entry being edited.
	// Only honored for one-off submissions.
	PriorStatus EntryStatus
}

// Expand turns a submission into the concrete set of entries to persist.
// It is pure: persistence, including the atomic-batch requirement for
// multi-row expansions, is the store's concern.
//
// One-off yields one paid entry on the start date. Fixed-monthly yields 12
// entries one calendar month apart, the first paid and the rest unpaid.
// Installment yields InstallmentCount unpaid entries carrying 1-based indices.
// Month addition clamps at month ends, so a Jan 31 start never produces an
// invalid Feb 31.
func Expand(reg *Registry, sub Submission) ([]*Entry, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	description := sub.Description
	if description == "" {
		description = reg.Resolve(sub.Category).Label
	}
	category := sub.Category
	if !reg.Has(category) {
		category = FallbackCategoryId
	}
	start := Midday(sub.StartDate)

	base := Entry{
		AmountCents:   sub.AmountCents,
		Amount:        float64(sub.AmountCents) / 100,
		Description:   description,
		Category:      category,
		PaymentMethod: NormalizePaymentMethod(string(sub.PaymentMethod)),
		Type:          sub.Type,
		Notes:         sub.Notes,
		Recurrence:    sub.Recurrence,
	}

	switch sub.Recurrence {
	case RecurrenceFixedMonthly:
		entries := make([]*Entry, 0, fixedMonthlyRuns)
		for i := 0; i < fixedMonthlyRuns; i++ {
			e := base
			e.Id = uuid.New().String()
			e.Date = AddMonths(start, i)
			e.Status = StatusUnpaid
			if i == 0 {
				e.Status = StatusPaid
			}
			entries = append(entries, &e)
		}
		return entries, nil

	case RecurrenceInstallment:
		entries := make([]*Entry, 0, sub.InstallmentCount)
		for i := int32(0); i < sub.InstallmentCount; i++ {
			e := base
			e.Id = uuid.New().String()
			e.Date = AddMonths(start, int(i))
			e.Status = StatusUnpaid
			e.InstallmentIndex = i + 1
			e.InstallmentCount = sub.InstallmentCount
			entries = append(entries, &e)
		}
		return entries, nil

	default:
		e := base
		e.Id = uuid.New().String()
		e.Date = start
		e.Recurrence = RecurrenceOneOff
		e.Status = StatusPaid
		if sub.PriorStatus != "" {
			e.Status = NormalizeStatus(string(sub.PriorStatus))
		}
		return []*Entry{&e}, nil
	}
}

func validateSubmission(sub Submission) error {
	if sub.AmountCents <= 0 {
		return NewValidationError("amount must be positive, got %d cents", sub.AmountCents)
	}
	if sub.Type != TypeIncome && sub.Type != TypeExpense {
		return NewValidationError("entry type is required")
	}
	if sub.StartDate.IsZero() {
		return NewValidationError("start date is required")
	}
	if sub.Recurrence == RecurrenceInstallment && sub.InstallmentCount < 1 {
		return NewValidationError("installment count must be at least 1, got %d", sub.InstallmentCount)
	}
	return nil
}
