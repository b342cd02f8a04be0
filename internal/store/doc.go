package store

import (
	"math"
	"time"

	"github.com/minhamerreca/backend/internal/ledger"
)

// entryDoc is the flat persisted shape of an entry. Field names are the
// document keys; dates travel as ISO YYYY-MM-DD strings.
type entryDoc struct {
	AmountCents      int64
	Amount           float64
	Description      string
	Category         string
	PaymentMethod    string
	Type             string
	Date             string
	Status           string
	Recurrence       string
	InstallmentIndex int32
	InstallmentCount int32
	Notes            string
}

func docFromEntry(e *ledger.Entry) entryDoc {
	return entryDoc{
		AmountCents:      e.AmountCents,
		Amount:           float64(e.AmountCents) / 100,
		Description:      e.Description,
		Category:         e.Category,
		PaymentMethod:    string(e.PaymentMethod),
		Type:             string(e.Type),
		Date:             ledger.FormatDate(e.Date),
		Status:           string(e.Status),
		Recurrence:       string(e.Recurrence),
		InstallmentIndex: e.InstallmentIndex,
		InstallmentCount: e.InstallmentCount,
		Notes:            e.Notes,
	}
}

// entryFromData rebuilds an entry from raw document data. Documents written
// by the original web client use lowercase Portuguese keys (valor, categoria,
// descricao, tipo, data) and no cent field; those aliases are honored so old
// and new documents coexist in one collection. Reads are tolerant: malformed
// values normalize to defaults instead of failing the whole snapshot.
func entryFromData(id string, m map[string]any) *ledger.Entry {
	cents := asInt64(m, "AmountCents")
	if cents == 0 {
		if units := asFloat64(m, "Amount", "valor", "amount"); units != 0 {
			cents = int64(math.Round(units * 100))
		}
	}

	e := &ledger.Entry{
		Id:               id,
		AmountCents:      cents,
		Amount:           float64(cents) / 100,
		Description:      asString(m, "Description", "descricao", "description"),
		Category:         asString(m, "Category", "categoria", "category"),
		PaymentMethod:    ledger.NormalizePaymentMethod(asString(m, "PaymentMethod", "pagamento")),
		Type:             ledger.NormalizeType(asString(m, "Type", "tipo")),
		Date:             dateFromData(m),
		Status:           ledger.NormalizeStatus(asString(m, "Status", "status")),
		Recurrence:       ledger.NormalizeRecurrence(asString(m, "Recurrence", "recorrencia")),
		InstallmentIndex: int32(asInt64(m, "InstallmentIndex")),
		InstallmentCount: int32(asInt64(m, "InstallmentCount")),
		Notes:            asString(m, "Notes", "notas"),
	}
	if e.Category == "" {
		e.Category = ledger.FallbackCategoryId
	}
	return e
}

func dateFromData(m map[string]any) time.Time {
	for _, key := range []string{"Date", "data", "date"} {
		if s, ok := m[key].(string); ok && s != "" {
			if t, err := ledger.ParseDate(s); err == nil {
				return t
			}
		}
	}
	for _, key := range []string{"CreatedAt", "createdAt"} {
		if t, ok := m[key].(time.Time); ok {
			return ledger.Midday(t)
		}
	}
	return ledger.Midday(time.Now())
}

func asString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func asFloat64(m map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return v
		case int64:
			return float64(v)
		}
	}
	return 0
}

func asInt64(m map[string]any, keys ...string) int64 {
	for _, key := range keys {
		switch v := m[key].(type) {
		case int64:
			return v
		case float64:
			return int64(v)
		}
	}
	return 0
}

// categoryDoc is the flat persisted shape of a custom category.
type categoryDoc struct {
	Label string
	Color string
	Type  string
}

func docFromCategory(c ledger.Category) categoryDoc {
	return categoryDoc{Label: c.Label, Color: c.Color, Type: string(c.Type)}
}

func categoryFromDoc(id string, d categoryDoc) ledger.Category {
	return ledger.Category{
		Id:    id,
		Label: d.Label,
		Color: d.Color,
		Type:  ledger.NormalizeType(d.Type),
	}
}
