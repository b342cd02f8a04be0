package engine

import "time"

// FilterAll is the wildcard value for every filter dimension.
const FilterAll = "all"

// Period scopes the primary dashboard view to one calendar month.
type Period struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// Filters constrains the entry list. Each dimension is either FilterAll or an
// exact-match value; active dimensions combine with logical AND.
type Filters struct {
	Category      string `json:"category"`
	Recurrence    string `json:"recurrence"`
	PaymentMethod string `json:"paymentMethod"`
	Type          string `json:"type"`
}

// DefaultFilters returns filters with every dimension unconstrained.
func DefaultFilters() Filters {
	return Filters{
		Category:      FilterAll,
		Recurrence:    FilterAll,
		PaymentMethod: FilterAll,
		Type:          FilterAll,
	}
}

// matchDim reports whether a single filter dimension admits a value. An empty
// dimension is treated as FilterAll.
func matchDim(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// Match reports whether an entry passes every filter dimension.
func (f Filters) Match(category, recurrence, paymentMethod, entryType string) bool {
	return matchDim(f.Category, category) &&
		matchDim(f.Recurrence, recurrence) &&
		matchDim(f.PaymentMethod, paymentMethod) &&
		matchDim(f.Type, entryType)
}

// SortField names an Entry field the list can be ordered by.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
	SortByStatus      SortField = "status"
)

// Sort describes the requested ordering. An empty Field sorts by date.
type Sort struct {
	Field      SortField `json:"field"`
	Descending bool      `json:"descending"`
}

// DefaultSort returns the dashboard's initial ordering.
func DefaultSort() Sort {
	return Sort{Field: SortByDate, Descending: true}
}

// Toggle returns the sort resulting from clicking a column header: the same
// field flips direction, a new field resets to descending.
func (s Sort) Toggle(field SortField) Sort {
	if s.Field == field {
		return Sort{Field: field, Descending: !s.Descending}
	}
	return Sort{Field: field, Descending: true}
}

// ViewState is the full, serializable description of what the dashboard is
// looking at. It is passed into the engine as a plain parameter object; the
// engine keeps no ambient state.
type ViewState struct {
	Period  Period  `json:"period"`
	Filters Filters `json:"filters"`
	Sort    Sort    `json:"sort"`
}

// NewViewState returns the default view for the given month.
func NewViewState(month time.Month, year int) ViewState {
	return ViewState{
		Period:  Period{Month: month, Year: year},
		Filters: DefaultFilters(),
		Sort:    DefaultSort(),
	}
}
