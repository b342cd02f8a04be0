package ledger

import "strings"

// FallbackCategoryId is the sentinel category used when an entry references an
// unknown or deleted category key. It is part of the built-in registry and can
// never be removed, so resolution is total.
const FallbackCategoryId = "outros"

// Category describes a ledger category. Color is a presentation token passed
// through to clients untouched.
type Category struct {
	Id      string
	Label   string
	Color   string
	Type    EntryType
	BuiltIn bool
}

// builtinCategories seeds every registry. Ids are referentially stable:
// historical entries keep pointing at them, so they are never deletable.
var builtinCategories = []Category{
	{Id: "entrada", Label: "Dinheiro que Entrou", Color: "#2ECC71", Type: TypeIncome, BuiltIn: true},
	{Id: "boletos", Label: "Contas da Casa", Color: "#F1C40F", Type: TypeExpense, BuiltIn: true},
	{Id: "comida", Label: "Comida e Mercado", Color: "#3498DB", Type: TypeExpense, BuiltIn: true},
	{Id: "transporte", Label: "Uber / Transporte", Color: "#95A5A6", Type: TypeExpense, BuiltIn: true},
	{Id: "saude", Label: "Saúde e Beleza", Color: "#E74C3C", Type: TypeExpense, BuiltIn: true},
	{Id: "lazer", Label: "Lazer e Rolê", Color: "#9B59B6", Type: TypeExpense, BuiltIn: true},
	{Id: "outros", Label: "Comprinhas / Outros", Color: "#34495E", Type: TypeExpense, BuiltIn: true},
}

// Registry holds the built-in categories plus any user-defined ones.
// Lookup never fails: unknown keys resolve to the fallback category.
type Registry struct {
	byId  map[string]Category
	order []string
}

// NewRegistry returns a registry seeded with the built-in categories.
func NewRegistry() *Registry {
	r := &Registry{byId: make(map[string]Category, len(builtinCategories))}
	for _, c := range builtinCategories {
		r.byId[c.Id] = c
		r.order = append(r.order, c.Id)
	}
	return r
}

// Resolve returns the category for id, or the fallback category when the id
// is unknown, empty, or was deleted after entries referenced it.
func (r *Registry) Resolve(id string) Category {
	if c, ok := r.byId[strings.ToLower(strings.TrimSpace(id))]; ok {
		return c
	}
	return r.byId[FallbackCategoryId]
}

// Has reports whether id is a known category key.
func (r *Registry) Has(id string) bool {
	_, ok := r.byId[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

// Add registers a custom category. Replacing a built-in id is rejected.
func (r *Registry) Add(c Category) error {
	id := strings.ToLower(strings.TrimSpace(c.Id))
	if id == "" {
		return NewValidationError("category id is required")
	}
	if c.Label == "" {
		return NewValidationError("category label is required")
	}
	if existing, ok := r.byId[id]; ok && existing.BuiltIn {
		return NewValidationError("category %s is built-in and cannot be replaced", id)
	}
	c.Id = id
	c.BuiltIn = false
	if existing, ok := r.byId[id]; !ok || existing.BuiltIn {
		r.order = append(r.order, id)
	}
	r.byId[id] = c
	return nil
}

// Remove deletes a custom category. Built-in ids are never deletable, keeping
// historical entries resolvable. Entries referencing the removed id are left
// untouched and render via the fallback category.
func (r *Registry) Remove(id string) error {
	id = strings.ToLower(strings.TrimSpace(id))
	c, ok := r.byId[id]
	if !ok {
		return NewValidationError("category %s does not exist", id)
	}
	if c.BuiltIn {
		return NewValidationError("category %s is built-in and cannot be deleted", id)
	}
	delete(r.byId, id)
	for i, key := range r.order {
		if key == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns the categories in registration order, built-ins first.
func (r *Registry) All() []Category {
	out := make([]Category, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byId[id])
	}
	return out
}
