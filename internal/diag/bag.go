package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics up to a limit.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag returns a bag holding at most limit diagnostics. A limit of zero
// or less means no limit.
func NewBag(limit int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max(limit, 0), 256)),
		limit: limit,
	}
}

// Add stores d and reports whether there was room for it.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Extend adds every diagnostic of ds, stopping at the limit.
func (b *Bag) Extend(ds []Diagnostic) {
	for _, d := range ds {
		if !b.Add(d) {
			return
		}
	}
}

// Merge appends other, growing the limit to fit.
func (b *Bag) Merge(other *Bag) {
	if b.limit > 0 {
		b.limit = max(b.limit, len(b.items)+len(other.items))
	}
	b.items = append(b.items, other.items...)
}

// Len is the number of stored diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the stored diagnostics. The slice is shared with the bag.
func (b *Bag) Items() []Diagnostic { return b.items }

// Count returns how many diagnostics have exactly severity sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any diagnostic is an error.
func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

// Sort orders by file, span, then errors before warnings, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
