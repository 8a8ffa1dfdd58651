package diag

import (
	"fmt"
	"sort"
)

// Bag accumulates diagnostics up to a fixed limit.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag with a capacity limit; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	if max <= 0 {
		return &Bag{max: int(^uint(0) >> 1)}
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   max,
	}
}

// Add appends a diagnostic, honoring the limit. Reports false when the
// diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic has severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic has severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns a read-only view of the accumulated diagnostics. The
// slice aliases the bag's storage; do not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders diagnostics by site, then severity (most severe first),
// then code, for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary != dj.Primary {
			return di.Primary.String() < dj.Primary.String()
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Merge appends every diagnostic from other, honoring the limit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		b.Add(d)
	}
}

// CountBySeverity tallies diagnostics per severity.
func (b *Bag) CountBySeverity() map[Severity]int {
	out := make(map[Severity]int, 3)
	for i := range b.items {
		out[b.items[i].Severity]++
	}
	return out
}

// Summary renders a short "N error(s), M warning(s)" line.
func (b *Bag) Summary() string {
	counts := b.CountBySeverity()
	return fmt.Sprintf("%d error(s), %d warning(s)", counts[SevError], counts[SevWarning])
}
