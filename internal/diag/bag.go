package diag

import (
	"sort"
)

// Bag collects records. A zero max means no limit.
type Bag struct {
	items []Record
	max   int
}

func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 16
	}
	return &Bag{
		items: make([]Record, 0, capHint),
		max:   max,
	}
}

// Add добавляет запись, учитывая лимит.
// Возвращает false, если запись не добавлена (достигнут лимит).
func (b *Bag) Add(r Record) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, r)
	return true
}

// HasErrors возвращает true, если есть хотя бы одна запись с Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одна запись с Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Count returns the number of records with the given severity.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice записей.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (b *Bag) Items() []Record {
	return b.items
}

// Merge объединяет записи из другого Bag, расширяя лимит при необходимости.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); b.max > 0 && total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders records by position, then by code, keeping emission order for ties.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		ri, rj := b.items[i], b.items[j]
		if ri.Primary.File != rj.Primary.File {
			return ri.Primary.File < rj.Primary.File
		}
		if ri.Pos.Line != rj.Pos.Line {
			return ri.Pos.Line < rj.Pos.Line
		}
		if ri.Pos.Col != rj.Pos.Col {
			return ri.Pos.Col < rj.Pos.Col
		}
		return ri.Code < rj.Code
	})
}
