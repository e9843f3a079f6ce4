// Package site produces the stylesheets a static site build needs to render
// corrected documents: dash bullets and justified paragraphs.
package site

// AssetSet is an ordered set of asset references, as listed in a site's
// extra_css. Insertion order is kept; duplicates are dropped.
type AssetSet struct {
	items []string
	seen  map[string]struct{}
}

// NewAssetSet seeds the set with existing references.
func NewAssetSet(existing ...string) *AssetSet {
	s := &AssetSet{seen: make(map[string]struct{}, len(existing))}
	for _, item := range existing {
		s.Add(item)
	}
	return s
}

// Add inserts item and reports whether it was new.
func (s *AssetSet) Add(item string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[item]; ok {
		return false
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Has reports whether item is in the set.
func (s *AssetSet) Has(item string) bool {
	_, ok := s.seen[item]
	return ok
}

func (s *AssetSet) Len() int { return len(s.items) }

// Items returns a copy of the references in insertion order.
func (s *AssetSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
