package transform

import (
	"github.com/zeebo/xxh3"

	"custetl/internal/schema"
)

// keySep separates key parts before hashing; none of the parts can contain it
// after date normalization (dates render as YYYY-MM-DD, ids are opaque text
// without record separators in this feed).
const keySep = "\x1f"

// DeDup collapses repeats of the same upsert identity inside one batch,
// keeping the last occurrence. The store's delete-then-insert already makes
// the last row win when rows are applied one by one; de-duplicating up front
// preserves that outcome while letting the loader batch its work.
func DeDup(in []schema.Customer) []schema.Customer {
	if len(in) < 2 {
		return in
	}

	last := make(map[uint64]int, len(in))
	for i, c := range in {
		last[identityHash(c)] = i
	}
	if len(last) == len(in) {
		return in
	}

	out := make([]schema.Customer, 0, len(last))
	for i, c := range in {
		if last[identityHash(c)] == i {
			out = append(out, c)
		}
	}
	return out
}

// identityHash hashes the upsert identity plus country: records for the same
// person landing in different country tables never shadow each other.
func identityHash(c schema.Customer) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(c.ID)
	_, _ = h.WriteString(keySep)
	_, _ = h.WriteString(c.DOB.Format("2006-01-02"))
	_, _ = h.WriteString(keySep)
	_, _ = h.WriteString(c.Country)
	return h.Sum64()
}
