// Package dedupe merges entities into client-held collections without
// introducing duplicate identifiers.
package dedupe

import "github.com/okian/paragon/internal/domain/model"

// AddToCollectionIfMissing appends every candidate whose identifier is not
// already present in collection.
//
// Nil candidates are skipped. Candidates without an identifier are always
// appended. Duplicates already present in collection are kept; only new ones
// are prevented, including duplicates among the candidates themselves.
//
// When nothing is appended the original slice is returned as is, so callers
// can detect "no change" cheaply. Otherwise the result is a fresh slice that
// does not share memory with collection.
func AddToCollectionIfMissing[E model.Identifiable](collection []E, candidates []*E) []E {
	var (
		out  []E
		seen map[int64]struct{}
	)
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if id := (*c).Identifier(); id != nil {
			if seen == nil {
				seen = identifiers(collection)
			}
			if _, ok := seen[*id]; ok {
				continue
			}
			seen[*id] = struct{}{}
		}
		if out == nil {
			out = make([]E, len(collection), len(collection)+len(candidates))
			copy(out, collection)
		}
		out = append(out, *c)
	}
	if out == nil {
		return collection
	}
	return out
}

func identifiers[E model.Identifiable](collection []E) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(collection))
	for _, e := range collection {
		if id := e.Identifier(); id != nil {
			ids[*id] = struct{}{}
		}
	}
	return ids
}
