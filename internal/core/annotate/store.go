package annotate

import "github.com/pmatos/great-review/pkg/randid"

// Store is an addressable multimap from hunk key to an ordered list of
// annotations. Absence of a key is itself meaningful: an unreviewed hunk
// counts as approved. The store has no internal synchronization; a
// multi-threaded host must serialize mutations itself.
type Store struct {
	entries map[Key][]Annotation
}

// NewStore returns an empty annotation store.
func NewStore() *Store {
	return &Store{entries: make(map[Key][]Annotation)}
}

// Add appends the annotation to the key's list, creating the list if
// absent. Every call adds a new entry; nothing is deduplicated or
// replaced. A missing ID is generated. Returns the stored annotation.
func (s *Store) Add(key Key, ann Annotation) Annotation {
	if ann.ID == "" {
		ann.ID = randid.Generate(idLength)
	}
	s.entries[key] = append(s.entries[key], ann)
	return ann
}

// Remove deletes the annotation with the given ID from the key's list.
// When the list drains, the key itself is removed, so "has any
// annotation" and "key present" stay equivalent. Removing an unknown ID
// is a no-op.
func (s *Store) Remove(key Key, id string) {
	anns, ok := s.entries[key]
	if !ok {
		return
	}

	for i, ann := range anns {
		if ann.ID != id {
			continue
		}
		anns = append(anns[:i], anns[i+1:]...)
		if len(anns) == 0 {
			delete(s.entries, key)
		} else {
			s.entries[key] = anns
		}
		return
	}
}

// Clear removes the key entirely regardless of contents.
func (s *Store) Clear(key Key) {
	delete(s.entries, key)
}

// Get returns a copy of the key's annotations in insertion order. The
// copy is deep: mutating a returned annotation, including its line
// range, never touches stored state.
func (s *Store) Get(key Key) []Annotation {
	anns, ok := s.entries[key]
	if !ok {
		return nil
	}
	out := make([]Annotation, len(anns))
	copy(out, anns)
	for i, ann := range out {
		if ann.SelectedLines != nil {
			r := *ann.SelectedLines
			out[i].SelectedLines = &r
		}
	}
	return out
}

// Count returns the number of annotations stored under the key.
func (s *Store) Count(key Key) int {
	return len(s.entries[key])
}

// Len returns the total number of annotations across all keys.
func (s *Store) Len() int {
	n := 0
	for _, anns := range s.entries {
		n += len(anns)
	}
	return n
}

// EffectivelyApproved reports whether the hunk needs no attention: the
// key is absent (unreviewed counts as approved) or every annotation under
// it is an approval, regardless of scope. Computed as a fold each call so
// it can never go stale.
func (s *Store) EffectivelyApproved(key Key) bool {
	for _, ann := range s.entries[key] {
		if ann.Decision != DecisionApproved {
			return false
		}
	}
	return true
}
