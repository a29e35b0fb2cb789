package auth

import "sync"

// WildcardSubject is the registry marker meaning "treat every currently held
// session as invalid". The back-channel logout handler adds it when the
// affected subject cannot be determined from the notification payload.
const WildcardSubject = "*"

// InvalidationSet is the process-wide registry of invalidated subjects.
//
// It is the single piece of cross-request shared mutable state: back-channel
// logout notifications write to it concurrently with guard checks and
// re-logins, so every operation takes the mutex. Entries have no TTL; a
// marker stays until the same subject's successful re-login removes it via
// Clear.
//
// All operations are total functions over the set; none of them can fail.
type InvalidationSet struct {
	mu       sync.RWMutex
	subjects map[string]struct{}
}

// NewInvalidationSet creates an empty registry. One instance is constructed
// at process start and passed by reference to every request path that needs
// it.
func NewInvalidationSet() *InvalidationSet {
	return &InvalidationSet{
		subjects: make(map[string]struct{}),
	}
}

// Invalidate adds a marker for the given subject. Idempotent.
func (s *InvalidationSet) Invalidate(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subjects[subject] = struct{}{}
}

// InvalidateAll adds the wildcard marker, invalidating every session at the
// next guard check.
func (s *InvalidationSet) InvalidateAll() {
	s.Invalidate(WildcardSubject)
}

// IsInvalidated reports whether the subject's marker or the wildcard marker
// is present.
func (s *InvalidationSet) IsInvalidated(subject string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.subjects[WildcardSubject]; ok {
		return true
	}

	_, ok := s.subjects[subject]

	return ok
}

// Clear removes the subject's marker AND the wildcard marker. A wildcard is
// a blunt instrument: one user's successful re-login must not stay globally
// blocked by someone else's wildcard, so any re-login clears it too.
func (s *InvalidationSet) Clear(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subjects, subject)
	delete(s.subjects, WildcardSubject)
}

// Len returns the number of markers currently held, wildcard included.
func (s *InvalidationSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.subjects)
}
