package statesync

import (
	"context"

	"github.com/3lokai/icb-directory-backend/models"
)

// Text search runs as two independent cancellable steps: a debounce timer
// that commits the draft, and an oracle call whose result only applies if
// the draft hasn't moved on. The draft sequence number is the staleness
// token for both.

// SetSearchDraft records a keystroke. The draft is immediately visible (for
// responsive input rendering) but only committed to the oracle after the
// debounce interval passes without further keystrokes.
func (s *Synchronizer) SetSearchDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.draftSeq++
	seq := s.draftSeq
	if s.cancelTimer != nil {
		s.cancelTimer()
	}
	s.cancelTimer = s.after(s.debounce, func() {
		s.commitDraft(seq)
	})
	s.mu.Unlock()
}

// SearchDraft returns the in-flight draft text.
func (s *Synchronizer) SearchDraft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// CommitSearch commits the draft immediately (blur or Enter), bypassing the
// debounce.
func (s *Synchronizer) CommitSearch() {
	s.mu.Lock()
	if s.cancelTimer != nil {
		s.cancelTimer()
		s.cancelTimer = nil
	}
	seq := s.draftSeq
	s.mu.Unlock()
	s.commitDraft(seq)
}

func (s *Synchronizer) commitDraft(seq uint64) {
	s.mu.Lock()
	if seq != s.draftSeq {
		s.mu.Unlock()
		return
	}
	query := s.draft
	s.mu.Unlock()

	var ids []int64
	if query != "" && s.oracle != nil {
		matched, err := s.oracle.Match(context.Background(), query)
		if err == nil {
			ids = matched
		}
		// oracle failure degrades to the plain substring match

		s.mu.Lock()
		stale := seq != s.draftSeq
		s.mu.Unlock()
		if stale {
			// the draft changed while the oracle ran; discard
			return
		}
	}

	s.Apply(func(f *models.FilterSpec) {
		f.Query = query
		f.IDFilter = ids
		f.Page = 1
	})
}
