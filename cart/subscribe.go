package cart

import "go-marketplace/models"

// Subscribe registers fn to receive a snapshot after Load and after every
// saved mutation, in commit order. fn runs on the mutating goroutine and must
// not call back into the mutation methods.
func (s *Store) Subscribe(fn func([]models.CartItem)) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(items []models.CartItem) {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		snapshot := make([]models.CartItem, len(items))
		copy(snapshot, items)
		sub.fn(snapshot)
	}
}
