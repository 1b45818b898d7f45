package studio

// Subscribe returns a channel receiving every published view in revision
// order. A subscriber that falls behind by more than buf views misses the
// newer ones rather than blocking mutations. cancel is idempotent.
func (s *Studio) Subscribe(buf int) (<-chan View, func()) {
	if buf <= 0 {
		buf = 16
	}
	ch := make(chan View, buf)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
}

func (s *Studio) publishLocked(v View) {
	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
		}
	}
}
