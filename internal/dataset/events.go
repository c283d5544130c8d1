package dataset

// Change announces a committed edit. Version increases by one per change.
type Change struct {
	Operation string `json:"operation"`
	Version   uint64 `json:"version"`
}

const subscriberBuffer = 16

// Subscribe registers for change notifications. Slow subscribers miss
// changes rather than block edits; the version gap tells them to refetch.
// Call the returned function to unsubscribe.
func (s *Service) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)

	s.subMu.Lock()
	s.subscribers[ch] = struct{}{}
	s.subMu.Unlock()

	var once bool
	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if once {
			return
		}
		once = true
		delete(s.subscribers, ch)
		close(ch)
	}
}

// Version returns the number of changes applied since the service started
func (s *Service) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Service) publish(change Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for ch := range s.subscribers {
		select {
		case ch <- change:
		default:
			s.logger.Debug("Dropping change for slow subscriber", "version", change.Version)
		}
	}
}
