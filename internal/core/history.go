package core

// History returns the edits committed to a grid since start or the last
// reset, newest first. Edits replayed from the store at startup are not part
// of the history: their previous values are unknown.
func (s *Service) History(key GridKey, limit int) ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.gridLocked(key)
	if err != nil {
		return nil, err
	}

	n := len(g.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]HistoryEntry, 0, n)
	for i := len(g.history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, g.history[i])
	}
	return out, nil
}
