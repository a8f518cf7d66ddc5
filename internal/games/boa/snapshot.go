package boa

// Snapshot is a read-only copy of everything a renderer or a replay check
// needs from a session.
type Snapshot struct {
	Steps     uint64
	Score     int
	Length    int
	Body      []Cell // tail first
	Head      Cell
	Dir       Direction
	Target    Cell
	HasTarget bool
	Progress  float64
	State     State
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	target, ok := s.Target()
	return Snapshot{
		Steps:     s.steps,
		Score:     s.score,
		Length:    s.Length(),
		Body:      s.Body(),
		Head:      s.Head(),
		Dir:       s.Direction(),
		Target:    target,
		HasTarget: ok,
		Progress:  s.Progress(),
		State:     s.state,
	}
}

// Equal reports whether two snapshots describe the same game position.
// Progress is ignored.
func (a Snapshot) Equal(b Snapshot) bool {
	if a.Steps != b.Steps || a.Score != b.Score || a.Length != b.Length ||
		a.Head != b.Head || a.Dir != b.Dir || a.State != b.State ||
		a.HasTarget != b.HasTarget {
		return false
	}
	if a.HasTarget && a.Target != b.Target {
		return false
	}
	if len(a.Body) != len(b.Body) {
		return false
	}
	for i := range a.Body {
		if a.Body[i] != b.Body[i] {
			return false
		}
	}
	return true
}
