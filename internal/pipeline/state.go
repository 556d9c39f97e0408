package pipeline

// State is what a display surface holds between runs: the chunk list, the
// cursor into it, and the full document for handoff or saving. The caller
// owns it; each run produces a fresh one.
type State struct {
	Chunks     []string
	ChunkIndex int
	LastOutput string
	AIEnabled  bool
}

// NewState captures a run result for display.
func NewState(res *Result, aiEnabled bool) *State {
	return &State{
		Chunks:     res.Chunks,
		LastOutput: res.Formatted,
		AIEnabled:  aiEnabled,
	}
}

// Current returns the chunk under the cursor, or "" when there is none.
func (s *State) Current() string {
	if len(s.Chunks) == 0 {
		return ""
	}
	return s.Chunks[s.ChunkIndex]
}

// Seek clamps the cursor into range and returns the chunk there.
func (s *State) Seek(index int) string {
	if len(s.Chunks) == 0 {
		return ""
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.Chunks)-1 {
		index = len(s.Chunks) - 1
	}
	s.ChunkIndex = index
	return s.Chunks[s.ChunkIndex]
}

// Next advances the cursor.
func (s *State) Next() string { return s.Seek(s.ChunkIndex + 1) }

// Prev moves the cursor back.
func (s *State) Prev() string { return s.Seek(s.ChunkIndex - 1) }
