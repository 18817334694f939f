package akd

type WindowState struct {
	Group  uint8
	Layout int
}

type windowStates struct {
	states map[WindowID]*WindowState
}

func newWindowStates() *windowStates {
	return &windowStates{
		states: make(map[WindowID]*WindowState),
	}
}

func (s *windowStates) get(window WindowID) (*WindowState, bool) {
	state, ok := s.states[window]
	return state, ok
}

func (s *windowStates) getOrCreate(window WindowID) *WindowState {
	state, ok := s.states[window]
	if !ok {
		state = &WindowState{}
		s.states[window] = state
	}
	return state
}

func (s *windowStates) remove(window WindowID) {
	delete(s.states, window)
}

func (s *windowStates) len() int {
	return len(s.states)
}
