package akd

type Event interface {
	isEvent()
}

// FocusChanged is reported for every property change on the root window.
// Relevant is set only when the active window property got a new value.
type FocusChanged struct {
	Window   WindowID
	Relevant bool
}

type WindowDestroyed struct {
	Window WindowID
}

type KeyPressed struct {
	Code  KeyCode
	State ModMask
}

type GroupChanged struct {
	Group uint8
}

func (FocusChanged) isEvent()    {}
func (WindowDestroyed) isEvent() {}
func (KeyPressed) isEvent()      {}
func (GroupChanged) isEvent()    {}
