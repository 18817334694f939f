package akd

import (
	"context"
	"errors"
)

type grab struct {
	code KeyCode
	mods ModMask
}

type fakeBackend struct {
	root   WindowID
	active WindowID

	group     uint8
	applied   []string
	locked    []uint8
	persisted [][]string
	grabs     []grab

	keys      map[string]KeyCode
	failGrabs map[ModMask]bool
	applyErr  error
	lockErr   error

	events []Event
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		root:   1,
		active: 100,
		keys: map[string]KeyCode{
			"1":      10,
			"2":      11,
			"space":  65,
			"Return": 36,
		},
	}
}

func (f *fakeBackend) NextEvent(ctx context.Context) (Event, error) {
	if len(f.events) == 0 {
		return nil, context.Canceled
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func (f *fakeBackend) RootWindow() WindowID {
	return f.root
}

func (f *fakeBackend) ActiveWindow() (WindowID, error) {
	if f.active == 0 {
		return 0, errors.New("no active window")
	}
	return f.active, nil
}

func (f *fakeBackend) ApplyLayout(symbols string) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, symbols)
	return nil
}

func (f *fakeBackend) PersistRules(groups []string) error {
	f.persisted = append(f.persisted, groups)
	return nil
}

func (f *fakeBackend) LockGroup(group uint8) error {
	if f.lockErr != nil {
		return f.lockErr
	}
	f.locked = append(f.locked, group)
	f.group = group
	return nil
}

func (f *fakeBackend) CurrentGroup() (uint8, error) {
	return f.group, nil
}

func (f *fakeBackend) ResolveKeyCode(name string) (KeyCode, bool) {
	code, ok := f.keys[name]
	return code, ok
}

func (f *fakeBackend) GrabKeyChord(code KeyCode, mods ModMask) error {
	if f.failGrabs[mods] {
		return errors.New("BadAccess")
	}
	f.grabs = append(f.grabs, grab{code: code, mods: mods})
	return nil
}

type recordingStatus struct {
	lines []string
}

func (r *recordingStatus) WriteGroup(name string) error {
	r.lines = append(r.lines, name)
	return nil
}
