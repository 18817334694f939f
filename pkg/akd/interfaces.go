package akd

import "context"

type WindowID uint32

type KeyCode uint8

type EventSource interface {
	NextEvent(ctx context.Context) (Event, error)
}

type WindowServer interface {
	RootWindow() WindowID
	ActiveWindow() (WindowID, error)
}

type LayoutBackend interface {
	ApplyLayout(symbols string) error
	PersistRules(groups []string) error
	LockGroup(group uint8) error
	CurrentGroup() (uint8, error)
}

type KeyGrabber interface {
	ResolveKeyCode(name string) (KeyCode, bool)
	GrabKeyChord(code KeyCode, mods ModMask) error
}

type Backend interface {
	EventSource
	WindowServer
	LayoutBackend
	KeyGrabber
}

type StatusWriter interface {
	WriteGroup(name string) error
}
