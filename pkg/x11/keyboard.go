package x11

import (
	"codeberg.org/miketth/akd/pkg/akd"
	"codeberg.org/miketth/akd/pkg/xkbsymbols"
	"fmt"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/linuxdeepin/go-x11-client/ext/xkb"
)

// ActiveWindow falls back to the root window when nothing has focus.
func (c *Conn) ActiveWindow() (akd.WindowID, error) {
	window, err := ewmh.ActiveWindowGet(c.xu)
	if err != nil {
		return 0, fmt.Errorf("get active window: %w", err)
	}

	if window == 0 {
		return c.RootWindow(), nil
	}

	return akd.WindowID(window), nil
}

func (c *Conn) ResolveKeyCode(name string) (akd.KeyCode, bool) {
	codes := keybind.StrToKeycodes(c.xu, name)
	if len(codes) == 0 {
		return 0, false
	}
	return akd.KeyCode(codes[0]), true
}

func (c *Conn) GrabKeyChord(code akd.KeyCode, mods akd.ModMask) error {
	err := keybind.GrabChecked(c.xu, c.xu.RootWin(), uint16(mods), xproto.Keycode(code))
	if err != nil {
		return fmt.Errorf("grab key %d with modifiers %#x: %w", code, uint16(mods), err)
	}
	return nil
}

func (c *Conn) LockGroup(group uint8) error {
	err := xkb.LatchLockStateChecked(c.xkbConn, xkb.IDUseCoreKbd, 0, 0, true, group, 0, 0, false, 0).Check(c.xkbConn)
	if err != nil {
		return fmt.Errorf("lock group %d: %w", group, err)
	}
	return nil
}

func (c *Conn) CurrentGroup() (uint8, error) {
	reply, err := xkb.GetState(c.xkbConn, xkb.IDUseCoreKbd).Reply(c.xkbConn)
	if err != nil {
		return 0, fmt.Errorf("get xkb state: %w", err)
	}
	return reply.Group, nil
}

func (c *Conn) ApplyLayout(symbols string) error {
	return c.setxkbmap.ApplySymbols(symbols)
}

func (c *Conn) CurrentSymbols() (xkbsymbols.Symbols, error) {
	return c.setxkbmap.CurrentSymbols()
}
