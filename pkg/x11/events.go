package x11

import (
	"codeberg.org/miketth/akd/pkg/akd"
	"context"
	"errors"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/linuxdeepin/go-x11-client/ext/xkb"
)

var ErrConnectionClosed = errors.New("connection to X server closed")

func (c *Conn) NextEvent(ctx context.Context) (akd.Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev := <-c.events:
		return ev, nil
	case err := <-c.errs:
		return nil, err
	}
}

func (c *Conn) readCoreEvents() {
	for {
		ev, xerr := c.xu.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			c.fail(ErrConnectionClosed)
			return
		}

		if xerr != nil {
			c.log.Debugw("x error", "error", xerr)
			continue
		}

		translated, ok := c.translate(ev)
		if !ok {
			continue
		}

		if !c.emit(translated) {
			return
		}
	}
}

func (c *Conn) translate(ev xgb.Event) (akd.Event, bool) {
	switch ev := ev.(type) {
	case xproto.PropertyNotifyEvent:
		if ev.Atom != c.activeWindowAtom || ev.State != xproto.PropertyNewValue {
			return akd.FocusChanged{Relevant: false}, true
		}

		window, err := c.ActiveWindow()
		if err != nil {
			c.log.Warnw("unable to get active window", "error", err)
			window = c.RootWindow()
		}
		return akd.FocusChanged{Window: window, Relevant: true}, true

	case xproto.DestroyNotifyEvent:
		return akd.WindowDestroyed{Window: akd.WindowID(ev.Window)}, true

	case xproto.KeyPressEvent:
		return akd.KeyPressed{Code: akd.KeyCode(ev.Detail), State: akd.ModMask(ev.State)}, true
	}

	return nil, false
}

func (c *Conn) readXkbEvents() {
	for ev := range c.xkbEvents {
		state, err := xkb.NewStateNotifyEvent(ev)
		if err != nil {
			c.log.Warnw("unable to decode xkb state event", "error", err)
			continue
		}

		if !c.emit(akd.GroupChanged{Group: state.LockedGroup}) {
			return
		}
	}

	c.fail(ErrConnectionClosed)
}

func (c *Conn) emit(ev akd.Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

func (c *Conn) fail(err error) {
	select {
	case c.errs <- err:
	case <-c.done:
	}
}
