package x11

import (
	"codeberg.org/miketth/akd/pkg/akd"
	"errors"
	"fmt"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
	x "github.com/linuxdeepin/go-x11-client"
	"github.com/linuxdeepin/go-x11-client/ext/xkb"
	"go.uber.org/zap"
	"os"
	"sync"
)

var ErrNotRunning = errors.New("X server might not be running")

const (
	activeWindowProperty = "_NET_ACTIVE_WINDOW"

	// StateNotify detail bit for changes of the locked group.
	groupLockStatePart = 1 << 7

	eventBufferSize = 64
)

// Conn talks to the X server over two connections: the core protocol one
// carries window and key events, the XKB one carries group changes.
type Conn struct {
	xu               *xgbutil.XUtil
	activeWindowAtom xproto.Atom

	xkbConn   *x.Conn
	xkbEvents chan x.GenericEvent

	setxkbmap Setxkbmap

	events    chan akd.Event
	errs      chan error
	done      chan struct{}
	closeOnce sync.Once

	log *zap.SugaredLogger
}

func Connect(setxkbmap Setxkbmap, log *zap.SugaredLogger) (*Conn, error) {
	if os.Getenv("DISPLAY") == "" {
		return nil, fmt.Errorf("DISPLAY is not set, %w", ErrNotRunning)
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	c := &Conn{
		xu:        xu,
		setxkbmap: setxkbmap,
		events:    make(chan akd.Event, eventBufferSize),
		errs:      make(chan error, 2),
		done:      make(chan struct{}),
		log:       log,
	}

	if err := c.setupCore(); err != nil {
		xu.Conn().Close()
		return nil, err
	}

	if err := c.setupXkb(); err != nil {
		xu.Conn().Close()
		return nil, err
	}

	go c.readCoreEvents()
	go c.readXkbEvents()

	return c, nil
}

func (c *Conn) setupCore() error {
	atom, err := xprop.Atm(c.xu, activeWindowProperty)
	if err != nil {
		return fmt.Errorf("intern %s: %w", activeWindowProperty, err)
	}
	c.activeWindowAtom = atom

	root := xwindow.New(c.xu, c.xu.RootWin())
	if err := root.Listen(xproto.EventMaskPropertyChange, xproto.EventMaskSubstructureNotify); err != nil {
		return fmt.Errorf("select root window events: %w", err)
	}

	keybind.Initialize(c.xu)

	return nil
}

func (c *Conn) setupXkb() error {
	conn, err := x.NewConn()
	if err != nil {
		return fmt.Errorf("connect xkb: %w", err)
	}

	if _, err := xkb.UseExtension(conn, xkb.MajorVersion, xkb.MinorVersion).Reply(conn); err != nil {
		conn.Close()
		return fmt.Errorf("use xkb extension: %w", err)
	}

	selectOpts := xkb.SelectDetail(xkb.EventTypeStateNotify, map[uint]bool{groupLockStatePart: true})
	if err := xkb.SelectEventsChecked(conn, xkb.IDUseCoreKbd, selectOpts).Check(conn); err != nil {
		conn.Close()
		return fmt.Errorf("select xkb events: %w", err)
	}

	c.xkbConn = conn
	c.xkbEvents = make(chan x.GenericEvent, eventBufferSize)
	conn.AddEventChan(c.xkbEvents)

	return nil
}

func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.xu.Conn().Close()
		c.xkbConn.Close()
	})
	return nil
}

func (c *Conn) RootWindow() akd.WindowID {
	return akd.WindowID(c.xu.RootWin())
}
