package akd

import (
	"context"
	"fmt"
	"go.uber.org/zap"
)

type Options struct {
	DifferentGroupsPerWindow  bool
	DifferentLayoutsPerWindow bool
	PrintGroupChanges         bool
	SkipRules                 bool

	// DefaultGroupOnLayoutSwitch is locked after every layout switch when set.
	DefaultGroupOnLayoutSwitch *uint8
}

type Tracker struct {
	windows *windowStates
	current WindowID
	root    WindowID

	// set after LockGroup, cleared by the echo notification it produces
	ignoreNextGroupNotification bool

	layouts   *LayoutSet
	shortcuts []*Shortcut
	opts      Options

	backend Backend
	status  StatusWriter
	log     *zap.SugaredLogger
}

func NewTracker(
	backend Backend,
	layouts *LayoutSet,
	opts Options,
	status StatusWriter,
	log *zap.SugaredLogger,
) (*Tracker, error) {
	t := &Tracker{
		windows: newWindowStates(),
		root:    backend.RootWindow(),
		layouts: layouts,
		opts:    opts,
		backend: backend,
		status:  status,
		log:     log,
	}

	active, err := backend.ActiveWindow()
	if err != nil {
		log.Debugw("no active window, using root", "error", err)
		active = t.root
	}
	t.current = active
	state := t.windows.getOrCreate(active)

	if layouts.Managed() {
		if err := layouts.Apply(backend, 0); err != nil {
			return nil, fmt.Errorf("apply initial layout: %w", err)
		}

		if !opts.SkipRules {
			groups := layouts.At(0).Groups
			if err := backend.PersistRules(groups); err != nil {
				return nil, fmt.Errorf("%w: persist rules: %w", ErrBackend, err)
			}
		}
	}

	group, err := backend.CurrentGroup()
	if err != nil {
		return nil, fmt.Errorf("%w: get current group: %w", ErrBackend, err)
	}
	state.Group = group

	if opts.PrintGroupChanges {
		if err := t.printGroup(state); err != nil {
			return nil, err
		}
	}

	log.Debugw("tracker initialized", "window", active, "group", group, "layouts", layouts.Len())

	return t, nil
}

// BindNextLayoutShortcut grabs the chord and makes it cycle layouts.
func (t *Tracker) BindNextLayoutShortcut(spec string) error {
	if !t.layouts.Managed() {
		return fmt.Errorf("%w: shortcut %q needs at least one configured layout", ErrConfiguration, spec)
	}

	shortcut, err := NewShortcut(spec, t.backend, t.SwitchToNextLayout, t.log)
	if err != nil {
		return err
	}

	t.shortcuts = append(t.shortcuts, shortcut)
	return nil
}

func (t *Tracker) ProcessEvents(ctx context.Context) error {
	for {
		ev, err := t.backend.NextEvent(ctx)
		if err != nil {
			return fmt.Errorf("next event: %w", err)
		}

		if err := t.HandleEvent(ev); err != nil {
			return fmt.Errorf("handle event: %w", err)
		}
	}
}

func (t *Tracker) HandleEvent(ev Event) error {
	switch ev := ev.(type) {
	case FocusChanged:
		if !ev.Relevant {
			return nil
		}
		return t.OnFocusChange(ev.Window)
	case WindowDestroyed:
		t.OnWindowDestroyed(ev.Window)
		return nil
	case GroupChanged:
		return t.OnGroupNotification(ev.Group)
	case KeyPressed:
		return t.OnKeyPressed(ev.Code, ev.State)
	}

	return nil
}

func (t *Tracker) OnFocusChange(window WindowID) error {
	prev := t.windows.getOrCreate(t.current)
	prevName := t.layouts.GroupName(prev.Layout, prev.Group)
	next := t.windows.getOrCreate(window)

	if t.opts.DifferentLayoutsPerWindow {
		if next.Layout != prev.Layout {
			if err := t.layouts.Apply(t.backend, next.Layout); err != nil {
				return fmt.Errorf("restore layout: %w", err)
			}
		}
	} else {
		next.Layout = prev.Layout
	}

	if t.opts.DifferentGroupsPerWindow {
		if next.Group != prev.Group {
			if err := t.lockGroup(next.Group); err != nil {
				return fmt.Errorf("restore group: %w", err)
			}
		}
	} else {
		next.Group = prev.Group
	}

	if t.opts.PrintGroupChanges && t.layouts.GroupName(next.Layout, next.Group) != prevName {
		if err := t.printGroup(next); err != nil {
			return err
		}
	}

	t.log.Debugw("focus changed", "from", t.current, "to", window, "layout", next.Layout, "group", next.Group)
	t.current = window

	return nil
}

// OnWindowDestroyed forgets the window. When it was the current one its state
// is handed to the root window, which becomes current until the next focus
// change.
func (t *Tracker) OnWindowDestroyed(window WindowID) {
	if window == t.root {
		return
	}

	if window == t.current {
		if state, ok := t.windows.get(window); ok {
			*t.windows.getOrCreate(t.root) = *state
		}
		t.current = t.root
	}

	t.windows.remove(window)
	t.log.Debugw("window destroyed", "window", window, "tracked", t.windows.len())
}

func (t *Tracker) OnGroupNotification(group uint8) error {
	if t.ignoreNextGroupNotification {
		t.ignoreNextGroupNotification = false
		t.log.Debugw("ignoring own group change", "group", group)
		return nil
	}

	state := t.windows.getOrCreate(t.current)
	state.Group = group
	t.log.Debugw("group changed", "window", t.current, "group", group)

	if t.opts.PrintGroupChanges {
		return t.printGroup(state)
	}

	return nil
}

func (t *Tracker) OnKeyPressed(code KeyCode, state ModMask) error {
	for _, shortcut := range t.shortcuts {
		if !shortcut.Matches(code, state) {
			continue
		}

		t.log.Debugw("shortcut pressed", "shortcut", shortcut.String())
		if err := shortcut.action(); err != nil {
			return fmt.Errorf("shortcut %q: %w", shortcut.String(), err)
		}
	}

	return nil
}

func (t *Tracker) SwitchToNextLayout() error {
	count := t.layouts.Len()
	if count == 0 {
		return nil
	}

	state := t.windows.getOrCreate(t.current)
	prevName := t.layouts.GroupName(state.Layout, state.Group)
	next := (state.Layout + 1) % count

	if err := t.layouts.Apply(t.backend, next); err != nil {
		return fmt.Errorf("switch layout: %w", err)
	}

	def := t.opts.DefaultGroupOnLayoutSwitch
	if def != nil && int(*def) >= len(t.layouts.At(next).Groups) {
		t.log.Warnw("default group not in layout, keeping group", "group", *def, "layout", t.layouts.At(next).String())
		def = nil
	}
	if def != nil && state.Group != *def {
		if err := t.lockGroup(*def); err != nil {
			return fmt.Errorf("switch layout: %w", err)
		}
		state.Group = *def
	}

	state.Layout = next

	if t.opts.PrintGroupChanges && t.layouts.GroupName(next, state.Group) != prevName {
		if err := t.printGroup(state); err != nil {
			return err
		}
	}

	t.log.Debugw("switched layout", "window", t.current, "layout", next, "group", state.Group)

	return nil
}

func (t *Tracker) Current() WindowID {
	return t.current
}

func (t *Tracker) State(window WindowID) (WindowState, bool) {
	state, ok := t.windows.get(window)
	if !ok {
		return WindowState{}, false
	}
	return *state, true
}

func (t *Tracker) lockGroup(group uint8) error {
	if err := t.backend.LockGroup(group); err != nil {
		return fmt.Errorf("%w: lock group %d: %w", ErrBackend, group, err)
	}

	t.ignoreNextGroupNotification = true
	return nil
}

func (t *Tracker) printGroup(state *WindowState) error {
	name := t.layouts.GroupName(state.Layout, state.Group)
	if err := t.status.WriteGroup(name); err != nil {
		return fmt.Errorf("print group: %w", err)
	}
	return nil
}
