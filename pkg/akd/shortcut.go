package akd

import (
	"fmt"
	"go.uber.org/zap"
	"strings"
)

type ModMask uint16

// Core protocol modifier bits.
const (
	ModShift   ModMask = 1 << 0
	ModLock    ModMask = 1 << 1
	ModControl ModMask = 1 << 2
	Mod1       ModMask = 1 << 3
	Mod2       ModMask = 1 << 4
	Mod4       ModMask = 1 << 6
)

// NumLock (Mod2) and CapsLock are reported in every key event and must not
// prevent a shortcut from matching.
var lockVariants = [...]ModMask{0, Mod2, ModLock, Mod2 | ModLock}

var modifierNames = map[string]ModMask{
	"ctrl":    ModControl,
	"control": ModControl,
	"alt":     Mod1,
	"win":     Mod4,
	"super":   Mod4,
	"meta":    Mod4,
	"shift":   ModShift,
}

type Chord struct {
	Mods ModMask
	Key  string
}

// ParseChord splits a shortcut such as "Ctrl+Alt+1" into modifiers and the
// single key name.
func ParseChord(spec string) (Chord, error) {
	tokens := strings.FieldsFunc(spec, func(r rune) bool {
		return r == '+' || r == '-'
	})

	var chord Chord
	for _, token := range tokens {
		if mod, ok := modifierNames[strings.ToLower(token)]; ok {
			chord.Mods |= mod
			continue
		}

		if chord.Key != "" {
			return Chord{}, fmt.Errorf("%w: more than one key in shortcut %q", ErrConfiguration, spec)
		}
		chord.Key = token
	}

	if chord.Key == "" {
		return Chord{}, fmt.Errorf("%w: no key in shortcut %q", ErrConfiguration, spec)
	}

	return chord, nil
}

type Shortcut struct {
	spec   string
	mods   ModMask
	key    KeyCode
	action func() error
}

func NewShortcut(spec string, keys KeyGrabber, action func() error, log *zap.SugaredLogger) (*Shortcut, error) {
	chord, err := ParseChord(spec)
	if err != nil {
		return nil, err
	}

	code, ok := keys.ResolveKeyCode(chord.Key)
	if !ok {
		return nil, fmt.Errorf("%w: unknown key %q in shortcut %q", ErrConfiguration, chord.Key, spec)
	}

	for _, variant := range lockVariants {
		mods := chord.Mods | variant
		if err := keys.GrabKeyChord(code, mods); err != nil {
			log.Warnw("unable to grab shortcut", "shortcut", spec, "modifiers", uint16(mods), "error", err)
		}
	}

	return &Shortcut{
		spec:   spec,
		mods:   chord.Mods,
		key:    code,
		action: action,
	}, nil
}

func (s *Shortcut) Matches(code KeyCode, state ModMask) bool {
	if code != s.key {
		return false
	}

	for _, variant := range lockVariants {
		if state == s.mods|variant {
			return true
		}
	}

	return false
}

func (s *Shortcut) String() string {
	return s.spec
}
