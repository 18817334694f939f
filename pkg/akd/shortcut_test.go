package akd

import (
	"errors"
	"go.uber.org/zap/zaptest"
	"testing"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		spec    string
		want    Chord
		wantErr bool
	}{
		{spec: "Ctrl+Alt+1", want: Chord{Mods: ModControl | Mod1, Key: "1"}},
		{spec: "Win-space", want: Chord{Mods: Mod4, Key: "space"}},
		{spec: "shift+SUPER+Return", want: Chord{Mods: ModShift | Mod4, Key: "Return"}},
		{spec: "F12", want: Chord{Key: "F12"}},
		{spec: "Ctrl+Alt", wantErr: true},
		{spec: "Ctrl+1+2", wantErr: true},
		{spec: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseChord(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, ErrConfiguration) {
					t.Fatalf("ParseChord() error = %v, want ErrConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChord() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseChord() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewShortcutGrabsLockVariants(t *testing.T) {
	backend := newFakeBackend()

	_, err := NewShortcut("Ctrl+Alt+1", backend, func() error { return nil }, zaptest.NewLogger(t).Sugar())
	if err != nil {
		t.Fatalf("NewShortcut() error = %v", err)
	}

	base := ModControl | Mod1
	want := []grab{
		{code: 10, mods: base},
		{code: 10, mods: base | Mod2},
		{code: 10, mods: base | ModLock},
		{code: 10, mods: base | Mod2 | ModLock},
	}
	if len(backend.grabs) != len(want) {
		t.Fatalf("grabs = %v, want %v", backend.grabs, want)
	}
	for i := range want {
		if backend.grabs[i] != want[i] {
			t.Errorf("grab %d = %+v, want %+v", i, backend.grabs[i], want[i])
		}
	}
}

func TestNewShortcutGrabFailureIsNotFatal(t *testing.T) {
	backend := newFakeBackend()
	backend.failGrabs = map[ModMask]bool{ModControl | ModLock: true}

	s, err := NewShortcut("Ctrl+1", backend, func() error { return nil }, zaptest.NewLogger(t).Sugar())
	if err != nil {
		t.Fatalf("NewShortcut() error = %v", err)
	}
	if len(backend.grabs) != 3 {
		t.Errorf("grabs = %v, want 3 successful grabs", backend.grabs)
	}
	if !s.Matches(10, ModControl) {
		t.Error("shortcut should still match")
	}
}

func TestNewShortcutUnknownKey(t *testing.T) {
	backend := newFakeBackend()

	_, err := NewShortcut("Ctrl+nosuchkey", backend, func() error { return nil }, zaptest.NewLogger(t).Sugar())
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("NewShortcut() error = %v, want ErrConfiguration", err)
	}
	if len(backend.grabs) != 0 {
		t.Errorf("grabs = %v, want none", backend.grabs)
	}
}

func TestShortcutMatches(t *testing.T) {
	backend := newFakeBackend()
	s, err := NewShortcut("Ctrl+Alt+1", backend, func() error { return nil }, zaptest.NewLogger(t).Sugar())
	if err != nil {
		t.Fatalf("NewShortcut() error = %v", err)
	}

	tests := []struct {
		name  string
		code  KeyCode
		state ModMask
		want  bool
	}{
		{name: "plain", code: 10, state: ModControl | Mod1, want: true},
		{name: "numlock", code: 10, state: ModControl | Mod1 | Mod2, want: true},
		{name: "capslock", code: 10, state: ModControl | Mod1 | ModLock, want: true},
		{name: "both locks", code: 10, state: ModControl | Mod1 | Mod2 | ModLock, want: true},
		{name: "extra shift", code: 10, state: ModControl | ModShift | Mod1, want: false},
		{name: "missing alt", code: 10, state: ModControl, want: false},
		{name: "other key", code: 11, state: ModControl | Mod1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Matches(tt.code, tt.state); got != tt.want {
				t.Errorf("Matches(%d, %#x) = %v, want %v", tt.code, tt.state, got, tt.want)
			}
		})
	}
}
