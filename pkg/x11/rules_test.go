package x11

import (
	"reflect"
	"testing"
)

func TestSplitRulesNames(t *testing.T) {
	value := []byte("evdev\x00pc105\x00us,ru\x00\x00grp:alt_shift_toggle\x00")

	got := splitRulesNames(value)
	want := []string{"evdev", "pc105", "us,ru", "", "grp:alt_shift_toggle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitRulesNames() = %q, want %q", got, want)
	}

	if got := splitRulesNames([]byte("evdev\x00")); len(got) != rulesNamesFields {
		t.Errorf("splitRulesNames() = %q, want %d fields", got, rulesNamesFields)
	}
}

func TestJoinRulesNames(t *testing.T) {
	names := []string{"evdev", "pc105", "us", "", ""}

	got := string(joinRulesNames(names))
	if got != "evdev\x00pc105\x00us\x00\x00\x00" {
		t.Errorf("joinRulesNames() = %q", got)
	}
	if back := splitRulesNames([]byte(got)); !reflect.DeepEqual(back, names) {
		t.Errorf("splitRulesNames(joinRulesNames()) = %q", back)
	}
}

func TestWithGroups(t *testing.T) {
	names := []string{"evdev", "pc105", "us", "dvorak", "grp:alt_shift_toggle"}

	tests := []struct {
		name   string
		groups []string
		want   []string
	}{
		{
			name:   "plain groups",
			groups: []string{"en", "ru"},
			want:   []string{"evdev", "pc105", "en,ru", "", "grp:alt_shift_toggle"},
		},
		{
			name:   "variants",
			groups: []string{"us", "de(nodeadkeys)"},
			want:   []string{"evdev", "pc105", "us,de", ",nodeadkeys", "grp:alt_shift_toggle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withGroups(names, tt.groups)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("withGroups() = %q, want %q", got, tt.want)
			}
		})
	}

	if names[layoutField] != "us" {
		t.Error("withGroups() must not modify its input")
	}
}
