package akd

import (
	"fmt"
	"strconv"
	"strings"
)

const symbolsBase = "pc"

type Layout struct {
	Groups  []string
	Symbols string
}

// NewLayout builds a layout from a comma separated group list such as "us,ru".
func NewLayout(groups string, options []string) Layout {
	var names []string
	for _, name := range strings.Split(groups, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}

	return Layout{
		Groups:  names,
		Symbols: BuildSymbolSpec(names, options),
	}
}

// BuildSymbolSpec renders groups and options as an XKB symbols component,
// e.g. "pc+us+ru:2+inet(evdev)".
func BuildSymbolSpec(groups []string, options []string) string {
	tokens := make([]string, 0, 1+len(groups)+len(options))
	tokens = append(tokens, symbolsBase)
	for i, group := range groups {
		if i == 0 {
			tokens = append(tokens, group)
			continue
		}
		tokens = append(tokens, group+":"+strconv.Itoa(i+1))
	}
	tokens = append(tokens, options...)

	return strings.Join(tokens, "+")
}

func (l Layout) GroupName(group uint8) string {
	if int(group) >= len(l.Groups) {
		return ""
	}
	return l.Groups[group]
}

func (l Layout) String() string {
	return strings.Join(l.Groups, ",")
}

type LayoutSet struct {
	layouts []Layout
	managed bool
}

// NewLayoutSet returns the configured layouts. Layout 0 is applied when the
// tracker starts.
func NewLayoutSet(specs []string, options []string) *LayoutSet {
	layouts := make([]Layout, 0, len(specs))
	for _, spec := range specs {
		layouts = append(layouts, NewLayout(spec, options))
	}

	return &LayoutSet{
		layouts: layouts,
		managed: len(layouts) > 0,
	}
}

// ServerLayoutSet describes the groups the server already uses. It is only
// used for naming groups and is never pushed back to the server.
func ServerLayoutSet(groups []string, options []string) *LayoutSet {
	return &LayoutSet{
		layouts: []Layout{NewLayout(strings.Join(groups, ","), options)},
	}
}

func (s *LayoutSet) Len() int {
	return len(s.layouts)
}

// Managed reports whether the layouts come from configuration and may be
// applied to the server.
func (s *LayoutSet) Managed() bool {
	return s.managed
}

func (s *LayoutSet) At(idx int) Layout {
	return s.layouts[idx]
}

func (s *LayoutSet) GroupName(layout int, group uint8) string {
	if layout < 0 || layout >= len(s.layouts) {
		return ""
	}
	return s.layouts[layout].GroupName(group)
}

func (s *LayoutSet) Apply(backend LayoutBackend, idx int) error {
	if !s.managed {
		return nil
	}
	if idx < 0 || idx >= len(s.layouts) {
		return fmt.Errorf("%w: layout %d out of range", ErrConfiguration, idx)
	}

	symbols := s.layouts[idx].Symbols
	if err := backend.ApplyLayout(symbols); err != nil {
		return fmt.Errorf("%w: apply layout %q: %w", ErrBackend, symbols, err)
	}

	return nil
}
