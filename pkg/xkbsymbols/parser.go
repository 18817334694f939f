package xkbsymbols

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidSymbols = errors.New("invalid symbols")

var (
	groupIndexRe = regexp.MustCompile(`^(.+):(\d+)$`)
	includeRe    = regexp.MustCompile(`xkb_symbols\s*\{\s*include\s+"([^"]+)"`)
)

type Symbols struct {
	Groups  []string
	Options []string
}

// Parse splits a symbols component such as
// "pc+us+ru:2+inet(evdev)+group(alt_shift_toggle)" into groups and the
// remaining option tokens. The first token after the base is always a group,
// later groups carry a ":N" index suffix.
func Parse(symbols string) (Symbols, error) {
	tokens := strings.Split(strings.TrimSpace(symbols), "+")
	if len(tokens) < 2 || tokens[0] != "pc" {
		return Symbols{}, fmt.Errorf("%w: %q", ErrInvalidSymbols, symbols)
	}

	var parsed Symbols
	parsed.Groups = append(parsed.Groups, tokens[1])

	for _, token := range tokens[2:] {
		if token == "" {
			continue
		}

		if match := groupIndexRe.FindStringSubmatch(token); match != nil {
			parsed.Groups = append(parsed.Groups, match[1])
			continue
		}

		parsed.Options = append(parsed.Options, token)
	}

	return parsed, nil
}

// ParseKeymap extracts and parses the symbols include of a keymap as printed
// by "setxkbmap -print".
func ParseKeymap(keymap string) (Symbols, error) {
	match := includeRe.FindStringSubmatch(keymap)
	if match == nil {
		return Symbols{}, fmt.Errorf("%w: no xkb_symbols include in keymap", ErrInvalidSymbols)
	}

	return Parse(match[1])
}
