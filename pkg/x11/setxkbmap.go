package x11

import (
	"bytes"
	"codeberg.org/miketth/akd/pkg/xkbsymbols"
	"fmt"
	"os/exec"
	"strings"
)

type Setxkbmap struct {
	Path string
}

func (s Setxkbmap) runCommand(args ...string) (string, error) {
	var stdout bytes.Buffer

	path := s.Path
	if path == "" {
		path = "setxkbmap"
	}

	cmd := exec.Command(path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout

	err := cmd.Run()
	outStr := strings.TrimSpace(stdout.String())
	if err != nil {
		return "", fmt.Errorf("setxkbmap: %w, output: %s", err, outStr)
	}

	return outStr, nil
}

func (s Setxkbmap) ApplySymbols(symbols string) error {
	_, err := s.runCommand("-symbols", symbols)
	return err
}

func (s Setxkbmap) CurrentSymbols() (xkbsymbols.Symbols, error) {
	outStr, err := s.runCommand("-print")
	if err != nil {
		return xkbsymbols.Symbols{}, err
	}

	symbols, err := xkbsymbols.ParseKeymap(outStr)
	if err != nil {
		return xkbsymbols.Symbols{}, fmt.Errorf("parse keymap: %w", err)
	}

	return symbols, nil
}
