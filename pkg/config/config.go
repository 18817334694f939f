package config

import (
	"codeberg.org/miketth/akd/pkg/akd"
	"errors"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml"
	"os"
	"path/filepath"
)

// XKB supports at most four groups.
const maxGroup = 3

type Config struct {
	General   General   `toml:"general"`
	Shortcuts Shortcuts `toml:"shortcuts"`
}

type General struct {
	PrintGroups      bool     `toml:"print-groups"`
	SkipRules        bool     `toml:"skip-rules"`
	Layouts          []string `toml:"layouts"`
	DifferentGroups  *bool    `toml:"different-groups"`
	DifferentLayouts *bool    `toml:"different-layouts"`
	DefaultGroup     *int     `toml:"default-group"`
}

type Shortcuts struct {
	NextLayout string `toml:"nextlayout"`
}

func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "akd", "akd.conf")
}

// Load reads the settings file. A missing file yields an empty configuration.
func Load(path string) (Config, error) {
	var cfg Config

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("stat settings: %w", err)
	}

	tree, err := toml.LoadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %w", akd.ErrConfiguration, path, err)
	}

	if err := tree.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: decode %s: %w", akd.ErrConfiguration, path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if g := c.General.DefaultGroup; g != nil && (*g < 0 || *g > maxGroup) {
		return fmt.Errorf("%w: default-group %d out of range [0, %d]", akd.ErrConfiguration, *g, maxGroup)
	}

	minGroups := maxGroup + 1
	for _, spec := range c.General.Layouts {
		groups := len(akd.NewLayout(spec, nil).Groups)
		if groups == 0 || groups > maxGroup+1 {
			return fmt.Errorf("%w: layout %q must have 1 to %d groups", akd.ErrConfiguration, spec, maxGroup+1)
		}
		minGroups = min(minGroups, groups)
	}

	if g := c.General.DefaultGroup; g != nil && len(c.General.Layouts) > 0 && *g >= minGroups {
		return fmt.Errorf("%w: default-group %d is not present in every layout", akd.ErrConfiguration, *g)
	}

	if c.Shortcuts.NextLayout != "" {
		if _, err := akd.ParseChord(c.Shortcuts.NextLayout); err != nil {
			return err
		}
	}

	return nil
}

func (c Config) TrackerOptions() akd.Options {
	opts := akd.Options{
		DifferentGroupsPerWindow:  boolOr(c.General.DifferentGroups, true),
		DifferentLayoutsPerWindow: boolOr(c.General.DifferentLayouts, true),
		PrintGroupChanges:         c.General.PrintGroups,
		SkipRules:                 c.General.SkipRules,
	}

	if g := c.General.DefaultGroup; g != nil {
		group := uint8(*g)
		opts.DefaultGroupOnLayoutSwitch = &group
	}

	return opts
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
