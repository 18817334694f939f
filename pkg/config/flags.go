package config

import "github.com/spf13/pflag"

type Flags struct {
	Settings       string
	Debug          bool
	DescribeGroups bool
	EvdevXMLPath   string

	general   General
	shortcuts Shortcuts

	differentGroups  bool
	differentLayouts bool
	defaultGroup     int

	fs *pflag.FlagSet
}

func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVarP(&f.Settings, "settings", "s", DefaultPath(), "path to settings file")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	fs.BoolVar(&f.DescribeGroups, "describe-groups", false, "print group descriptions from the xkb registry instead of codes")
	fs.StringVar(&f.EvdevXMLPath, "evdev-xml-path", "/usr/share/X11/xkb/rules/evdev.xml", "path to evdev.xml")

	fs.BoolVarP(&f.general.PrintGroups, "print-groups", "p", false, "print switched groups to stdout")
	fs.BoolVarP(&f.general.SkipRules, "skip-rules", "r", false, "do not update keyboard rules, useful if only this program manages the keyboard")
	fs.StringArrayVarP(&f.general.Layouts, "layouts", "l", nil, "groups separated by ','; repeat to define several layouts")
	fs.BoolVar(&f.differentGroups, "different-groups", true, "remember the group of every window")
	fs.BoolVar(&f.differentLayouts, "different-layouts", true, "remember the layout of every window")
	fs.IntVar(&f.defaultGroup, "default-group", 0, "group to lock after switching layouts")
	fs.StringVarP(&f.shortcuts.NextLayout, "nextlayout", "n", "", "shortcut that switches to the next layout, e.g. Ctrl+Alt+1")

	return f
}

// Apply overrides cfg with every flag given on the command line.
func (f *Flags) Apply(cfg *Config) {
	if f.changed("print-groups") {
		cfg.General.PrintGroups = f.general.PrintGroups
	}
	if f.changed("skip-rules") {
		cfg.General.SkipRules = f.general.SkipRules
	}
	if f.changed("layouts") {
		cfg.General.Layouts = f.general.Layouts
	}
	if f.changed("different-groups") {
		v := f.differentGroups
		cfg.General.DifferentGroups = &v
	}
	if f.changed("different-layouts") {
		v := f.differentLayouts
		cfg.General.DifferentLayouts = &v
	}
	if f.changed("default-group") {
		v := f.defaultGroup
		cfg.General.DefaultGroup = &v
	}
	if f.changed("nextlayout") {
		cfg.Shortcuts.NextLayout = f.shortcuts.NextLayout
	}
}

func (f *Flags) changed(name string) bool {
	flag := f.fs.Lookup(name)
	return flag != nil && flag.Changed
}
