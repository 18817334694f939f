package x11

import (
	"fmt"
	"github.com/BurntSushi/xgbutil/xprop"
	"strings"
)

const rulesNamesProperty = "_XKB_RULES_NAMES"

// _XKB_RULES_NAMES holds NUL terminated rules, model, layout, variant and
// options strings.
const (
	rulesField = iota
	modelField
	layoutField
	variantField
	optionsField
	rulesNamesFields
)

var defaultRulesNames = []string{"evdev", "pc105", "", "", ""}

// PersistRules rewrites the layout and variant fields of the root window's
// rules property so that other clients see the groups we applied.
func (c *Conn) PersistRules(groups []string) error {
	names := defaultRulesNames
	reply, err := xprop.GetProperty(c.xu, c.xu.RootWin(), rulesNamesProperty)
	if err != nil {
		c.log.Debugw("no rules names property, using defaults", "error", err)
	} else {
		names = splitRulesNames(reply.Value)
	}

	names = withGroups(names, groups)

	err = xprop.ChangeProp(c.xu, c.xu.RootWin(), 8, rulesNamesProperty, "STRING", joinRulesNames(names))
	if err != nil {
		return fmt.Errorf("set %s: %w", rulesNamesProperty, err)
	}

	return nil
}

func splitRulesNames(value []byte) []string {
	names := strings.Split(string(value), "\x00")
	for len(names) < rulesNamesFields {
		names = append(names, "")
	}
	return names[:rulesNamesFields]
}

func joinRulesNames(names []string) []byte {
	var buf []byte
	for _, name := range names {
		buf = append(buf, name...)
		buf = append(buf, 0)
	}
	return buf
}

// withGroups splits groups such as "de(nodeadkeys)" into the layout and
// variant lists of the rules names.
func withGroups(names []string, groups []string) []string {
	layouts := make([]string, 0, len(groups))
	variants := make([]string, 0, len(groups))
	hasVariant := false

	for _, group := range groups {
		layout, variant, found := strings.Cut(group, "(")
		if found {
			variant = strings.TrimSuffix(variant, ")")
			hasVariant = true
		}
		layouts = append(layouts, layout)
		variants = append(variants, variant)
	}

	updated := append([]string(nil), names...)
	updated[layoutField] = strings.Join(layouts, ",")
	updated[variantField] = ""
	if hasVariant {
		updated[variantField] = strings.Join(variants, ",")
	}

	return updated
}
