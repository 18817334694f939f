package xkblayouts

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Registry maps XKB group codes ("us", "de(nodeadkeys)") to the descriptions
// listed in the rules registry.
type Registry struct {
	descriptions map[string]string
}

func ParseRegistry(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return DecodeRegistry(file)
}

func DecodeRegistry(r io.Reader) (*Registry, error) {
	var parsed registryFile
	if err := xml.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	registry := &Registry{descriptions: make(map[string]string)}
	for _, l := range parsed.Layouts {
		registry.descriptions[l.Code] = l.Description

		for _, v := range l.Variants {
			registry.descriptions[l.Code+"("+v.Code+")"] = v.Description
		}
	}

	return registry, nil
}

// Describe returns the description of a group code, falling back to the
// layout without its variant and then to the code itself.
func (r *Registry) Describe(code string) string {
	if desc, ok := r.descriptions[code]; ok && desc != "" {
		return desc
	}

	if base, _, found := strings.Cut(code, "("); found {
		if desc, ok := r.descriptions[base]; ok && desc != "" {
			return desc
		}
	}

	return code
}

func (r *Registry) Len() int {
	return len(r.descriptions)
}
