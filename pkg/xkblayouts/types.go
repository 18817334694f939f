package xkblayouts

import "encoding/xml"

// registryFile is the subset of evdev.xml needed to describe groups.
type registryFile struct {
	XMLName xml.Name        `xml:"xkbConfigRegistry"`
	Layouts []registryEntry `xml:"layoutList>layout"`
}

type registryEntry struct {
	Code        string           `xml:"configItem>name"`
	Description string           `xml:"configItem>description"`
	Variants    []registryDetail `xml:"variantList>variant"`
}

type registryDetail struct {
	Code        string `xml:"configItem>name"`
	Description string `xml:"configItem>description"`
}
