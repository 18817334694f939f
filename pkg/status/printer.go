package status

import (
	"fmt"
	"io"
)

type Describer interface {
	Describe(code string) string
}

// Printer writes one line per group change.
type Printer struct {
	out       io.Writer
	describer Describer
}

func NewPrinter(out io.Writer, describer Describer) *Printer {
	return &Printer{out: out, describer: describer}
}

func (p *Printer) WriteGroup(name string) error {
	if p.describer != nil {
		name = p.describer.Describe(name)
	}

	if _, err := fmt.Fprintln(p.out, name); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}
