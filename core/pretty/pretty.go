// Package pretty formats structured values as indented, width-wrapped text.
//
// Values are first rendered on a single line. Containers that don't fit in
// the remaining width are broken up with one element per line, nested
// elements aligned under their opening bracket.
package pretty

import (
	"errors"
	"io"
	"strings"
)

// Options control the layout of formatted values.
type Options struct {
	// Indent is the number of spaces added for each nesting level.
	Indent int
	// Width is the desired maximum number of columns.
	Width int
	// Depth limits how many levels are rendered, 0 means unlimited.
	Depth int
	// Compact packs as many sequence items on each line as will fit.
	Compact bool
	// SortKeys orders map entries by key.
	SortKeys bool
}

// DefaultOptions returns the options used by Fprint and Pformat.
func DefaultOptions() Options {
	return Options{
		Indent:   1,
		Width:    80,
		SortKeys: true,
	}
}

// Validate the options for basic semantic errors.
func (o Options) Validate() error {
	switch {
	case o.Indent < 0:
		return errors.New("indent must be >= 0")
	case o.Width <= 0:
		return errors.New("width must be > 0")
	case o.Depth < 0:
		return errors.New("depth must be >= 0")
	}
	return nil
}

// Item is a single entry in an ordered Map.
type Item struct {
	Key   interface{}
	Value interface{}
}

// Map is a mapping that remembers insertion order. It's formatted like any
// other map, but keeps its order when SortKeys is off.
type Map []Item

// Get returns the value stored under key.
func (m Map) Get(key interface{}) (interface{}, bool) {
	for _, item := range m {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

// Formatter writes values in human readable form.
type Formatter interface {
	Fprint(w io.Writer, v interface{}) error
	Pformat(v interface{}) string
}

// Printer formats values with a fixed set of options.
type Printer struct {
	opts Options
}

var _ Formatter = (*Printer)(nil)

// New creates a Printer, returning an error if the options are invalid.
func New(opts Options) (*Printer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Printer{opts: opts}, nil
}

// Default returns a Printer with DefaultOptions.
func Default() *Printer {
	return &Printer{opts: DefaultOptions()}
}

// Options returns the printer's options.
func (p *Printer) Options() Options {
	return p.opts
}

// Pformat returns the formatted representation of v.
func (p *Printer) Pformat(v interface{}) string {
	sb := &strings.Builder{}
	st := &state{opts: p.opts, out: sb, context: make(map[uintptr]bool)}
	st.format(valueOf(v), 0, 0, 0)
	return sb.String()
}

// Fprint writes the formatted representation of v followed by a newline.
func (p *Printer) Fprint(w io.Writer, v interface{}) error {
	_, err := io.WriteString(w, p.Pformat(v)+"\n")
	return err
}

// Repr returns the single-line representation of v.
func (p *Printer) Repr(v interface{}) string {
	st := &state{opts: p.opts, context: make(map[uintptr]bool)}
	return st.repr(valueOf(v), 0)
}

// Pformat formats v using DefaultOptions.
func Pformat(v interface{}) string {
	return Default().Pformat(v)
}

// Fprint writes v to w using DefaultOptions.
func Fprint(w io.Writer, v interface{}) error {
	return Default().Fprint(w, v)
}

// Repr returns the single-line representation of v with no depth limit.
func Repr(v interface{}) string {
	return Default().Repr(v)
}
