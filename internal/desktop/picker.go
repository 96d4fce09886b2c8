package desktop

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/rpgshelf/shelf/internal/catalog"
)

// NoneLabel is the empty choice of an optional picker.
const NoneLabel = "(none)"

// Picker maps the "id: label" choices of a select widget back to ids.
type Picker struct {
	Labels []string
	ids    map[string]int64
}

// NewPicker builds the choices for opts. With optional set the first
// choice is NoneLabel.
func NewPicker(opts []catalog.Option, optional bool) *Picker {
	p := &Picker{ids: make(map[string]int64, len(opts))}
	if optional {
		p.Labels = append(p.Labels, NoneLabel)
	}
	for _, o := range opts {
		label := o.String()
		p.Labels = append(p.Labels, label)
		p.ids[label] = o.ID
	}
	return p
}

// ID returns the id behind label, or nil for NoneLabel and unknown labels.
func (p *Picker) ID(label string) *int64 {
	id, ok := p.ids[label]
	if !ok {
		return nil
	}
	return &id
}

// IDString is ID formatted for the raw form fields, "" when unset.
func (p *Picker) IDString(label string) string {
	if id := p.ID(label); id != nil {
		return strconv.FormatInt(*id, 10)
	}
	return ""
}

// Label returns the choice for id, NoneLabel when nothing matches.
func (p *Picker) Label(id *int64) string {
	if id != nil {
		for label, v := range p.ids {
			if v == *id {
				return label
			}
		}
	}
	return NoneLabel
}

// LabelFor is Label for a raw id string.
func (p *Picker) LabelFor(raw string) string {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return NoneLabel
	}
	return p.Label(&id)
}

// Strings converts a typed enum list for a select widget.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// HexColor parses a "#rrggbb" palette color. Malformed input yields
// opaque black.
func HexColor(s string) color.NRGBA {
	c := color.NRGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}
