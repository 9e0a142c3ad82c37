// Package identifier decomposes variable names into subscript and
// superscript trees.
//
// A single marker starts a sibling at the current level and a doubled marker
// nests one level deeper:
//
//	k_i_j          -> k_{i,j}
//	k_i__j         -> k_{i_j}
//	k_iˆj          -> k_i^j
//	k_iˆˆj         -> k_{i^j}
//	k_i__1_i__2ˆj__1ˆj__2 -> k_{i_1,i_2}^{j_1,j_2}
package identifier

import (
	"strings"
	"unicode/utf8"

	"github.com/deepnoodle-ai/texit/errors"
	"github.com/rs/zerolog"
)

// Default marker runes.
const (
	DefaultLower = '_'
	DefaultUpper = 'ˆ' // U+02C6, a letter, so it is valid inside identifiers
)

// Tree is a decomposed identifier. Value holds the name as written;
// symbol conversion happens when the tree is rendered.
type Tree struct {
	Value string
	Lower []*Tree // subscripts
	Upper []*Tree // superscripts
}

// Decomposer splits identifiers on a pair of marker runes.
type Decomposer struct {
	lower   rune
	upper   rune
	verbose bool
	logger  zerolog.Logger
}

// Option configures a Decomposer.
type Option func(*Decomposer)

// WithMarkers sets the subscript and superscript marker runes.
func WithMarkers(lower, upper rune) Option {
	return func(d *Decomposer) {
		d.lower = lower
		d.upper = upper
	}
}

// WithVerbose logs each decomposition step to logger at debug level.
func WithVerbose(logger zerolog.Logger) Option {
	return func(d *Decomposer) {
		d.verbose = true
		d.logger = logger
	}
}

// New returns a Decomposer using the default markers unless overridden.
func New(opts ...Option) *Decomposer {
	d := &Decomposer{
		lower:  DefaultLower,
		upper:  DefaultUpper,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lower returns the subscript marker.
func (d *Decomposer) Lower() rune { return d.lower }

// Upper returns the superscript marker.
func (d *Decomposer) Upper() rune { return d.upper }

// Decompose builds the subscript/superscript tree for name. It fails with a
// *errors.SeparatorError when a marker run mixes both markers.
func (d *Decomposer) Decompose(name string) (*Tree, error) {
	if d.verbose && strings.Count(name, string(d.upper)) > 1 {
		d.logger.Warn().Str("identifier", name).
			Msg("only one superscript marker is supported per identifier")
	}
	return d.build(name, name, 1)
}

func (d *Decomposer) isMarker(r rune) bool {
	return r == d.lower || r == d.upper
}

// build splits s on marker runs that are exactly level runes long. Shorter
// and longer runs stay in the text and are handled at their own level.
func (d *Decomposer) build(name, s string, level int) (*Tree, error) {
	type split struct {
		lower bool
		text  string
	}
	var (
		head   strings.Builder
		splits []split
		cur    = &head
		tail   strings.Builder
	)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !d.isMarker(r) {
			cur.WriteString(s[i : i+size])
			i += size
			continue
		}
		// Collect the maximal run of markers starting here.
		j, n := i, 0
		allLower, allUpper := true, true
		for j < len(s) {
			m, msize := utf8.DecodeRuneInString(s[j:])
			if !d.isMarker(m) {
				break
			}
			allLower = allLower && m == d.lower
			allUpper = allUpper && m == d.upper
			j += msize
			n++
		}
		run := s[i:j]
		i = j
		if n != level {
			cur.WriteString(run)
			continue
		}
		if !allLower && !allUpper {
			return nil, &errors.SeparatorError{Identifier: name, Segment: s, Run: run, Level: level}
		}
		if len(splits) > 0 {
			splits[len(splits)-1].text = tail.String()
		}
		tail.Reset()
		cur = &tail
		splits = append(splits, split{lower: allLower})
	}
	if len(splits) > 0 {
		splits[len(splits)-1].text = tail.String()
	}

	t := &Tree{Value: head.String()}
	indent := strings.Repeat("  ", level-1)
	if d.verbose {
		d.logger.Debug().Str("indent", indent).Int("level", level).Str("val", ConvertSymbols(t.Value)).Msg("identifier")
	}
	for _, sp := range splits {
		if d.verbose {
			key := "up"
			if sp.lower {
				key = "low"
			}
			d.logger.Debug().Str("indent", indent).Int("level", level).Str(key, sp.text).Msg("identifier")
		}
		child, err := d.build(name, sp.text, level+1)
		if err != nil {
			return nil, err
		}
		if sp.lower {
			t.Lower = append(t.Lower, child)
		} else {
			t.Upper = append(t.Upper, child)
		}
	}
	return t, nil
}

// Render writes the tree as a display string. Each node's value goes through
// ConvertSymbols; children are comma-joined and passed to group, which adds
// whatever grouping the target notation needs.
func (t *Tree) Render(group func(string) string) string {
	var b strings.Builder
	b.WriteString(ConvertSymbols(t.Value))
	if len(t.Lower) > 0 {
		b.WriteString("_")
		b.WriteString(group(renderAll(t.Lower, group)))
	}
	if len(t.Upper) > 0 {
		b.WriteString("^")
		b.WriteString(group(renderAll(t.Upper, group)))
	}
	return b.String()
}

func renderAll(trees []*Tree, group func(string) string) string {
	parts := make([]string, len(trees))
	for i, c := range trees {
		parts[i] = c.Render(group)
	}
	return strings.Join(parts, ",")
}
