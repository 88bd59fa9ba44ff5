// Package normalize turns peer supplied names into stable display names
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Remove control and format chars (NUL, C1, ZWJ, ZWNJ, FEFF etc)
// 4 Width fold fullwidth to ASCII
// 5 Collapse whitespace runs to a single space and trim
// 6 Cap the result at MaxRunes runes
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MaxRunes caps display names; peers control this text
const MaxRunes = 64

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct {
	max int
}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.Predicate(isControl)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// isControl matches Cc runes other than whitespace, which step 5 folds instead
func isControl(r rune) bool { return unicode.IsControl(r) && !unicode.IsSpace(r) }

// New constructs a Normalizer capped at MaxRunes
func New() *Normalizer { return &Normalizer{max: MaxRunes} }

// WithMax returns a copy capped at max runes, max <= 0 disables the cap
func (n *Normalizer) WithMax(max int) *Normalizer { return &Normalizer{max: max} }

// Name returns the display form of s following the pipeline described above
func (n *Normalizer) Name(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-4 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 5 collapse whitespace and trim
	ns = strings.Join(strings.FieldsFunc(ns, unicode.IsSpace), " ")

	// 6 cap
	return truncate(ns, n.max)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == max {
			return strings.TrimRightFunc(s[:pos], unicode.IsSpace)
		}
		i++
	}
	return s
}
