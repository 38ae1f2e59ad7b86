package pcfg

import "fmt"

// --- Special symbols -------------------------------------------------------

// UnknownToken is the synthetic token every POS-tag may emit. During grammar
// induction each tag receives exactly one observation of it.
const UnknownToken = "<UNK>"

// Markers used to synthesize nonterminal labels during normalization.
const (
	TermPrefix      = "_" // prefix of a nonterminal wrapping a POS-tag (TERM)
	BinSeparator    = "&" // joins the labels of merged children (BIN)
	FunctionalLabel = "-" // starts a functional label suffix, e.g. PP-MOD
)

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input tokens. Every chart cell
// covers a span of the input. A span denotes a start position and the
// position just behind the end.
type Span [2]uint64 // (x…y)

// MakeSpan creates the span of length l starting at s.
func MakeSpan(s, l int) Span {
	return Span{uint64(s), uint64(s + l)}
}

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// Split divides s into a left span of length k and the remainder.
func (s Span) Split(k uint64) (Span, Span) {
	return Span{s[0], s[0] + k}, Span{s[0] + k, s[1]}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
