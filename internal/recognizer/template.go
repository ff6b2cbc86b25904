package recognizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPattern = errors.New("invalid pattern template")

type CharClass int

const (
	ClassAlpha CharClass = iota
	ClassDigit
	ClassAny
)

type Segment struct {
	Class CharClass
	Min   int
	Max   int
}

// PatternTemplate is one plate shape: an ordered sequence of character-class
// segments plus the separator characters allowed between them. MinLen and
// MaxLen bound the separator-free form.
type PatternTemplate struct {
	Name       string
	Segments   []Segment
	Separators string
	MinLen     int
	MaxLen     int
}

func newTemplate(name, separators string, segments ...Segment) PatternTemplate {
	t := PatternTemplate{Name: name, Segments: segments, Separators: separators}
	for _, s := range segments {
		t.MinLen += s.Min
		t.MaxLen += s.Max
	}
	return t
}

func isUpperByte(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetterByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnumByte(c byte) bool {
	return isLetterByte(c) || isDigitByte(c)
}

func matchesClass(c byte, class CharClass) bool {
	switch class {
	case ClassAlpha:
		return isUpperByte(c)
	case ClassDigit:
		return isDigitByte(c)
	case ClassAny:
		return isUpperByte(c) || isDigitByte(c)
	}
	return false
}

// Match reports whether text (already normalized, see Normalize) satisfies
// the segment sequence. Separator characters may appear between segments
// only, one at a time.
func (t PatternTemplate) Match(text string) bool {
	if text == "" {
		return false
	}
	compact := 0
	for i := 0; i < len(text); i++ {
		if strings.IndexByte(t.Separators, text[i]) < 0 {
			compact++
		}
	}
	if compact < t.MinLen || compact > t.MaxLen {
		return false
	}
	return t.matchFrom(text, 0, t.Segments)
}

func (t PatternTemplate) matchFrom(text string, pos int, segments []Segment) bool {
	if len(segments) == 0 {
		return pos == len(text)
	}
	seg := segments[0]
	n := 0
	for pos+n < len(text) && n < seg.Max && matchesClass(text[pos+n], seg.Class) {
		n++
	}
	for ; n >= seg.Min; n-- {
		next := pos + n
		if len(segments) > 1 && next < len(text) && strings.IndexByte(t.Separators, text[next]) >= 0 {
			if t.matchFrom(text, next+1, segments[1:]) {
				return true
			}
		}
		if t.matchFrom(text, next, segments[1:]) {
			return true
		}
	}
	return false
}

const junkCutset = "\"'()[]{}.,;:!?*# \t"

// Normalize upper-cases raw OCR text and strips the separator noise the
// provider leaves around plates: surrounding punctuation, dots used as
// separators, hyphens embedded in the plate body, repeated whitespace.
func Normalize(raw string) string {
	t := strings.TrimSpace(raw)
	t = strings.Trim(t, junkCutset)
	t = strings.Trim(t, "-")
	t = strings.ReplaceAll(t, ".", "")

	var b strings.Builder
	b.Grow(len(t))
	for i := 0; i < len(t); i++ {
		if t[i] == '-' && i > 0 && i+1 < len(t) && isAlnumByte(t[i-1]) && isAlnumByte(t[i+1]) {
			continue
		}
		b.WriteByte(t[i])
	}
	t = b.String()

	t = strings.Join(strings.Fields(t), " ")
	return strings.ToUpper(t)
}

// ParsePattern builds a custom template from a compact spec string:
// 'L' letter, 'D' digit, 'X' either, '{m,n}' variable repetition binding to
// the preceding class character, space marking a boundary where a separator
// may appear. Example: "LLDDL{1,3}D{3,4}".
func ParsePattern(spec string) (PatternTemplate, error) {
	if spec == "" {
		return PatternTemplate{}, fmt.Errorf("%w: empty spec", ErrInvalidPattern)
	}

	separators := ""
	if strings.ContainsRune(spec, ' ') {
		separators = " "
	}

	var segments []Segment
	var run *Segment
	flush := func() {
		if run != nil {
			segments = append(segments, *run)
			run = nil
		}
	}

	for i := 0; i < len(spec); i++ {
		c := spec[i]
		switch c {
		case 'L', 'D', 'X':
			class := ClassAny
			if c == 'L' {
				class = ClassAlpha
			} else if c == 'D' {
				class = ClassDigit
			}
			if run != nil && run.Class == class {
				run.Min++
				run.Max++
			} else {
				flush()
				run = &Segment{Class: class, Min: 1, Max: 1}
			}
		case ' ':
			if run == nil && len(segments) == 0 {
				return PatternTemplate{}, fmt.Errorf("%w: leading separator in %q", ErrInvalidPattern, spec)
			}
			if i+1 == len(spec) || spec[i+1] == ' ' {
				return PatternTemplate{}, fmt.Errorf("%w: misplaced separator in %q", ErrInvalidPattern, spec)
			}
			flush()
		case '{':
			if run == nil {
				return PatternTemplate{}, fmt.Errorf("%w: repetition without class in %q", ErrInvalidPattern, spec)
			}
			end := strings.IndexByte(spec[i:], '}')
			if end < 0 {
				return PatternTemplate{}, fmt.Errorf("%w: unterminated repetition in %q", ErrInvalidPattern, spec)
			}
			parts := strings.Split(spec[i+1:i+end], ",")
			if len(parts) != 2 {
				return PatternTemplate{}, fmt.Errorf("%w: malformed repetition in %q", ErrInvalidPattern, spec)
			}
			lo, errLo := strconv.Atoi(strings.TrimSpace(parts[0]))
			hi, errHi := strconv.Atoi(strings.TrimSpace(parts[1]))
			if errLo != nil || errHi != nil || lo < 1 || hi < lo {
				return PatternTemplate{}, fmt.Errorf("%w: bad repetition bounds in %q", ErrInvalidPattern, spec)
			}
			// The repetition binds to the last class character only; a fixed
			// run before it stays fixed.
			if run.Min > 1 {
				segments = append(segments, Segment{Class: run.Class, Min: run.Min - 1, Max: run.Min - 1})
			}
			segments = append(segments, Segment{Class: run.Class, Min: lo, Max: hi})
			run = nil
			i += end
		default:
			return PatternTemplate{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidPattern, c, spec)
		}
	}
	flush()

	if len(segments) == 0 {
		return PatternTemplate{}, fmt.Errorf("%w: no segments in %q", ErrInvalidPattern, spec)
	}
	return newTemplate("custom", separators, segments...), nil
}

type Library struct {
	templates []PatternTemplate
}

// NewLibrary returns the template set tried in priority order. Custom
// templates are tried before the built-in shapes.
func NewLibrary(custom ...PatternTemplate) *Library {
	templates := make([]PatternTemplate, 0, len(custom)+6)
	templates = append(templates, custom...)
	templates = append(templates, defaultTemplates()...)
	return &Library{templates: templates}
}

type MatchResult struct {
	Template   *PatternTemplate
	Normalized string
	Corrected  bool
}

// Match normalizes text and returns the first template it satisfies.
// First match wins: earlier templates encode stricter shapes.
func (l *Library) Match(text string) (MatchResult, bool) {
	norm := Normalize(text)
	if norm == "" {
		return MatchResult{}, false
	}
	for i := range l.templates {
		if l.templates[i].Match(norm) {
			return MatchResult{Template: &l.templates[i], Normalized: norm}, true
		}
	}
	return MatchResult{}, false
}

// MatchWithCorrection retries near misses through the confusable corrector:
// each template re-reads the text with its own position classes before the
// candidate is rejected.
func (l *Library) MatchWithCorrection(text string) (MatchResult, bool) {
	norm := Normalize(text)
	if norm == "" {
		return MatchResult{}, false
	}
	for i := range l.templates {
		if l.templates[i].Match(norm) {
			return MatchResult{Template: &l.templates[i], Normalized: norm}, true
		}
	}
	for i := range l.templates {
		fixed := Correct(norm, l.templates[i])
		if fixed != norm && l.templates[i].Match(fixed) {
			return MatchResult{Template: &l.templates[i], Normalized: fixed, Corrected: true}, true
		}
	}
	return MatchResult{}, false
}
