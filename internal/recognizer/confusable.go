package recognizer

import "strings"

// Characters OCR commonly misreads across the letter/digit boundary.
var (
	toDigit = map[byte]byte{'O': '0', 'I': '1', 'S': '5', 'B': '8', 'G': '6', 'D': '0'}
	toAlpha = map[byte]byte{'0': 'O', '1': 'I', '5': 'S', '8': 'B', '6': 'G'}
)

func confusableFor(c byte, class CharClass) (byte, bool) {
	switch class {
	case ClassDigit:
		sub, ok := toDigit[c]
		return sub, ok
	case ClassAlpha:
		sub, ok := toAlpha[c]
		return sub, ok
	}
	return 0, false
}

// Correct re-reads text against the template's segment classes and swaps
// confusable characters only where the expected class disagrees; characters
// already in the right class are never touched. Past a segment's minimum
// width a substitution is allowed only in the final segment, so an ambiguous
// character is otherwise left for the following segment to claim. The caller
// must re-validate the returned string against the template.
func Correct(text string, t PatternTemplate) string {
	out := []byte(text)
	pos := 0
	for si, seg := range t.Segments {
		last := si == len(t.Segments)-1
		n := 0
		for pos < len(out) && n < seg.Max {
			c := out[pos]
			if strings.IndexByte(t.Separators, c) >= 0 {
				break
			}
			if matchesClass(c, seg.Class) {
				pos++
				n++
				continue
			}
			if sub, ok := confusableFor(c, seg.Class); ok && (n < seg.Min || last) {
				out[pos] = sub
				pos++
				n++
				continue
			}
			break
		}
		if pos < len(out) && strings.IndexByte(t.Separators, out[pos]) >= 0 {
			pos++
		}
	}
	return string(out)
}
