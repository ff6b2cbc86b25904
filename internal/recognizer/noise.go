package recognizer

import (
	"regexp"
	"strings"

	"plate-service/internal/model"
)

// Vocabulary seen around plates in camera footage: country marks, brand
// names, body types, overlay labels, filler words.
var noiseWords = map[string]struct{}{
	"IND": {}, "NO": {}, "ND": {}, "MC": {}, "HIRE": {}, "FOR": {}, "GOODS": {},
	"CARRIER": {}, "CONTRACT": {}, "CARRIAGE": {}, "GOVT": {}, "HICLE": {},
	"VEHICLE": {}, "AUTO": {}, "MOTOR": {}, "CAB": {}, "CNG": {},
	"ASHOK": {}, "LEYLAND": {}, "ASHOKILEYLAND": {}, "ASHOK LEYLAND": {},
	"TATA": {}, "SIGNA": {}, "EICHER": {}, "KIA": {}, "ISUZU": {},
	"BHARATBENZ": {}, "MAHINDRA": {}, "POLICE": {}, "LAKSHMI": {},
	"KRISHNA": {}, "PVT": {}, "LTD": {}, "SUPER": {}, "ROCKET": {},
	"RANGE": {}, "ROVER": {}, "DRIVING": {}, "ROAD": {}, "KING": {},
	"SECTION": {}, "AMOUNT": {}, "FRESH": {}, "FRESS": {},
	"SPEED": {}, "CLASS": {}, "PLATE": {}, "LANE": {}, "DATE": {},
	"RHS": {}, "LHS": {}, "CH": {},
	"CAR": {}, "BIKE": {}, "TRUCK": {}, "LCV": {}, "BUS": {},
	"THE": {}, "AND": {}, "OF": {}, "IN": {}, "ON": {}, "AT": {}, "TO": {},
	"IS": {}, "IT": {}, "IF": {},
	"PP": {}, "CK": {}, "KO": {}, "AO": {}, "LI": {}, "RE": {}, "DE": {},
	"BE": {}, "YK": {}, "YS": {},
	"ARM": {}, "CII": {}, "NZB": {}, "ISI": {}, "PO": {}, "JAI": {},
	"SANTOS": {}, "HILL": {}, "PRO": {}, "EUTECH": {}, "EUTECH6": {},
	"MEONAME": {},
}

// Junk glued in front of plates, stripped rather than discarding the
// fragment.
var junkPrefixes = []string{"(ND)", "IND", "NO", "ND"}

var (
	timeRe  = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	speedRe = regexp.MustCompile(`^\d+\s*KM/H$`)
	laneRe  = regexp.MustCompile(`^[\d+]*\s*(RHS|LHS)$`)
)

// IsNoise reports whether the fragment's full text is known non-plate
// vocabulary: deny-listed words, timestamp- or date-shaped strings, speed
// overlay fragments, contact addresses.
func IsNoise(text string) bool {
	t := strings.ToUpper(strings.TrimSpace(text))
	t = strings.TrimRight(t, ".-:,;!?")
	if len(t) <= 1 {
		return true
	}
	if _, ok := noiseWords[t]; ok {
		return true
	}
	if timeRe.MatchString(t) || dateRe.MatchString(t) {
		return true
	}
	if speedRe.MatchString(t) || laneRe.MatchString(t) {
		return true
	}
	if strings.ContainsRune(t, '@') || strings.Contains(t, "GMAIL") {
		return true
	}
	return false
}

// StripJunkPrefix removes a deny-listed prefix attached to a candidate, with
// or without a separating space, so "INDTS08FW3131" still yields a plate.
func StripJunkPrefix(text string) string {
	t := strings.TrimSpace(text)
	for _, prefix := range junkPrefixes {
		upper := strings.ToUpper(t)
		if len(upper) <= len(prefix) || !strings.HasPrefix(upper, prefix) {
			continue
		}
		rest := t[len(prefix):]
		if rest[0] == ' ' || rest[0] == '\t' || isLetterByte(rest[0]) {
			t = strings.TrimSpace(rest)
		}
	}
	return t
}

// FilterNoise drops deny-listed fragments and cleans junk prefixes in place.
// Confidence is never considered here; that filtering happens upstream.
func FilterNoise(fragments []model.TextFragment) []model.TextFragment {
	out := make([]model.TextFragment, 0, len(fragments))
	for _, f := range fragments {
		text := StripJunkPrefix(f.Text)
		if text == "" || IsNoise(text) {
			continue
		}
		f.Text = text
		out = append(out, f)
	}
	return out
}
