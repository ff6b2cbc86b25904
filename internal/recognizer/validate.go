package recognizer

import "strings"

// Indian state and union-territory registration prefixes.
var defaultJurisdictionCodes = []string{
	"AN", "AP", "AR", "AS", "BR", "CG", "CH", "DD", "DL", "GA", "GJ", "HP",
	"HR", "JH", "JK", "KA", "KL", "LA", "LD", "MH", "ML", "MN", "MP", "MZ",
	"NL", "OD", "PB", "PY", "RJ", "SK", "TG", "TN", "TR", "TS", "UK", "UP",
	"WB",
}

// ValidatePrefix checks the candidate's leading 1-2 letter prefix against the
// jurisdiction allow-list. Callers flag failures rather than dropping them.
func ValidatePrefix(normalized string, allowed map[string]struct{}) bool {
	compact := strings.ReplaceAll(normalized, " ", "")
	n := 0
	for n < len(compact) && n < 2 && isUpperByte(compact[n]) {
		n++
	}
	if n == 0 {
		return false
	}
	_, ok := allowed[compact[:n]]
	return ok
}
