package recognizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func spacedTemplate(t *testing.T) PatternTemplate {
	t.Helper()
	for _, tpl := range defaultTemplates() {
		if tpl.Name == "spaced" {
			return tpl
		}
	}
	t.Fatal("spaced template missing")
	return PatternTemplate{}
}

func compactTemplate(t *testing.T) PatternTemplate {
	t.Helper()
	for _, tpl := range defaultTemplates() {
		if tpl.Name == "compact" {
			return tpl
		}
	}
	t.Fatal("compact template missing")
	return PatternTemplate{}
}

func TestCorrectSubstitutesByPosition(t *testing.T) {
	spaced := spacedTemplate(t)

	// Digit in a letter position.
	require.Equal(t, "TS 12 UD 3371", Correct("T5 12 UD 3371", spaced))
	// Letter in a digit position, final segment.
	require.Equal(t, "TS08 FW 3131", Correct("TS08 FW 313I", spaced))
}

func TestCorrectLeavesMatchingClassesAlone(t *testing.T) {
	spaced := spacedTemplate(t)

	// 'O' and 'D' sit in letter positions: confusable with digits, but
	// already the expected class, so untouched.
	require.Equal(t, "OD05 AB 1234", Correct("OD05 AB 1234", spaced))
	require.Equal(t, "TS08 FW 3131", Correct("TS08 FW 3131", spaced))
}

func TestCorrectDoesNotOverconsumeVariableSegments(t *testing.T) {
	compact := compactTemplate(t)

	// The '8' after 'F' could read as 'B', but the series segment already
	// met its minimum and is not final, so the digit is left for the
	// number segment.
	require.Equal(t, "TS08F8131", Correct("TS08F8131", compact))
}

func TestCorrectBelowMinimumWidth(t *testing.T) {
	compact := compactTemplate(t)

	// Second character of the state code misread as a digit: below the
	// segment minimum, so substitution applies even mid-template.
	require.Equal(t, "TS08AB1234", Correct("T508AB1234", compact))
}
