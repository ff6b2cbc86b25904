package recognizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  TN.52 L.0083  ", "TN52 L0083"},
		{"TS-08-FW-3131", "TS08FW3131"},
		{"(TS08FW3131)", "TS08FW3131"},
		{"ts08 fw 3131", "TS08 FW 3131"},
		{"TS08   FW   3131", "TS08 FW 3131"},
		{"-KA01AB1234-", "KA01AB1234"},
		{"   ", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestLibraryMatchPriority(t *testing.T) {
	lib := NewLibrary()

	cases := []struct {
		text string
		name string
	}{
		{"TS08FW3131", "compact"},
		{"TS08 FW 3131", "spaced"},
		{"NL01A J0044", "mixed-spacing"},
		{"TS081234", "generic"},
	}

	for _, tc := range cases {
		res, ok := lib.Match(tc.text)
		require.True(t, ok, "expected %q to match", tc.text)
		require.Equal(t, tc.name, res.Template.Name, "input %q", tc.text)
		require.False(t, res.Corrected)
	}
}

func TestLibraryMatchRejectsNonPlates(t *testing.T) {
	lib := NewLibrary()

	for _, text := range []string{"", "HELLO", "1234567890", "TS", "TS08"} {
		_, ok := lib.Match(text)
		require.False(t, ok, "expected %q not to match", text)
	}
}

func TestLibraryMatchWithCorrection(t *testing.T) {
	lib := NewLibrary()

	res, ok := lib.MatchWithCorrection("TS08 FW 313I")
	require.True(t, ok)
	require.True(t, res.Corrected)
	require.Equal(t, "TS08 FW 3131", res.Normalized)

	// A clean plate goes through the direct path untouched.
	res, ok = lib.MatchWithCorrection("TS08 FW 3131")
	require.True(t, ok)
	require.False(t, res.Corrected)
	require.Equal(t, "TS08 FW 3131", res.Normalized)
}

func TestParsePattern(t *testing.T) {
	tpl, err := ParsePattern("LLDDL{1,3}D{3,4}")
	require.NoError(t, err)
	require.Equal(t, []Segment{
		{Class: ClassAlpha, Min: 2, Max: 2},
		{Class: ClassDigit, Min: 2, Max: 2},
		{Class: ClassAlpha, Min: 1, Max: 3},
		{Class: ClassDigit, Min: 3, Max: 4},
	}, tpl.Segments)
	require.Equal(t, "", tpl.Separators)
	require.True(t, tpl.Match("TS08FW3131"))
	require.False(t, tpl.Match("TS08 FW 3131"))

	spaced, err := ParsePattern("LL DD L{1,3} D{3,4}")
	require.NoError(t, err)
	require.Equal(t, " ", spaced.Separators)
	require.True(t, spaced.Match("TS08 FW 3131"))
	require.True(t, spaced.Match("TS08FW3131"))

	mixed, err := ParsePattern("XXXX")
	require.NoError(t, err)
	require.True(t, mixed.Match("A1B2"))
	require.False(t, mixed.Match("A1B"))
}

func TestParsePatternRejectsMalformedSpecs(t *testing.T) {
	for _, spec := range []string{
		"",
		"   ",
		"L{0,2}",
		"L{2,1}",
		"{2,3}",
		" LL",
		"LL ",
		"LL  DD",
		"LL?D",
		"L{2",
		"L{2;3}",
	} {
		_, err := ParsePattern(spec)
		require.ErrorIs(t, err, ErrInvalidPattern, "spec %q", spec)
	}
}

func TestTemplateMatchBacktracks(t *testing.T) {
	// Variable series followed by variable digits: the matcher must give
	// characters back when the greedy split leaves the tail short.
	tpl, err := ParsePattern("LLDDX{1,3}D{3,4}")
	require.NoError(t, err)
	require.True(t, tpl.Match("TS08A1234"))
}
