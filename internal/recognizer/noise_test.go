package recognizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"plate-service/internal/model"
)

func TestIsNoise(t *testing.T) {
	noisy := []string{
		"ASHOK LEYLAND",
		"TATA",
		"POLICE",
		"PLATE",
		"12:45:10",
		"12:45",
		"2023-04-01 12:00",
		"80 KM/H",
		"80KM/H",
		"RHS",
		"2+RHS",
		"support@gmail.com",
		"GMAIL",
		"X",
		"",
		"IND.",
	}
	for _, text := range noisy {
		require.True(t, IsNoise(text), "expected %q to be noise", text)
	}

	clean := []string{
		"TS08 FW 3131",
		"NL01A",
		"J0044",
		"TN52 L0083",
	}
	for _, text := range clean {
		require.False(t, IsNoise(text), "expected %q to be kept", text)
	}
}

func TestStripJunkPrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"IND TS08 FW 3131", "TS08 FW 3131"},
		{"INDTS08FW3131", "TS08FW3131"},
		{"(ND)TS08FW3131", "TS08FW3131"},
		{"NO KA01AB1234", "KA01AB1234"},
		{"TS08 FW 3131", "TS08 FW 3131"},
		// Digits right after the prefix mean it is part of the reading,
		// not junk.
		{"ND01AB1234", "ND01AB1234"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, StripJunkPrefix(tc.in), "input %q", tc.in)
	}
}

func TestFilterNoiseIgnoresConfidence(t *testing.T) {
	fragments := []model.TextFragment{
		{Text: "ASHOK LEYLAND", Confidence: 99.9, Order: 0},
		{Text: "TS08 FW 3131", Confidence: 5.0, Order: 1},
		{Text: "12:45:10", Confidence: 99.0, Order: 2},
	}

	out := FilterNoise(fragments)

	require.Len(t, out, 1)
	require.Equal(t, "TS08 FW 3131", out[0].Text)
	require.Equal(t, 5.0, out[0].Confidence)
	require.Equal(t, 1, out[0].Order)
}
