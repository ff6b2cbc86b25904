package recognizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePrefix(t *testing.T) {
	allowed := map[string]struct{}{"TS": {}, "KA": {}, "W": {}}

	require.True(t, ValidatePrefix("TS08FW3131", allowed))
	require.True(t, ValidatePrefix("TS 08 FW 3131", allowed))
	require.False(t, ValidatePrefix("ZZ08AB1234", allowed))
	require.False(t, ValidatePrefix("0808AB1234", allowed))
	require.False(t, ValidatePrefix("", allowed))

	// Single-letter prefixes only match when the second character is not
	// a letter.
	require.True(t, ValidatePrefix("W1234AB", allowed))
	require.False(t, ValidatePrefix("WB20AB1234", allowed))
}
