package plate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLegacyFormat(t *testing.T) {
	tests := []struct {
		mercosul string
		gray     string
	}{
		{"ABC1C34", "ABC1234"},
		{"ACI6J67", "ACI6967"},
		{"MAA0B92", "MAA0192"},
		{"BCG7G17", "BCG7617"},
		{"FAL7D00", "FAL7300"},
		{"HAH2H74", "HAH2774"},
		{"POD5A60", "POD5060"},
		{"QWE1E23", "QWE1423"},
		{"QWE1F23", "QWE1523"},
		{"QWE1I23", "QWE1823"},
	}

	for _, tt := range tests {
		t.Run(tt.mercosul, func(t *testing.T) {
			got, err := ToLegacyFormat(tt.mercosul)
			require.NoError(t, err)
			assert.Equal(t, tt.gray, got)
		})
	}
}

func TestToLegacyFormat_OnlyFifthCharacterChanges(t *testing.T) {
	got, err := ToLegacyFormat("abc1c34")
	require.NoError(t, err)
	assert.Equal(t, "abc1234", got)
}

func TestToLegacyFormat_GrayPlateIsIdentity(t *testing.T) {
	for _, p := range []string{"ABC1234", "XYZ9876", "AAA0000"} {
		got, err := ToLegacyFormat(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestToLegacyFormat_Errors(t *testing.T) {
	t.Run("letter outside A-J", func(t *testing.T) {
		_, err := ToLegacyFormat("ABC1K34")
		assert.ErrorIs(t, err, ErrInvalidPlateCharacter)
	})

	t.Run("lowercase letter outside a-j", func(t *testing.T) {
		_, err := ToLegacyFormat("ABC1z34")
		assert.ErrorIs(t, err, ErrInvalidPlateCharacter)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := ToLegacyFormat("ABC123")
		assert.ErrorIs(t, err, ErrInvalidPlateLength)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := ToLegacyFormat("ABC12345")
		assert.ErrorIs(t, err, ErrInvalidPlateLength)
	})
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "ABC1C34", Sanitize(" abc-1c34 "))
	assert.Equal(t, "ABC1234", Sanitize("ABC 1234"))
}

func TestIsMercosul(t *testing.T) {
	assert.True(t, IsMercosul("ABC1C34"))
	assert.False(t, IsMercosul("ABC1234"))
	assert.False(t, IsMercosul("ABC"))
}
