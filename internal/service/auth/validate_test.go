package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validateEmail("jane.doe+cart@example.co.uk"))
	assert.Error(t, validateEmail(""))
	assert.Error(t, validateEmail("not-an-email"))
	assert.Error(t, validateEmail("missing@tld"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validatePassword("secret1", "secret1"))
	assert.Error(t, validatePassword("", ""))
	assert.Error(t, validatePassword("short", "short"))
	assert.Error(t, validatePassword("secret1", "secret2"))
}

func TestFormatName(t *testing.T) {
	got, err := formatName("  jane   DOE ")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got)

	got, err = formatName("al")
	require.NoError(t, err)
	assert.Equal(t, "Al", got)

	_, err = formatName("   ")
	assert.Error(t, err)

	_, err = formatName("x")
	assert.Error(t, err)
}
