package passpkg

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAPIKeyHash(t *testing.T) {
	apiKey := "abcdefghijklmnopqrstuvwxyz"
	hashedKey1, err := Hash(apiKey)
	require.NoError(t, err)
	require.NotEmpty(t, hashedKey1)

	err = Check(apiKey, hashedKey1)
	require.NoError(t, err)

	wrongKey := "abc"
	err = Check(wrongKey, hashedKey1)
	require.EqualError(t, err, bcrypt.ErrMismatchedHashAndPassword.Error())

	// Test for random salt generation
	hashedKey2, err := Hash(apiKey)
	require.NoError(t, err)
	require.NotEmpty(t, hashedKey1)
	require.NotEqual(t, hashedKey1, hashedKey2)
}
