package credential_test

import (
	"testing"

	"github.com/goto/metasearch/core/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	hashed, err := credential.Hash("s3cret12")
	require.NoError(t, err)

	type testCase struct {
		Description string
		Key         string
		Secret      credential.Secret
		ExpectErr   error
	}

	var testCases = []testCase{
		{
			Description: "should allow any key when no secret is configured",
			Key:         "whatever",
			Secret:      credential.Secret{},
		},
		{
			Description: "should allow an empty key when no secret is configured",
			Key:         "",
			Secret:      credential.Secret{Hashed: true},
		},
		{
			Description: "should deny a missing key when a secret is configured",
			Key:         "",
			Secret:      credential.Secret{Value: "s3cret12"},
			ExpectErr:   credential.AuthError{Reason: credential.ReasonMissingKey},
		},
		{
			Description: "should allow the exact cleartext key",
			Key:         "s3cret12",
			Secret:      credential.Secret{Value: "s3cret12"},
		},
		{
			Description: "should deny a different cleartext key",
			Key:         "wrong",
			Secret:      credential.Secret{Value: "s3cret12"},
			ExpectErr:   credential.AuthError{Reason: credential.ReasonKeyMismatch},
		},
		{
			Description: "should deny a key that only shares a prefix",
			Key:         "s3cret1",
			Secret:      credential.Secret{Value: "s3cret12"},
			ExpectErr:   credential.AuthError{Reason: credential.ReasonKeyMismatch},
		},
		{
			Description: "should allow a key matching the stored hash",
			Key:         "s3cret12",
			Secret:      credential.Secret{Value: hashed, Hashed: true},
		},
		{
			Description: "should deny a key not matching the stored hash",
			Key:         "wrong",
			Secret:      credential.Secret{Value: hashed, Hashed: true},
			ExpectErr:   credential.AuthError{Reason: credential.ReasonKeyMismatch},
		},
		{
			Description: "should deny the hash itself used as key",
			Key:         hashed,
			Secret:      credential.Secret{Value: hashed, Hashed: true},
			ExpectErr:   credential.AuthError{Reason: credential.ReasonKeyMismatch},
		},
		{
			Description: "should deny when hash mode is on but the stored value is not a hash",
			Key:         "s3cret12",
			Secret:      credential.Secret{Value: "s3cret12", Hashed: true},
			ExpectErr:   credential.AuthError{Reason: credential.ReasonKeyMismatch},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			first := credential.Verify(tc.Key, tc.Secret)
			second := credential.Verify(tc.Key, tc.Secret)

			assert.Equal(t, tc.ExpectErr, first)
			assert.Equal(t, first, second)
		})
	}
}

func TestHash(t *testing.T) {
	t.Run("should never return the cleartext", func(t *testing.T) {
		hashed, err := credential.Hash("s3cret12")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret12", hashed)
	})

	t.Run("should return error for an empty key", func(t *testing.T) {
		_, err := credential.Hash("")
		assert.Error(t, err)
	})
}

func TestAuthErrorMessage(t *testing.T) {
	err := credential.AuthError{Reason: credential.ReasonMissingKey}
	assert.Equal(t, "invalid key: missing key", err.Error())
}
