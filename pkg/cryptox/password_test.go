package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	SetPepperPath(t.TempDir() + "/pepper")

	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	t.Run("correct password verifies", func(t *testing.T) {
		require.NoError(t, VerifyPassword("Secret123", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("wrong", hash), ErrPasswordMismatch)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		other, err := HashPassword("Secret123")
		require.NoError(t, err)
		require.NotEqual(t, hash, other)
	})
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	SetPepperPath(t.TempDir() + "/pepper")

	cases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not phc", "plain-text"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifyPassword("whatever", tc.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrPasswordMismatch)
		})
	}
}
