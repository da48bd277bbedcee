// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"))

	ok, err := VerifyPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"bcrypt":        "$2a$10$abcdefghijklmnopqrstuv",
		"wrong version": "$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$a2V5",
		"bad params":    "$argon2id$v=19$m=x,t=1,p=4$c2FsdA$a2V5",
		"bad salt":      "$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
	}

	for name, hash := range cases {
		t.Run(name, func(t *testing.T) {
			ok, err := VerifyPassword("anything", hash)
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}

func TestVerifyPasswordWithRehash(t *testing.T) {
	t.Run("current params", func(t *testing.T) {
		hash, err := HashPassword("pw")
		require.NoError(t, err)

		ok, fresh, err := VerifyPasswordWithRehash("pw", hash)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, fresh)
	})

	t.Run("outdated params", func(t *testing.T) {
		weak := Argon2Params{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16}
		hash, err := HashPasswordWithParams("pw", weak)
		require.NoError(t, err)

		ok, fresh, err := VerifyPasswordWithRehash("pw", hash)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NotEmpty(t, fresh)
		assert.False(t, needsRehash(fresh))

		ok, err = VerifyPassword("pw", fresh)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password never rehashes", func(t *testing.T) {
		weak := Argon2Params{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16}
		hash, err := HashPasswordWithParams("pw", weak)
		require.NoError(t, err)

		ok, fresh, err := VerifyPasswordWithRehash("nope", hash)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, fresh)
	})
}
