package password_test

import (
	"bistro/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	hashed, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2"))

	again, err := password.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "salts differ")
}

func TestHash_Rejects(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmpty)

	_, err = password.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, password.ErrTooLong)

	_, err = password.Hash(strings.Repeat("x", 72))
	assert.NoError(t, err)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("password1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		plain  string
		hashed string
		want   error
	}{
		{name: "match", plain: "password1", hashed: hashed},
		{name: "wrong password", plain: "password2", hashed: hashed, want: password.ErrMismatch},
		{name: "empty password", plain: "", hashed: hashed, want: password.ErrMismatch},
		{name: "empty hash", plain: "password1", hashed: "", want: password.ErrMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hashed)
			if tt.want == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	err := password.Verify("password1", "not-a-bcrypt-hash")

	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrMismatch)
}
