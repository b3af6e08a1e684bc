package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", h)

	require.True(t, CheckPassword(h, "s3cret"))
	require.False(t, CheckPassword(h, "wrong"))
}
