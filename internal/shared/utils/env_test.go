package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("PLAYLIST_TEST_VALUE", "set")
	t.Setenv("PLAYLIST_TEST_EMPTY", "")

	assert.Equal(t, "set", GetEnv("PLAYLIST_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("PLAYLIST_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("PLAYLIST_TEST_UNSET", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("PLAYLIST_TEST_INT", "42")
	t.Setenv("PLAYLIST_TEST_BAD", "forty")

	assert.Equal(t, 42, GetEnvInt("PLAYLIST_TEST_INT", 7))
	assert.Equal(t, 7, GetEnvInt("PLAYLIST_TEST_BAD", 7))
	assert.Equal(t, 7, GetEnvInt("PLAYLIST_TEST_UNSET", 7))
}
