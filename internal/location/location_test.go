package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnderr "github.com/KirkDiggler/party-share/internal/errors"
	"github.com/KirkDiggler/party-share/internal/location"
)

func TestURL_Param(t *testing.T) {
	loc, err := location.Parse("https://party.example.com/builder/?lang=ja&p=abc")
	require.NoError(t, err)

	assert.Equal(t, "abc", loc.Param("p"))
	assert.Equal(t, "ja", loc.Param("lang"))
	assert.Equal(t, "", loc.Param("missing"))
}

func TestURL_ReplaceParam(t *testing.T) {
	t.Run("keeps path and other parameters", func(t *testing.T) {
		loc, err := location.Parse("https://party.example.com/builder/?lang=ja")
		require.NoError(t, err)

		loc.ReplaceParam("p", "eyJ0aGVtZSI6ImRhcmsifQ")

		assert.Equal(t, "https://party.example.com/builder/?lang=ja&p=eyJ0aGVtZSI6ImRhcmsifQ", loc.String())
	})

	t.Run("replaces existing value", func(t *testing.T) {
		loc, err := location.Parse("http://localhost:8080/?p=old")
		require.NoError(t, err)

		loc.ReplaceParam("p", "new")

		assert.Equal(t, "new", loc.Param("p"))
		assert.Equal(t, "http://localhost:8080/?p=new", loc.String())
	})

	t.Run("empty value removes parameter", func(t *testing.T) {
		loc, err := location.Parse("http://localhost:8080/?p=old")
		require.NoError(t, err)

		loc.ReplaceParam("p", "")

		assert.Equal(t, "http://localhost:8080/", loc.String())
	})
}

func TestURL_ReplaceParamKeepsUnparseablePairs(t *testing.T) {
	t.Run("pairs holding a semicolon survive", func(t *testing.T) {
		loc, err := location.Parse("http://localhost:8080/?utm=a;b&lang=ja")
		require.NoError(t, err)

		loc.ReplaceParam("p", "abc")

		assert.Equal(t, "http://localhost:8080/?utm=a;b&lang=ja&p=abc", loc.String())
		assert.Equal(t, "ja", loc.Param("lang"))
		assert.Equal(t, "abc", loc.Param("p"))
	})

	t.Run("existing pair is replaced in place", func(t *testing.T) {
		loc, err := location.Parse("http://localhost:8080/?p=old&utm=a;b&p=dup")
		require.NoError(t, err)

		loc.ReplaceParam("p", "new")

		assert.Equal(t, "http://localhost:8080/?p=new&utm=a;b", loc.String())
	})

	t.Run("removal keeps other pairs", func(t *testing.T) {
		loc, err := location.Parse("http://localhost:8080/?utm=a;b&p=old")
		require.NoError(t, err)

		loc.ReplaceParam("p", "")

		assert.Equal(t, "http://localhost:8080/?utm=a;b", loc.String())
	})

	t.Run("copy with parameter keeps them too", func(t *testing.T) {
		loc, err := location.Parse("http://localhost:8080/?utm=a;b")
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8080/?utm=a;b&p=tok", loc.WithParam("p", "tok"))
	})
}

func TestURL_WithParam(t *testing.T) {
	loc, err := location.Parse("http://localhost:8080/")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/?p=tok", loc.WithParam("p", "tok"))
	assert.Equal(t, "http://localhost:8080/", loc.String(), "original address is untouched")
}

func TestParse_Invalid(t *testing.T) {
	_, err := location.Parse("http://[::1")
	assert.True(t, dnderr.IsInvalidArgument(err))
}
