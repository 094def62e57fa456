package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	dnderr "github.com/KirkDiggler/party-share/internal/errors"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := dnderr.MalformedToken("bad padding").WithMeta("token_length", 5)

	wrapped := dnderr.Wrap(base, "decode share token")

	assert.True(t, dnderr.IsMalformedToken(wrapped))
	assert.Equal(t, "decode share token: bad padding", wrapped.Error())
	assert.Equal(t, 5, dnderr.GetMeta(wrapped)["token_length"])
}

func TestWrap_UnknownForPlainErrors(t *testing.T) {
	wrapped := dnderr.Wrap(fmt.Errorf("boom"), "context")

	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(wrapped))
	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
}

func TestDomainConstructors(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	t.Run("storage unavailable wraps cause", func(t *testing.T) {
		err := dnderr.StorageUnavailable(cause, "read party state")
		assert.True(t, dnderr.IsStorageUnavailable(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("catalog unavailable without cause", func(t *testing.T) {
		err := dnderr.CatalogUnavailable(nil, "no catalog source configured")
		assert.True(t, dnderr.IsCatalogUnavailable(err))
		assert.Equal(t, "no catalog source configured", err.Error())
	})

	t.Run("codes do not cross", func(t *testing.T) {
		err := dnderr.InvalidArgumentf("slot %d out of range", 9)
		assert.True(t, dnderr.IsInvalidArgument(err))
		assert.False(t, dnderr.IsMalformedToken(err))
		assert.False(t, dnderr.IsNotFound(err))
	})
}
