package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get("api_key")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	assert.NoError(t, store.Set("api_key", "secret-value"))

	value, err := store.Get("api_key")
	assert.NoError(t, err)
	assert.Equal(t, "secret-value", value)
}

func TestInMemoryStore_EmptyKeyRejected(t *testing.T) {
	store := NewInMemoryStore()
	assert.Error(t, store.Set("", "value"))
}

func TestInMemoryStore_EmptyValueDeletesKey(t *testing.T) {
	store := NewInMemoryStore()

	assert.NoError(t, store.Set("api_key", "secret-value"))
	assert.NoError(t, store.Set("api_key", ""))

	_, err := store.Get("api_key")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestInMemoryStore_Close(t *testing.T) {
	store := NewInMemoryStore()
	assert.NoError(t, store.Set("api_key", "secret-value"))
	assert.NoError(t, store.Close())

	_, err := store.Get("api_key")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}
