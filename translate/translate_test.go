package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLocales()
	assert.Equal("address 12 out of range", From("address %v out of range", 12))
	assert.Equal("plain", From("plain"))

	// No catalog is registered, so any locale falls back to the key.
	SetLocales("fr-FR", "de")
	assert.Equal("register r3", From("register %v", "r3"))

	SetLocales("en-US")
}
