package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("creates a client", func(t *testing.T) {
		c, err := NewClient("44556677", "Maria Quispe", "maria@example.com", "999888777", "Av. Principal 123")
		require.NoError(t, err)
		assert.Equal(t, "44556677", c.DocumentNumber())
		assert.Equal(t, "Maria Quispe", c.Name())
	})

	t.Run("trims the document number", func(t *testing.T) {
		c, err := NewClient("  44556677  ", "Maria Quispe", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, "44556677", c.DocumentNumber())
	})

	t.Run("requires document number and name", func(t *testing.T) {
		_, err := NewClient("", "Maria Quispe", "", "", "")
		assert.Error(t, err)
		_, err = NewClient("   ", "Maria Quispe", "", "", "")
		assert.Error(t, err)
		_, err = NewClient("44556677", "", "", "", "")
		assert.Error(t, err)
	})
}

func TestUpdateContact(t *testing.T) {
	c, err := NewClient("44556677", "Maria Quispe", "", "", "")
	require.NoError(t, err)

	require.NoError(t, c.UpdateContact("Maria Quispe de Flores", "maria@example.com", "999888777", "Jr. Lima 45"))
	assert.Equal(t, "Maria Quispe de Flores", c.Name())
	assert.Equal(t, "maria@example.com", c.Email())

	assert.Error(t, c.UpdateContact("", "", "", ""))
}
