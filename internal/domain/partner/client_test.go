package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client with valid data", func(t *testing.T) {
		client, err := NewClient("Maria Lopez", "+52 555 123 4567", "12 Market St")
		require.NoError(t, err)

		assert.Equal(t, "Maria Lopez", client.Name)
		assert.Equal(t, "+52 555 123 4567", client.Phone)
		assert.Equal(t, "12 Market St", client.Address)
		assert.NotEmpty(t, client.ID)
		assert.Len(t, client.GetDomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewClient("", "+52 555 123 4567", "12 Market St")
		assert.Error(t, err)
	})

	t.Run("rejects invalid phone", func(t *testing.T) {
		tests := []struct {
			name  string
			phone string
		}{
			{"empty", ""},
			{"too short", "123"},
			{"letters", "call-me-maybe"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewClient("Maria Lopez", tt.phone, "12 Market St")
				assert.Error(t, err)
			})
		}
	})
}

func TestClient_Update(t *testing.T) {
	client, err := NewClient("Maria Lopez", "+52 555 123 4567", "12 Market St")
	require.NoError(t, err)
	initialVersion := client.Version

	t.Run("updates fields and bumps version", func(t *testing.T) {
		err := client.Update("Maria L. Garcia", "5551112222", "34 Harbor Ave")
		require.NoError(t, err)

		assert.Equal(t, "Maria L. Garcia", client.Name)
		assert.Equal(t, "5551112222", client.Phone)
		assert.Equal(t, "34 Harbor Ave", client.Address)
		assert.Greater(t, client.Version, initialVersion)
	})

	t.Run("rejects invalid update", func(t *testing.T) {
		err := client.Update("", "5551112222", "34 Harbor Ave")
		assert.Error(t, err)
	})
}

func TestClient_SetEmail(t *testing.T) {
	client, err := NewClient("Maria Lopez", "+52 555 123 4567", "12 Market St")
	require.NoError(t, err)

	t.Run("accepts valid email", func(t *testing.T) {
		require.NoError(t, client.SetEmail("maria@example.com"))
		assert.Equal(t, "maria@example.com", client.Email)
	})

	t.Run("accepts empty email as unset", func(t *testing.T) {
		require.NoError(t, client.SetEmail(""))
		assert.Empty(t, client.Email)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		assert.Error(t, client.SetEmail("not-an-email"))
	})
}
