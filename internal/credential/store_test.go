package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreFiltersPlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		secrets []string
		wantIDs []string
		wantErr error
	}{
		{
			name:    "valid keys keep positional ids",
			secrets: []string{"AIzaSyA-first-key", "AIzaSyB-second-key"},
			wantIDs: []string{"key-1", "key-2"},
		},
		{
			name:    "placeholders and blanks are dropped",
			secrets: []string{"", "your_api_key_here", "AIzaSyC-real-key", "  ", "key1|key2|key3"},
			wantIDs: []string{"key-3"},
		},
		{
			name:    "nothing usable",
			secrets: []string{"", "your_api_key_here"},
			wantErr: ErrNoCredentials,
		},
		{
			name:    "empty input",
			secrets: nil,
			wantErr: ErrNoCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.secrets)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, store.Count())
			for _, c := range store.List() {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestNewStoreFrom(t *testing.T) {
	t.Run("duplicate ids rejected", func(t *testing.T) {
		_, err := NewStoreFrom([]Credential{
			{ID: "a", Secret: "secret-one"},
			{ID: "a", Secret: "secret-two"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate credential id")
	})

	t.Run("disabled credentials excluded from rotation", func(t *testing.T) {
		store, err := NewStoreFrom([]Credential{
			{ID: "a", Secret: "secret-one"},
			{ID: "b", Secret: "secret-two", Status: StatusDisabled},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, store.Count())
		require.Len(t, store.Active(), 1)
		assert.Equal(t, "a", store.Active()[0].ID)
	})

	t.Run("missing status defaults to active", func(t *testing.T) {
		store, err := NewStoreFrom([]Credential{{ID: "a", Secret: "secret-one"}})
		require.NoError(t, err)
		got, ok := store.Get("a")
		require.True(t, ok)
		assert.Equal(t, StatusActive, got.Status)
	})
}

func TestStoreZeroValue(t *testing.T) {
	var s Store
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.List())
	assert.Empty(t, s.Active())
	_, ok := s.Get("anything")
	assert.False(t, ok)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "AIzaSyB123...", MaskSecret("AIzaSyB123456789012345"))
	assert.Equal(t, "short...", MaskSecret("short"))
}
