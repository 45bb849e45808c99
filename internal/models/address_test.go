package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressList() []Address {
	return []Address{
		{ID: "a1", Type: AddressTypeCurrent, IsPrimary: true},
		{ID: "a2", Type: AddressTypePermanent},
		{ID: "a3", Type: AddressTypeOffice},
	}
}

func TestRemoveAddress(t *testing.T) {
	t.Run("removing a non-primary keeps the primary", func(t *testing.T) {
		out := RemoveAddress(addressList(), "a2")
		require.Len(t, out, 2)
		assert.True(t, out[0].IsPrimary)
		assert.False(t, out[1].IsPrimary)
	})

	t.Run("removing the primary promotes the first remaining", func(t *testing.T) {
		out := RemoveAddress(addressList(), "a1")
		require.Len(t, out, 2)
		assert.Equal(t, "a2", out[0].ID)
		assert.True(t, out[0].IsPrimary)
		assert.False(t, out[1].IsPrimary)
	})

	t.Run("removing the last address leaves an empty list", func(t *testing.T) {
		out := RemoveAddress([]Address{{ID: "a1", IsPrimary: true}}, "a1")
		assert.Empty(t, out)
	})

	t.Run("unknown id leaves the list unchanged", func(t *testing.T) {
		out := RemoveAddress(addressList(), "nope")
		assert.Len(t, out, 3)
	})
}

func TestSetPrimaryAddress(t *testing.T) {
	t.Run("marks the target and demotes the rest", func(t *testing.T) {
		out := SetPrimaryAddress(addressList(), "a3")
		assert.False(t, out[0].IsPrimary)
		assert.False(t, out[1].IsPrimary)
		assert.True(t, out[2].IsPrimary)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		out := SetPrimaryAddress(addressList(), "nope")
		assert.Equal(t, addressList(), out)
	})
}

func TestPrimaryAddress(t *testing.T) {
	t.Run("returns the flagged entry", func(t *testing.T) {
		got := PrimaryAddress(addressList())
		require.NotNil(t, got)
		assert.Equal(t, "a1", got.ID)
	})

	t.Run("falls back to the first entry when none is flagged", func(t *testing.T) {
		list := []Address{{ID: "a1"}, {ID: "a2"}}
		got := PrimaryAddress(list)
		require.NotNil(t, got)
		assert.Equal(t, "a1", got.ID)
	})

	t.Run("nil for an empty list", func(t *testing.T) {
		assert.Nil(t, PrimaryAddress(nil))
	})
}
