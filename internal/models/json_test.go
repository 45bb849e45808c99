package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONColumn(t *testing.T) {
	t.Run("bytes and text both decode", func(t *testing.T) {
		var fromBytes, fromText JSON
		require.NoError(t, fromBytes.Scan([]byte(`{"id":"lead-1"}`)))
		require.NoError(t, fromText.Scan(`{"id":"lead-1"}`))
		assert.Equal(t, fromBytes, fromText)
		assert.Equal(t, "lead-1", fromBytes["id"])
	})

	t.Run("null column clears the snapshot", func(t *testing.T) {
		snapshot := JSON{"id": "lead-1"}
		require.NoError(t, snapshot.Scan(nil))
		assert.Nil(t, snapshot)
	})

	t.Run("unsupported source is refused", func(t *testing.T) {
		var snapshot JSON
		assert.Error(t, snapshot.Scan(42))
	})

	t.Run("nil snapshot stores as sql null", func(t *testing.T) {
		v, err := JSON(nil).Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
