package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	t.Run("reference value", func(t *testing.T) {
		got, err := Calculate(150)
		require.NoError(t, err)
		require.False(t, got.IsEmpty)
		require.Len(t, got.Results, 3)
		assert.InDelta(t, 781.25, got.Results[0].Value, 0.01)
		assert.InDelta(t, 18248.18, got.Results[1].Value, 0.01)
		assert.InDelta(t, 2.5, got.Results[2].Value, 0.01)
		assert.Equal(t, "781", got.Results[0].FormattedValue)
		assert.Equal(t, "18,248", got.Results[1].FormattedValue)
		assert.Contains(t, got.DisplayText, "driving ~781 miles")
	})

	t.Run("below threshold is empty", func(t *testing.T) {
		got, err := Calculate(0.5)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty)
		assert.InDelta(t, 0.5, got.InputKg, 0)
	})

	t.Run("negative is an error", func(t *testing.T) {
		got, err := Calculate(-1)
		require.ErrorIs(t, err, ErrNegativeValue)
		assert.True(t, got.IsEmpty)
	})

	t.Run("large values abbreviated", func(t *testing.T) {
		got, err := Calculate(1_000_000)
		require.NoError(t, err)
		assert.Equal(t, "~5.2 million", got.Results[0].FormattedValue)
	})
}
