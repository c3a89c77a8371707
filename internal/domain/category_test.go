package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_CategoryFromWire(t *testing.T) {
	t.Run("parses canonical wire names", func(t *testing.T) {
		for _, c := range Categories() {
			parsed, err := CategoryFromWire(string(c))
			require.NoError(t, err)
			require.Equal(t, c, parsed)
		}
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		parsed, err := CategoryFromWire("largecap")
		require.NoError(t, err)
		require.Equal(t, CategoryLargeCap, parsed)

		parsed, err = CategoryFromWire("GOLD")
		require.NoError(t, err)
		require.Equal(t, CategoryGold, parsed)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := CategoryFromWire("Crypto")
		require.Error(t, err)
		require.ErrorAs(t, err, &InvalidCategoryError{})
	})
}

func Test_Category_jsonMapKey(t *testing.T) {
	in := map[Category][]string{
		CategoryLargeCap: {"AAPL"},
		CategoryBonds:    {"TLT"},
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)

	out := map[Category][]string{}
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, in, out)

	// stored documents may carry any casing
	out = map[Category][]string{}
	require.NoError(t, json.Unmarshal([]byte(`{"largecap": ["AAPL"]}`), &out))
	require.Equal(t, []string{"AAPL"}, out[CategoryLargeCap])
}
