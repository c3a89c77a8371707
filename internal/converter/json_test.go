package converter

import (
	"testing"

	"portfolioservice/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_JSONCodec_holdings(t *testing.T) {
	codec := NewJSONCodec()

	in := domain.Holdings{
		domain.CategoryLargeCap: {
			{
				Ticker:                "AAPL",
				Name:                  "Apple",
				Quantity:              10,
				AvgPrice:              decimal.RequireFromString("103.33333333"),
				PercentageOfPortfolio: decimal.RequireFromString("33.3333"),
				TotalAmount:           decimal.RequireFromString("1033.33"),
			},
		},
		domain.CategoryGold: {
			{Ticker: "GLD", Quantity: 2, AvgPrice: decimal.NewFromInt(180)},
		},
	}

	serialized, err := codec.Marshal(in)
	require.NoError(t, err)

	out := domain.Holdings{}
	require.NoError(t, codec.Unmarshal(serialized, &out))

	require.Len(t, out, 2)
	require.Len(t, out[domain.CategoryLargeCap], 1)
	aapl := out[domain.CategoryLargeCap][0]
	require.Equal(t, "AAPL", aapl.Ticker)
	require.Equal(t, 10, aapl.Quantity)
	require.True(t, aapl.AvgPrice.Equal(decimal.RequireFromString("103.33333333")))
}

func Test_JSONCodec_emptyInput(t *testing.T) {
	codec := NewJSONCodec()

	out := domain.TargetState{}
	require.NoError(t, codec.Unmarshal("", &out))
	require.Empty(t, out)
}
