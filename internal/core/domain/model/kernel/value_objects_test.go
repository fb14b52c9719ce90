package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(52.520008, 13.404954)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 52.520008, p.Latitude(), 1e-9)
		assert.InDelta(t, 13.404954, p.Longitude(), 1e-9)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(-90, 180)
		require.NoError(t, err)
	})

	t.Run("reports every out of range coordinate", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, -181)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p kernel.GeoPoint
		require.ErrorIs(t, p.Validate(), kernel.ErrGeoPointIsNotConstructed)
	})
}

func TestMoney(t *testing.T) {
	t.Run("parses and rounds to cents", func(t *testing.T) {
		m, err := kernel.MoneyFromString("19.999")

		require.NoError(t, err)
		assert.Equal(t, "20.00", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects malformed strings", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("arithmetic", func(t *testing.T) {
		price := kernel.MustMoney("12.50")

		assert.Equal(t, "37.50", price.Times(3).String())
		assert.True(t, price.Add(kernel.MustMoney("0.50")).IsEqual(kernel.MustMoney("13")))
		assert.True(t, kernel.ZeroMoney().IsEqual(kernel.MustMoney("0")))
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var m kernel.Money
		require.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
		require.NoError(t, kernel.ZeroMoney().Validate())
	})
}
