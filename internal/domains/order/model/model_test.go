package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bistro/internal/domains/order/model"
	"bistro/shared/failure"
)

func TestPending_Add(t *testing.T) {
	soup := model.PendingLine{DishID: "d-1", Name: "Borscht", Price: 450, Quantity: 2}

	t.Run("merges quantities of the same dish", func(t *testing.T) {
		var pending model.Pending

		assert.NoError(t, pending.Add(soup, 5))
		assert.NoError(t, pending.Add(soup, 5))

		assert.Len(t, pending.Lines, 1)
		assert.Equal(t, 4, pending.Lines[0].Quantity)
		assert.Equal(t, int64(1800), pending.Total)
	})

	t.Run("cumulative quantity over stock leaves order unchanged", func(t *testing.T) {
		var pending model.Pending

		assert.NoError(t, pending.Add(soup, 3))

		err := pending.Add(soup, 3)

		assert.True(t, failure.Is(err, failure.KindInsufficientStock))
		assert.Equal(t, 2, pending.Lines[0].Quantity)
		assert.Equal(t, int64(900), pending.Total)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		var pending model.Pending

		err := pending.Add(model.PendingLine{DishID: "d-1", Price: 450, Quantity: 0}, 10)

		assert.True(t, failure.Is(err, failure.KindInvalidInput))
		assert.True(t, pending.Empty())
	})
}

func TestPending_Remove(t *testing.T) {
	var pending model.Pending

	assert.NoError(t, pending.Add(model.PendingLine{DishID: "d-1", Price: 450, Quantity: 1}, 5))
	assert.NoError(t, pending.Add(model.PendingLine{DishID: "d-2", Price: 120, Quantity: 3}, 5))

	assert.True(t, pending.Remove("d-1"))
	assert.False(t, pending.Remove("d-1"))
	assert.Equal(t, int64(360), pending.Total)
	assert.Len(t, pending.Lines, 1)
}

func TestLifecycle(t *testing.T) {
	tests := []struct {
		name     string
		check    func() error
		wantKind failure.Kind
	}{
		{name: "pay active", check: func() error { return model.Pay(model.StatusActive) }},
		{name: "pay paid", check: func() error { return model.Pay(model.StatusPaid) }, wantKind: failure.KindInvalidState},
		{name: "pay closed", check: func() error { return model.Pay(model.StatusClosed) }, wantKind: failure.KindInvalidState},
		{name: "close paid", check: func() error { return model.Close(model.StatusPaid, false) }},
		{name: "close active confirmed", check: func() error { return model.Close(model.StatusActive, true) }},
		{name: "close active unconfirmed", check: func() error { return model.Close(model.StatusActive, false) }, wantKind: failure.KindInvalidInput},
		{name: "close closed", check: func() error { return model.Close(model.StatusClosed, true) }, wantKind: failure.KindInvalidState},
		{name: "extend active", check: func() error { return model.Extend(model.StatusActive) }},
		{name: "extend paid", check: func() error { return model.Extend(model.StatusPaid) }, wantKind: failure.KindInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()

			if tt.wantKind == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantKind, failure.GetKind(err))
		})
	}
}

func TestNewReceipt(t *testing.T) {
	order := model.Order{ID: "o-1", TableNumber: 7, WaiterName: "Anna K", Status: model.StatusPaid}
	items := []model.Item{
		{DishID: "d-1", DishName: "Borscht", Price: 450, Quantity: 1},
		{DishID: "d-2", DishName: "Tea", Price: 120, Quantity: 2},
		{DishID: "d-1", DishName: "Borscht", Price: 450, Quantity: 2},
		{DishID: "d-1", DishName: "Borscht", Price: 500, Quantity: 1},
	}

	receipt := model.NewReceipt(order, items, time.Now())

	assert.Len(t, receipt.Lines, 3)
	assert.Equal(t, 3, receipt.Lines[0].Quantity)
	assert.Equal(t, int64(1350), receipt.Lines[0].Amount)
	assert.Equal(t, int64(500), receipt.Lines[2].Price)
	assert.Equal(t, int64(1350+240+500), receipt.Total)
	assert.Equal(t, 7, receipt.TableNumber)
}
