package order_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/order"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from    order.Status
		to      order.Status
		wantErr error
	}{
		{order.StatusOpen, order.StatusInProgress, nil},
		{order.StatusOpen, order.StatusReady, nil},
		{order.StatusInProgress, order.StatusDelivered, nil},
		{order.StatusReady, order.StatusInProgress, apperr.ErrStateTransition},
		{order.StatusOpen, order.StatusOpen, apperr.ErrStateTransition},
		{order.StatusReady, order.StatusClosed, nil},
		{order.StatusDelivered, order.StatusClosed, nil},
		{order.StatusOpen, order.StatusClosed, apperr.ErrStateTransition},
		{order.StatusInProgress, order.StatusClosed, apperr.ErrStateTransition},
		{order.StatusOpen, order.StatusCancelled, nil},
		{order.StatusDelivered, order.StatusCancelled, nil},
		{order.StatusClosed, order.StatusCancelled, apperr.ErrStateTransition},
		{order.StatusCancelled, order.StatusCancelled, apperr.ErrStateTransition},
		{order.StatusCancelled, order.StatusOpen, apperr.ErrStateTransition},
		{order.StatusOpen, "paid", apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			err := order.Transition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestItemTransition(t *testing.T) {
	tests := []struct {
		from    order.ItemStatus
		to      order.ItemStatus
		wantErr error
	}{
		{order.ItemPending, order.ItemPreparing, nil},
		{order.ItemPending, order.ItemDelivered, nil},
		{order.ItemReady, order.ItemCancelled, nil},
		{order.ItemReady, order.ItemPending, apperr.ErrStateTransition},
		{order.ItemDelivered, order.ItemCancelled, apperr.ErrStateTransition},
		{order.ItemCancelled, order.ItemPending, apperr.ErrStateTransition},
		{order.ItemPending, "eaten", apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			err := order.ItemTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTotal(t *testing.T) {
	items := []*order.Item{
		{TotalPrice: 1500, Status: order.ItemDelivered},
		{TotalPrice: 800, Status: order.ItemCancelled},
		{TotalPrice: 250, Status: order.ItemPending},
	}

	assert.Equal(t, int64(1750), order.Total(items))
	assert.Zero(t, order.Total(nil))
}

func TestOrder_Editable(t *testing.T) {
	for _, s := range []order.Status{order.StatusClosed, order.StatusCancelled} {
		o := &order.Order{Status: s}

		err := o.Editable()
		assert.ErrorIs(t, err, apperr.ErrStateTransition)
		assert.Equal(t, "order is "+string(s)+": items can no longer change", err.Error())
	}

	assert.NoError(t, (&order.Order{Status: order.StatusReady}).Editable())
}

func TestOrder_Item(t *testing.T) {
	id := uuid.New()
	o := &order.Order{Items: []*order.Item{{ID: id}}}

	it, err := o.Item(id)
	assert.NoError(t, err)
	assert.Equal(t, id, it.ID)

	_, err = o.Item(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
