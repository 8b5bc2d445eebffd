package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/order"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
)

var orderCaps = []auth.Capability{auth.CapPOS, auth.CapRestaurant, auth.CapBar}

type CloseParams struct {
	OrderID       uuid.UUID            `validate:"required" label:"order_id"`
	PaymentMethod ledger.PaymentMethod `validate:"required,oneof=cash credit_card debit_card pix bank_transfer check" label:"payment_method"`
}

type Closing struct {
	Order     *order.Order
	Movements []*stock.Movement
	Entry     *ledger.Entry
}

// CloseOrder settles a ready or delivered order: stock leaves for every
// tracked non-cancelled item, the total is booked as income, the order is
// closed and paid and its table is released.
func (s *Service) CloseOrder(ctx context.Context, params CloseParams) (*Closing, error) {
	actor, err := auth.Require(ctx, orderCaps...)
	if err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	closing := &Closing{}

	err = s.run(ctx, OpCloseOrder, func(u *unit) error {
		o, err := u.LockOrder(ctx, params.OrderID)
		if err != nil {
			return err
		}

		if err := order.Transition(o.Status, order.StatusClosed); err != nil {
			return err
		}

		active := o.ActiveItems()

		ids := make([]uuid.UUID, len(active))
		qtys := make(map[uuid.UUID]int64, len(active))

		for i, it := range active {
			ids[i] = it.ProductID
			qtys[it.ProductID] += it.Quantity
		}

		if err := u.lockProducts(ctx, ids); err != nil {
			return err
		}

		if err := u.checkExits(qtys); err != nil {
			return err
		}

		ref := &stock.Reference{ID: o.ID, Type: stock.RefOrder}

		for _, it := range active {
			if !u.products[it.ProductID].Tracked() {
				continue
			}

			m, err := u.move(ctx, it.ProductID, it.Quantity, stock.MovementSale, actor.EmployeeID, ref, "")
			if err != nil {
				return err
			}

			closing.Movements = append(closing.Movements, m)
		}

		o.Total = order.Total(o.Items)

		entry, err := s.income(ctx, u, o, params.PaymentMethod, actor.EmployeeID, "Order #"+order.ShortID(o.ID))
		if err != nil {
			return err
		}

		now := s.now()
		if err := u.CloseOrder(ctx, o.ID, params.PaymentMethod, now); err != nil {
			return err
		}

		if o.TableID != nil {
			if err := u.SetTableStatus(ctx, *o.TableID, order.TableAvailable); err != nil {
				return err
			}
		}

		o.Status = order.StatusClosed
		o.PaymentStatus = order.PaymentPaid
		o.PaymentMethod = string(params.PaymentMethod)
		o.ClosedAt = &now

		closing.Order = o
		closing.Entry = entry

		return nil
	})
	if err != nil {
		return nil, err
	}

	return closing, nil
}

// CancelOrder cancels an order that is not closed yet and frees its table.
// Stock movements and ledger entries already recorded for the order stay.
func (s *Service) CancelOrder(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	if _, err := auth.Require(ctx, orderCaps...); err != nil {
		return nil, err
	}

	var cancelled *order.Order

	err := s.run(ctx, OpCancelOrder, func(u *unit) error {
		o, err := u.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.Transition(o.Status, order.StatusCancelled); err != nil {
			return err
		}

		if err := u.UpdateOrderStatus(ctx, o.ID, order.StatusCancelled); err != nil {
			return err
		}

		if o.TableID != nil {
			if err := u.SetTableStatus(ctx, *o.TableID, order.TableAvailable); err != nil {
				return err
			}
		}

		o.Status = order.StatusCancelled
		cancelled = o

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cancelled, nil
}
