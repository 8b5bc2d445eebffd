package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/order"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
)

// CartItem is one POS line. UnitPrice is the price shown in the cart and is
// what gets charged, even if the catalog price changed since.
type CartItem struct {
	ProductID uuid.UUID `validate:"required" label:"product_id"`
	Quantity  int64     `validate:"gt=0"`
	UnitPrice int64     `validate:"gte=0" label:"unit_price"`
}

type SaleParams struct {
	Items         []CartItem           `validate:"min=1,dive" label:"cart"`
	PaymentMethod ledger.PaymentMethod `validate:"required,oneof=cash credit_card debit_card pix bank_transfer check" label:"payment_method"`
	CustomerID    *uuid.UUID
	Notes         string
}

// Sale is everything a finalized POS sale wrote.
type Sale struct {
	Order     *order.Order
	Movements []*stock.Movement
	Entry     *ledger.Entry
}

// FinalizeSale records a POS sale in one step: a closed and paid order with
// its items, a sale movement per stock-tracked line and one income entry for
// the total. If any line lacks stock nothing is written.
func (s *Service) FinalizeSale(ctx context.Context, params SaleParams) (*Sale, error) {
	actor, err := auth.Require(ctx, auth.CapPOS)
	if err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	now := s.now()
	sale := &Sale{}

	err = s.run(ctx, OpFinalizeSale, func(u *unit) error {
		ids := make([]uuid.UUID, len(params.Items))
		qtys := make(map[uuid.UUID]int64, len(params.Items))

		for i, ci := range params.Items {
			ids[i] = ci.ProductID
			qtys[ci.ProductID] += ci.Quantity
		}

		if err := u.lockProducts(ctx, ids); err != nil {
			return err
		}

		if err := u.checkExits(qtys); err != nil {
			return err
		}

		items := make([]*order.Item, len(params.Items))
		for i, ci := range params.Items {
			if p := u.products[ci.ProductID]; !p.Active {
				return apperr.Invalid(fmt.Sprintf("product %s is inactive", p.Name))
			}

			items[i] = &order.Item{
				ProductID:   ci.ProductID,
				ProductName: u.products[ci.ProductID].Name,
				Quantity:    ci.Quantity,
				UnitPrice:   ci.UnitPrice,
				TotalPrice:  ci.UnitPrice * ci.Quantity,
				Status:      order.ItemDelivered,
			}
		}

		o := &order.Order{
			CustomerID:    params.CustomerID,
			EmployeeID:    actor.EmployeeID,
			Type:          order.TypeTakeaway,
			Status:        order.StatusClosed,
			Total:         order.Total(items),
			PaymentMethod: string(params.PaymentMethod),
			PaymentStatus: order.PaymentPaid,
			Notes:         params.Notes,
			ClosedAt:      &now,
		}

		if err := u.CreateOrder(ctx, o); err != nil {
			return err
		}

		ref := &stock.Reference{ID: o.ID, Type: stock.RefOrder}

		for _, it := range items {
			it.OrderID = o.ID

			if err := u.CreateOrderItem(ctx, it); err != nil {
				return err
			}

			if !u.products[it.ProductID].Tracked() {
				continue
			}

			m, err := u.move(ctx, it.ProductID, it.Quantity, stock.MovementSale, actor.EmployeeID, ref, "")
			if err != nil {
				return err
			}

			sale.Movements = append(sale.Movements, m)
		}

		o.Items = items
		sale.Order = o

		entry, err := s.income(ctx, u, o, params.PaymentMethod, actor.EmployeeID, "POS sale #"+order.ShortID(o.ID))
		if err != nil {
			return err
		}

		sale.Entry = entry

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// income appends the income entry for a settled order. Orders totalling
// zero have nothing to book.
func (s *Service) income(ctx context.Context, u *unit, o *order.Order, method ledger.PaymentMethod, employeeID uuid.UUID, description string) (*ledger.Entry, error) {
	if o.Total == 0 {
		return nil, nil
	}

	entry, err := ledger.NewEntry(ledger.EntryParams{
		Date:          s.now(),
		Amount:        o.Total,
		Type:          ledger.TypeIncome,
		Category:      ledger.CategorySale,
		Description:   description,
		PaymentMethod: method,
		Reference:     &ledger.Reference{ID: o.ID, Type: ledger.RefOrder},
		EmployeeID:    employeeID,
	})
	if err != nil {
		return nil, fmt.Errorf("building income entry: %w", err)
	}

	if err := u.AppendEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}
