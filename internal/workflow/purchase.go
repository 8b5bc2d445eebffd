package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
)

type ReceiveLine struct {
	ItemID   uuid.UUID `validate:"required" label:"item_id"`
	Quantity int64     `validate:"gt=0"`
}

// ReceiveParams receives the given lines, or everything still outstanding
// when Lines is empty.
type ReceiveParams struct {
	PurchaseID uuid.UUID     `validate:"required" label:"purchase_id"`
	Lines      []ReceiveLine `validate:"dive"`
}

type Receipt struct {
	Purchase  *purchase.Purchase
	Movements []*stock.Movement
}

// ReceivePurchase adds delivered quantities to stock as purchase movements
// and moves the purchase to partial or delivered.
func (s *Service) ReceivePurchase(ctx context.Context, params ReceiveParams) (*Receipt, error) {
	actor, err := auth.Require(ctx, auth.CapPurchases)
	if err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	receipt := &Receipt{}

	err = s.run(ctx, OpReceivePurchase, func(u *unit) error {
		p, err := u.LockPurchase(ctx, params.PurchaseID)
		if err != nil {
			return err
		}

		if err := p.CheckReceive(); err != nil {
			return err
		}

		lines, err := receiptLines(p, params.Lines)
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.item.ProductID)
		}

		if err := u.lockProducts(ctx, ids); err != nil {
			return err
		}

		ref := &stock.Reference{ID: p.ID, Type: stock.RefPurchase}

		for _, l := range lines {
			if err := u.ReceivePurchaseItem(ctx, l.item.ID, l.qty); err != nil {
				return err
			}

			m, err := u.move(ctx, l.item.ProductID, l.qty, stock.MovementPurchase, actor.EmployeeID, ref, "")
			if err != nil {
				return err
			}

			l.item.ReceivedQuantity += l.qty
			receipt.Movements = append(receipt.Movements, m)
		}

		status := purchase.ReceiptStatus(p.Items)
		if status != p.Status {
			if err := u.UpdatePurchaseStatus(ctx, p.ID, status); err != nil {
				return err
			}

			p.Status = status
		}

		receipt.Purchase = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

type receiptLine struct {
	item *purchase.Item
	qty  int64
}

func receiptLines(p *purchase.Purchase, requested []ReceiveLine) ([]receiptLine, error) {
	var lines []receiptLine

	if len(requested) == 0 {
		for _, it := range p.Items {
			if it.Outstanding() > 0 {
				lines = append(lines, receiptLine{item: it, qty: it.Outstanding()})
			}
		}

		return lines, nil
	}

	pending := make(map[uuid.UUID]int64, len(p.Items))

	for _, rl := range requested {
		it, err := p.Item(rl.ItemID)
		if err != nil {
			return nil, err
		}

		pending[it.ID] += rl.Quantity
		if pending[it.ID] > it.Outstanding() {
			return nil, apperr.Invalid(fmt.Sprintf(
				"cannot receive %d of %s: only %d outstanding", pending[it.ID], it.ProductName, it.Outstanding(),
			))
		}

		lines = append(lines, receiptLine{item: it, qty: rl.Quantity})
	}

	return lines, nil
}

// CancelPurchase cancels a purchase that was not delivered yet. Stock
// already received stays.
func (s *Service) CancelPurchase(ctx context.Context, purchaseID uuid.UUID) (*purchase.Purchase, error) {
	if _, err := auth.Require(ctx, auth.CapPurchases); err != nil {
		return nil, err
	}

	var cancelled *purchase.Purchase

	err := s.run(ctx, OpCancelPurchase, func(u *unit) error {
		p, err := u.LockPurchase(ctx, purchaseID)
		if err != nil {
			return err
		}

		if err := p.CheckCancel(); err != nil {
			return err
		}

		if err := u.UpdatePurchaseStatus(ctx, p.ID, purchase.StatusCancelled); err != nil {
			return err
		}

		if err := u.UpdatePurchasePayment(ctx, p.ID, purchase.PaymentCancelled); err != nil {
			return err
		}

		p.Status = purchase.StatusCancelled
		p.PaymentStatus = purchase.PaymentCancelled
		cancelled = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cancelled, nil
}

type PayParams struct {
	PurchaseID    uuid.UUID            `validate:"required" label:"purchase_id"`
	PaymentMethod ledger.PaymentMethod `validate:"required,oneof=cash credit_card debit_card pix bank_transfer check" label:"payment_method"`
}

type Payment struct {
	Purchase *purchase.Purchase
	Entry    *ledger.Entry
}

// PayPurchase marks a purchase paid and books the expense.
func (s *Service) PayPurchase(ctx context.Context, params PayParams) (*Payment, error) {
	actor, err := auth.Require(ctx, auth.CapPurchases)
	if err != nil {
		return nil, err
	}

	if _, err := auth.Require(ctx, auth.CapFinancial); err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	payment := &Payment{}

	err = s.run(ctx, OpPayPurchase, func(u *unit) error {
		p, err := u.LockPurchase(ctx, params.PurchaseID)
		if err != nil {
			return err
		}

		if err := p.CheckPay(); err != nil {
			return err
		}

		if err := u.UpdatePurchasePayment(ctx, p.ID, purchase.PaymentPaid); err != nil {
			return err
		}

		p.PaymentStatus = purchase.PaymentPaid
		payment.Purchase = p

		if p.Total == 0 {
			return nil
		}

		entry, err := ledger.NewEntry(ledger.EntryParams{
			Date:          s.now(),
			Amount:        p.Total,
			Type:          ledger.TypeExpense,
			Category:      ledger.CategoryPurchase,
			Description:   fmt.Sprintf("Purchase #%s from %s", p.ID.String()[:8], p.SupplierName),
			PaymentMethod: params.PaymentMethod,
			Reference:     &ledger.Reference{ID: p.ID, Type: ledger.RefPurchase},
			EmployeeID:    actor.EmployeeID,
		})
		if err != nil {
			return fmt.Errorf("building expense entry: %w", err)
		}

		if err := u.AppendEntry(ctx, entry); err != nil {
			return err
		}

		payment.Entry = entry

		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}
