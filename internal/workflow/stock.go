package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
)

type MovementParams struct {
	ProductID uuid.UUID          `validate:"required" label:"product_id"`
	Quantity  int64              `validate:"gt=0"`
	Type      stock.MovementType `validate:"required,oneof=purchase sale adjustment loss transfer" label:"movement_type"`
	Notes     string
}

// RecordStockMovement is the manual stock entry path. It has no financial
// side effect. The first movement on an untracked product starts tracking
// it from zero.
func (s *Service) RecordStockMovement(ctx context.Context, params MovementParams) (*stock.Movement, error) {
	actor, err := auth.Require(ctx, auth.CapStock)
	if err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	var movement *stock.Movement

	err = s.run(ctx, OpRecordStockMovement, func(u *unit) error {
		m, err := u.move(ctx, params.ProductID, params.Quantity, params.Type, actor.EmployeeID, nil, params.Notes)
		if err != nil {
			return err
		}

		movement = m

		return nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}
