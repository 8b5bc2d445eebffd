package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item sold at the POS or on an order. A nil
// StockQuantity means the product is not stock tracked.
type Product struct {
	ID               uuid.UUID
	Name             string
	Description      string
	Category         string
	Price            int64 // Price in cents
	StockQuantity    *int64
	MinStockQuantity int64
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// Tracked reports whether stock movements apply to the product.
func (p *Product) Tracked() bool {
	return p.StockQuantity != nil
}

type StockStatus string

const (
	StockUntracked StockStatus = "untracked"
	StockOut       StockStatus = "out_of_stock"
	StockLow       StockStatus = "low"
	StockOK        StockStatus = "ok"
)

func (p *Product) StockStatus() StockStatus {
	switch {
	case p.StockQuantity == nil:
		return StockUntracked
	case *p.StockQuantity == 0:
		return StockOut
	case *p.StockQuantity <= p.MinStockQuantity:
		return StockLow
	default:
		return StockOK
	}
}

// Summary holds the catalog counters shown on the stock dashboard.
type Summary struct {
	Total      int
	Active     int
	LowStock   int
	OutOfStock int
}
