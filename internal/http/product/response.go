package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/product"
)

type productResponse struct {
	ID               uuid.UUID           `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description,omitempty"`
	Category         string              `json:"category"`
	Price            int64               `json:"price"`
	StockQuantity    *int64              `json:"stock_quantity"`
	MinStockQuantity int64               `json:"min_stock_quantity"`
	StockStatus      product.StockStatus `json:"stock_status"`
	Active           bool                `json:"active"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        *time.Time          `json:"updated_at,omitempty"`
}

type summaryResponse struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

func toResponse(p *product.Product) productResponse {
	return productResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Category:         p.Category,
		Price:            p.Price,
		StockQuantity:    p.StockQuantity,
		MinStockQuantity: p.MinStockQuantity,
		StockStatus:      p.StockStatus(),
		Active:           p.Active,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toResponseList(products []*product.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}
