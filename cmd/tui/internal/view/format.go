package view

import (
	"context"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/money"
)

const dbTimeout = 5 * time.Second

// FormatAmount formats an amount stored as cents as Brazilian currency.
func FormatAmount(cents int64) string {
	return money.FormatBRL(cents)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatQuantity renders a stock level, which is nil for untracked products.
func FormatQuantity(q *int64) string {
	if q == nil {
		return "-"
	}

	return strconv.FormatInt(*q, 10)
}

// DbCtx returns a context carrying the logged in employee with a standard
// timeout for database operations.
func DbCtx(actor auth.Actor) (context.Context, context.CancelFunc) {
	return context.WithTimeout(auth.WithActor(context.Background(), actor), dbTimeout)
}
