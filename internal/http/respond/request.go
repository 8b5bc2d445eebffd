package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/period"
)

// Decode reads a JSON body into v, rejecting unknown fields.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

// PathID parses the named URL parameter as a uuid.
func PathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}

	return id, nil
}

// Range reads start_date and end_date (YYYY-MM-DD). When both are absent
// the zero range is returned and services apply their own default.
func Range(r *http.Request) (period.Range, error) {
	start, end := r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date")
	if start == "" && end == "" {
		return period.Range{}, nil
	}

	return period.Parse(start, end, time.Now())
}

// OptionalID parses a query parameter as a uuid if present.
func OptionalID(r *http.Request, name string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}

	return &id, nil
}
