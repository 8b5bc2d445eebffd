// Package idempotency replays the response of a mutating request when a
// client retries it with the same Idempotency-Key header.
package idempotency

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
)

const (
	Header         = "Idempotency-Key"
	ReplayedHeader = "Idempotent-Replayed"
	maxKeyLength   = 255
)

// ErrInProgress is returned by Store.Lock while another request holds the key.
var ErrInProgress = errors.New("request with this idempotency key is in progress")

// Response is a completed response kept for replay. RequestHash
// fingerprints the body of the request that produced it.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	RequestHash string `json:"request_hash"`
}

//go:generate mockgen -source=idempotency.go -destination=store_mock.go -package=idempotency
type Store interface {
	// Lock claims key until release is called. It returns ErrInProgress if
	// the key is already claimed.
	Lock(ctx context.Context, key string) (release func(context.Context) error, err error)
	Get(ctx context.Context, key string) (*Response, bool, error)
	Save(ctx context.Context, key string, resp *Response) error
}

// Middleware serializes requests sharing a key and replays the first 2xx
// response. Keys are scoped to the employee and the route, so two cashiers
// cannot collide. Reusing a key with a different body is rejected. Requests
// without the header pass through untouched.
func Middleware(store Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(Header))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if len(key) > maxKeyLength {
				respond.Error(w, r, apperr.Invalid("idempotency key is too long"))
				return
			}

			hash, err := fingerprint(r)
			if err != nil {
				respond.BadRequest(w, err.Error())
				return
			}

			scoped := scope(r, key)
			ctx := r.Context()

			release, err := store.Lock(ctx, scoped)
			if err != nil {
				if errors.Is(err, ErrInProgress) {
					respond.Error(w, r, apperr.Conflict("%s", ErrInProgress.Error()))
					return
				}

				respond.Error(w, r, err)

				return
			}

			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					logger.WarnContext(ctx, "releasing idempotency lock", "key", scoped, "error", err)
				}
			}()

			cached, ok, err := store.Get(ctx, scoped)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			if ok {
				if cached.RequestHash != "" && cached.RequestHash != hash {
					respond.Error(w, r, apperr.Invalid("idempotency key was already used with a different request body"))
					return
				}

				replay(w, cached)

				return
			}

			var body bytes.Buffer

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status < 200 || status >= 300 {
				return
			}

			resp := &Response{
				Status:      status,
				ContentType: ww.Header().Get("Content-Type"),
				Body:        body.Bytes(),
				RequestHash: hash,
			}

			if err := store.Save(context.WithoutCancel(ctx), scoped, resp); err != nil {
				logger.ErrorContext(ctx, "saving idempotent response", "key", scoped, "error", err)
			}
		})
	}
}

// fingerprint hashes the request body and leaves it readable for the
// handler.
func fingerprint(r *http.Request) (string, error) {
	if r.Body == nil {
		return strconv.FormatUint(xxhash.Sum64(nil), 16), nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("reading request body: %w", err)
	}

	r.Body = io.NopCloser(bytes.NewReader(raw))

	return strconv.FormatUint(xxhash.Sum64(raw), 16), nil
}

func scope(r *http.Request, key string) string {
	employee := "anonymous"
	if a, ok := auth.FromContext(r.Context()); ok {
		employee = a.EmployeeID.String()
	}

	return strings.Join([]string{employee, r.Method, r.URL.Path, key}, ":")
}

func replay(w http.ResponseWriter, resp *Response) {
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}

	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(resp.Status)

	_, _ = w.Write(resp.Body)
}
