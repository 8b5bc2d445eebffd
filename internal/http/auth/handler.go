package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

// ProtectedRoutes need an actor in the context.
func (h *Handler) ProtectedRoutes(r chi.Router) {
	r.Get("/me", h.me)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type actorResponse struct {
	EmployeeID  uuid.UUID         `json:"employee_id"`
	Name        string            `json:"name"`
	Role        auth.Role         `json:"role"`
	Permissions []auth.Capability `json:"permissions"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Employee  actorResponse `json:"employee"`
}

func toActorResponse(a auth.Actor) actorResponse {
	return actorResponse{EmployeeID: a.EmployeeID, Name: a.Name, Role: a.Role, Permissions: a.Permissions}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	session, err := h.svc.Login(r.Context(), auth.LoginParams{Login: req.Login, Password: req.Password})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Employee:  toActorResponse(session.Actor),
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	a, err := auth.Require(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toActorResponse(a))
}

var errNoBearer = errors.New("missing bearer token")

// Middleware resolves the bearer token into the request actor and rejects
// the request when there is none.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			respond.Error(w, r, errors.Join(apperr.ErrUnauthenticated, errNoBearer))
			return
		}

		actor, err := h.svc.Authenticate(strings.TrimSpace(token))
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
	})
}
