package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/swdadsa/Shoppping-system-frontend/internal/api"
	"github.com/swdadsa/Shoppping-system-frontend/internal/cart"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
	"github.com/swdadsa/Shoppping-system-frontend/internal/session"
)

type AccountAPI interface {
	SignIn(ctx context.Context, req api.SignInRequest) (api.SignInResult, error)
	SignUp(ctx context.Context, req api.SignUpRequest) error
	Profile(ctx context.Context, token string, userID int64) (api.Profile, error)
}

type AccountHandler struct {
	accounts AccountAPI
	sessions session.Store
	carts    *cart.Registry
	timeout  time.Duration
}

func NewAccountHandler(accounts AccountAPI, sessions session.Store, carts *cart.Registry, timeout time.Duration) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		sessions: sessions,
		carts:    carts,
		timeout:  timeout,
	}
}

type signInRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponseDTO struct {
	UserID    int64  `json:"user_id"`
	SessionID string `json:"session_id"`
}

// POST /api/session
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req signInRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "email and password are required")
		return
	}

	res, err := h.accounts.SignIn(ctx, api.SignInRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, api.ErrBackend) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "sign-in was rejected")
			return
		}
		respondDomainError(w, err)
		return
	}

	sid := uuid.NewString()
	sess := domain.Session{Token: res.Token, UserID: res.ID}
	if err := h.sessions.Put(ctx, sid, sess); err != nil {
		respondDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusCreated, signInResponseDTO{UserID: res.ID, SessionID: sid})
}

type signUpRequestDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/account
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req signUpRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "username, email and password are required")
		return
	}

	if err := h.accounts.SignUp(ctx, api.SignUpRequest(req)); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// DELETE /api/session
func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := sessionFromContext(r.Context())
	if sid := sessionIDFromContext(r.Context()); sid != "" {
		if err := h.sessions.Delete(ctx, sid); err != nil {
			respondDomainError(w, err)
			return
		}
	}
	if !sess.Anonymous() {
		h.carts.Drop(sess.UserID)
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/account/profile
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := sessionFromContext(r.Context())
	if sess.Anonymous() {
		respondDomainError(w, session.ErrNoSession)
		return
	}

	profile, err := h.accounts.Profile(ctx, sess.Token, sess.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
