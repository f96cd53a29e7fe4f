package api

import (
	"errors"
	"net/http"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/apperr"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/auth"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/httputil"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a session token.
//
//	POST /api/auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		h.writeError(w, apperr.Validation([]apperr.FieldError{
			{Field: "email", Message: "Please provide email and password"},
		}))
		return
	}

	id, err := h.verifier.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.writeError(w, apperr.Auth("Invalid email or password"))
			return
		}
		h.writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	httputil.Success(w, "Login successful", map[string]interface{}{
		"user":  id,
		"token": token,
	})
}

// Me returns the identity behind the presented token.
//
//	GET /api/auth/me
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, apperr.Auth("Access denied. Please log in."))
		return
	}
	httputil.OK(w, map[string]interface{}{"user": id})
}

// Logout acknowledges a logout. Tokens are stateless; clients drop them.
//
//	POST /api/auth/logout
func (h *Handlers) Logout(w http.ResponseWriter, _ *http.Request) {
	httputil.Success(w, "Logout successful", nil)
}
