// internal/app/features/auth/login.go
package auth

import (
	"net/http"

	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/normalize"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. A wrong email and a wrong password return
// the same message so the endpoint does not confirm which accounts exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	req.Email = normalize.Email(req.Email)
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, h.Log, apperr.Validation("email and password are required"))
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if err == userstore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.Unauthenticated("invalid credentials"))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal("failed to load user", err))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("invalid credentials"))
		return
	}

	token, err := h.Tokens.IssueToken(u.ID, u.Name)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to issue token", err))
		return
	}

	httpjson.Respond(w, http.StatusOK, userResponse{Token: token, User: u.PublicProfile()})
}
