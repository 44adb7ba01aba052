// internal/app/features/auth/register.go
package auth

import (
	"net/http"
	"strings"

	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
	"github.com/dalemusser/boardhub/internal/app/system/normalize"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	req.Name = normalize.Name(req.Name)
	req.Email = normalize.Email(req.Email)
	if req.Name == "" {
		httpjson.Error(w, h.Log, apperr.Validation("name is required"))
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		httpjson.Error(w, h.Log, apperr.Validation("a valid email is required"))
		return
	}
	if len(req.Password) < 6 {
		httpjson.Error(w, h.Log, apperr.Validation("password must be at least 6 characters"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to hash password", err))
		return
	}

	u, err := h.Users.Create(r.Context(), models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Avatar:   req.Avatar,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.Error(w, h.Log, apperr.Conflict("email already in use"))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal("failed to create user", err))
		return
	}

	token, err := h.Tokens.IssueToken(u.ID, u.Name)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Internal("failed to issue token", err))
		return
	}

	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()))
	httpjson.Respond(w, http.StatusCreated, userResponse{Token: token, User: u.PublicProfile()})
}
