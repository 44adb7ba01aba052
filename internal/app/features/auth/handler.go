// internal/app/features/auth/handler.go
package auth

import (
	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves registration, login, and the current-user endpoint.
type Handler struct {
	Users  *userstore.Store
	Tokens *sysauth.Manager
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, tokens *sysauth.Manager, log *zap.Logger) *Handler {
	return &Handler{Users: users, Tokens: tokens, Log: log}
}

// userResponse is the profile-plus-token shape returned by register and
// login.
type userResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}
