// internal/app/features/auth/me.go
package auth

import (
	"net/http"

	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	"github.com/dalemusser/boardhub/internal/app/system/apperr"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/app/system/httpjson"
)

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := sysauth.CurrentActor(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthenticated("not authorized, no token"))
		return
	}

	u, err := h.Users.GetByID(r.Context(), actor.ID)
	if err != nil {
		if err == userstore.ErrNotFound {
			// Token outlived the account.
			httpjson.Error(w, h.Log, apperr.NotFound("user not found"))
			return
		}
		httpjson.Error(w, h.Log, apperr.Internal("failed to load user", err))
		return
	}

	httpjson.Respond(w, http.StatusOK, u.PublicProfile())
}
