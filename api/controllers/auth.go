package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/session"
	"github.com/angelmondragon/storefront/internal/users"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/notify"
)

// SessionService drives the login state.
type SessionService interface {
	Login(ctx context.Context, creds *users.Credentials) (bool, notify.Notice)
	Logout(ctx context.Context)
	Session() session.State
}

type loginPayload struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=128"`
}

type sessionUser struct {
	ID       int            `json:"id"`
	Email    string         `json:"email"`
	Username string         `json:"username"`
	Name     *users.Name    `json:"name,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Address  *users.Address `json:"address,omitempty"`
}

type sessionResponse struct {
	IsLoggedIn  bool         `json:"isLoggedIn"`
	CurrentUser *sessionUser `json:"currentUser"`
}

func toSessionResponse(state session.State) sessionResponse {
	resp := sessionResponse{IsLoggedIn: state.LoggedIn}
	if state.User != nil {
		resp.CurrentUser = &sessionUser{
			ID:       state.User.ID,
			Email:    state.User.Email,
			Username: state.User.Username,
			Name:     state.User.Name,
			Phone:    state.User.Phone,
			Address:  state.User.Address,
		}
	}
	return resp
}

// AuthLogin checks credentials against the loaded user directory.
func AuthLogin(svc SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ok, notice := svc.Login(ctx, &users.Credentials{Email: payload.Email, Password: payload.Password})
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, notice.Text).WithDetails(notice))
			return
		}
		responses.WriteNotice(w, http.StatusOK, toSessionResponse(svc.Session()), notice)
	}
}

// AuthLogout ends the session. It succeeds whether or not anyone is logged in.
func AuthLogout(svc SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}
		svc.Logout(ctx)
		responses.WriteSuccess(w, toSessionResponse(svc.Session()))
	}
}

// AuthSession returns the in-memory session view.
func AuthSession(svc SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}
		responses.WriteSuccess(w, toSessionResponse(svc.Session()))
	}
}
