package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/usedmarket/pkg/auth"
	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	pkgvalidator "github.com/ghuser/usedmarket/pkg/validator"
	appsvcs "github.com/ghuser/usedmarket/services/user/application/services"
)

// LoginHandler handles POST /auth/login requests.
type LoginHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
}

// NewLoginHandler returns a LoginHandler that records logins in store.
func NewLoginHandler(svc *appsvcs.Services, store sessions.Store) *LoginHandler {
	return &LoginHandler{svc: svc, store: store}
}

// Execute checks credentials and starts a session.
//
//	@Summary		Log in
//	@Description	Starts a session cookie for the account matching email and password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CredentialsRequest	true	"Credentials"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (h *LoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CredentialsRequest](w, r)
	if !ok {
		return
	}

	u, err := h.svc.Auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	if err := auth.StartSession(h.store, w, r, u.ID); err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, UserResponse{ID: u.ID, Email: u.Email})
}
