package handlers

import (
	"net/http"

	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	pkgvalidator "github.com/ghuser/usedmarket/pkg/validator"
	appsvcs "github.com/ghuser/usedmarket/services/user/application/services"
	"github.com/ghuser/usedmarket/services/user/domain/models"
)

// SignupHandler handles POST /auth/signup requests.
type SignupHandler struct {
	svc *appsvcs.Services
}

// NewSignupHandler returns a SignupHandler backed by the given services.
func NewSignupHandler(svc *appsvcs.Services) *SignupHandler {
	return &SignupHandler{svc: svc}
}

// Execute registers a new account. It does not log the user in.
//
//	@Summary		Sign up
//	@Description	Registers a new account; the email must not be taken (case-insensitive)
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CredentialsRequest	true	"New account"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/auth/signup [post]
func (h *SignupHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CredentialsRequest](w, r)
	if !ok {
		return
	}

	id, err := h.svc.Auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, UserResponse{ID: id, Email: models.NormalizeEmail(req.Email)})
}
