package handlers

import (
	"net/http"

	"github.com/ghuser/usedmarket/pkg/auth"
	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	pkgvalidator "github.com/ghuser/usedmarket/pkg/validator"
	appsvcs "github.com/ghuser/usedmarket/services/chat/application/services"
)

// PostMessageHandler handles POST /items/{id}/chat requests.
type PostMessageHandler struct {
	svc *appsvcs.Services
}

func NewPostMessageHandler(svc *appsvcs.Services) *PostMessageHandler {
	return &PostMessageHandler{svc: svc}
}

// Execute sends a message as the logged-in user to the listing's room.
//
//	@Summary	Send chat message
//	@Tags		chat
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Item ID"
//	@Param		request	body		SendMessageRequest	true	"Message"
//	@Success	201		{object}	MessageResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items/{id}/chat [post]
func (h *PostMessageHandler) Execute(w http.ResponseWriter, r *http.Request) {
	senderID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	itemID, err := httpx.Int64Param(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[SendMessageRequest](w, r)
	if !ok {
		return
	}

	room, err := h.svc.Chat.GetOrCreateRoom(r.Context(), itemID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	msg, err := h.svc.Chat.SendMessage(r.Context(), room.ID, senderID, req.Message)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toMessageResponse(msg))
}
