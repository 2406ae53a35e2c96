package handlers

import (
	"net/http"

	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	appsvcs "github.com/ghuser/usedmarket/services/chat/application/services"
)

// GetThreadHandler handles GET /items/{id}/chat requests.
type GetThreadHandler struct {
	svc *appsvcs.Services
}

func NewGetThreadHandler(svc *appsvcs.Services) *GetThreadHandler {
	return &GetThreadHandler{svc: svc}
}

// Execute opens the listing's chat room (creating it on first access) and
// returns its history.
//
//	@Summary	Get chat thread
//	@Tags		chat
//	@Produce	json
//	@Param		id	path		int	true	"Item ID"
//	@Success	200	{object}	ThreadResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id}/chat [get]
func (h *GetThreadHandler) Execute(w http.ResponseWriter, r *http.Request) {
	itemID, err := httpx.Int64Param(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	room, err := h.svc.Chat.GetOrCreateRoom(r.Context(), itemID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	msgs, err := h.svc.Chat.ListMessages(r.Context(), room.ID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	resp := ThreadResponse{RoomID: room.ID, ItemID: room.ItemID, Messages: make([]MessageResponse, len(msgs))}
	for i, m := range msgs {
		resp.Messages[i] = toMessageResponse(m)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
