package handlers

import (
	"net/http"
	"strings"

	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	appsvcs "github.com/ghuser/usedmarket/services/item/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute returns all listings newest first, optionally filtered.
//
//	@Summary		List listings
//	@Description	Newest first; search matches title or description, case-insensitive
//	@Tags			items
//	@Produce		json
//	@Param			search	query		string	false	"Substring of title or description"
//	@Success		200		{object}	ListItemsResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	items, err := h.svc.Item.ListItems(r.Context(), search)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	resp := ListItemsResponse{Items: make([]ItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = toItemResponse(item)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
