package handlers

import (
	"time"

	"github.com/ghuser/usedmarket/services/item/domain/models"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Category    string `json:"category"    validate:"required,notblank,max=64"   example:"bikes"`
	Title       string `json:"title"       validate:"required,notblank,max=200"  example:"Red Bike"`
	Description string `json:"description" validate:"max=2000"                   example:"Barely used, pickup only"`
	Price       string `json:"price"       validate:"required,notblank,max=32"   example:"120"`
} // @name CreateItemRequest

// ItemResponse is a single listing.
type ItemResponse struct {
	ID          int64     `json:"id"                    example:"42"`
	Category    string    `json:"category"              example:"bikes"`
	Title       string    `json:"title"                 example:"Red Bike"`
	Description string    `json:"description,omitempty" example:"Barely used, pickup only"`
	Price       string    `json:"price"                 example:"120"`
	OwnerID     int64     `json:"owner_id"              example:"7"`
	CreatedAt   time.Time `json:"created_at"            example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ListItemsResponse wraps a newest-first page of listings.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
} // @name ListItemsResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Category:    item.Category,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		OwnerID:     item.OwnerID,
		CreatedAt:   item.CreatedAt,
	}
}
