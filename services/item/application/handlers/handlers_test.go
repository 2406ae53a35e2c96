package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/usedmarket/pkg/auth"
	"github.com/ghuser/usedmarket/pkg/logger"
	appsvcs "github.com/ghuser/usedmarket/services/item/application/services"
	itemdomain "github.com/ghuser/usedmarket/services/item/domain"
	"github.com/ghuser/usedmarket/services/item/domain/models"
)

type memItems struct {
	items      []*models.Item
	lastSearch string
}

func (m *memItems) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	saved := *item
	saved.ID = int64(len(m.items) + 1)
	saved.CreatedAt = time.Now().UTC()
	m.items = append(m.items, &saved)
	return &saved, nil
}

func (m *memItems) FindAll(_ context.Context, search string) ([]*models.Item, error) {
	m.lastSearch = search
	var out []*models.Item
	for i := len(m.items) - 1; i >= 0; i-- {
		it := m.items[i]
		if search == "" || strings.Contains(strings.ToLower(it.Title), strings.ToLower(search)) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memItems) FindByID(_ context.Context, id int64) (*models.Item, error) {
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, itemdomain.ErrItemNotFound
}

// asUser stands in for RequireAuth.
func asUser(id int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), id)))
		})
	}
}

func newTestRouter(repo *memItems) chi.Router {
	svcs := &appsvcs.Services{Item: appsvcs.NewItemService(repo, nil, logger.Nop())}
	r := chi.NewRouter()
	r.Get("/items", NewListItemsHandler(svcs).Execute)
	r.Get("/items/{id}", NewGetItemHandler(svcs).Execute)
	r.With(asUser(7)).Post("/items", NewPostItemHandler(svcs).Execute)
	r.Post("/anonymous/items", NewPostItemHandler(svcs).Execute)
	return r
}

func TestPostItem(t *testing.T) {
	repo := &memItems{}
	h := newTestRouter(repo)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"created", "/items", `{"category":"bikes","title":"Red Bike","price":"120"}`, http.StatusCreated},
		{"missing price", "/items", `{"category":"bikes","title":"Red Bike"}`, http.StatusUnprocessableEntity},
		{"blank title", "/items", `{"category":"bikes","title":"   ","price":"1"}`, http.StatusUnprocessableEntity},
		{"control char", "/items", `{"category":"bikes","title":"Red\u0007Bike","price":"1"}`, http.StatusUnprocessableEntity},
		{"no session", "/anonymous/items", `{"category":"bikes","title":"Red Bike","price":"120"}`, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body)
			}
		})
	}

	if len(repo.items) != 1 || repo.items[0].OwnerID != 7 {
		t.Fatalf("expected one listing owned by 7, got %+v", repo.items)
	}
}

func TestListItems_TrimsSearch(t *testing.T) {
	repo := &memItems{}
	h := newTestRouter(repo)
	for _, title := range []string{"Red Bike", "Chair"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items",
			strings.NewReader(`{"category":"misc","title":"`+title+`","price":"1"}`)))
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items?search=+bike+", http.NoBody))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if repo.lastSearch != "bike" {
		t.Fatalf("expected trimmed search term, got %q", repo.lastSearch)
	}

	var resp ListItemsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Title != "Red Bike" {
		t.Fatalf("unexpected items %+v", resp.Items)
	}
}

func TestListItems_EmptyIsArray(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(&memItems{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", http.NoBody))
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty JSON array, got %s", w.Body)
	}
}

func TestGetItem(t *testing.T) {
	repo := &memItems{}
	saved, _ := repo.Create(context.Background(), &models.Item{Category: "bikes", Title: "Red Bike", Price: "120", OwnerID: 7})
	h := newTestRouter(repo)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"found", "/items/1", http.StatusOK},
		{"missing", "/items/999", http.StatusNotFound},
		{"not a number", "/items/abc", http.StatusBadRequest},
		{"zero", "/items/0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK {
				var got ItemResponse
				if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if got.ID != saved.ID || got.Title != "Red Bike" {
					t.Fatalf("unexpected item %+v", got)
				}
			}
		})
	}
}
