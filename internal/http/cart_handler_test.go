package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/cart"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

type catalogMock struct {
	products map[int64]domain.Product
	err      error
}

func (c catalogMock) List(context.Context) ([]domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out, nil
}

func (c catalogMock) Get(_ context.Context, id int64) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &p, nil
}

func (c catalogMock) ListByCategory(_ context.Context, category domain.Category) ([]domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []domain.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func newCartRouter(t *testing.T) (*chi.Mux, *cart.Store) {
	t.Helper()

	store := cart.NewStore(context.Background(), cart.NewMemoryStorage(), zap.NewNop())
	catalog := catalogMock{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Máy tăm nước", Price: 100000, Category: domain.CategoryWaterFlosser},
		2: {ID: 2, Name: "Nước súc miệng", Price: 50000, Category: domain.CategoryMouthwash},
	}}
	handler := NewCartHandler(store, catalog, 5*time.Second)

	r := chi.NewRouter()
	r.Get("/cart", handler.GetCart)
	r.Delete("/cart", handler.ClearCart)
	r.Post("/cart/items", handler.AddItem)
	r.Put("/cart/items/{line_id}", handler.UpdateQuantity)
	r.Delete("/cart/items/{line_id}", handler.RemoveLine)
	return r, store
}

func decodeCart(t *testing.T, recorder *httptest.ResponseRecorder) CartResponseDTO {
	t.Helper()
	var resp CartResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return resp
}

func TestCartHandler_AddItem(t *testing.T) {
	router, _ := newCartRouter(t)

	body := bytes.NewBufferString(`{"product_id":1,"quantity":2}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/cart/items", body))

	require.Equal(t, http.StatusCreated, recorder.Code)
	var line domain.CartLine
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&line))
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 200000.0, line.LineTotal)
	assert.Equal(t, "Máy tăm nước", line.Product.Name)
}

func TestCartHandler_AddItem_UnknownProduct(t *testing.T) {
	router, store := newCartRouter(t)

	body := bytes.NewBufferString(`{"product_id":999,"quantity":1}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/cart/items", body))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Empty(t, store.Lines())
}

func TestCartHandler_AddItem_InvalidBody(t *testing.T) {
	router, _ := newCartRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/cart/items", bytes.NewBufferString("{")))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCartHandler_GetCart(t *testing.T) {
	router, store := newCartRouter(t)
	store.AddItem(context.Background(), domain.Product{ID: 1, Price: 100000}, 2)
	store.AddItem(context.Background(), domain.Product{ID: 2, Price: 50000}, 1)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/cart", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeCart(t, recorder)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 3, resp.TotalItems)
	assert.Equal(t, 250000.0, resp.TotalPrice)
}

func TestCartHandler_UpdateQuantity_ZeroRemoves(t *testing.T) {
	router, store := newCartRouter(t)
	line := store.AddItem(context.Background(), domain.Product{ID: 1, Price: 100000}, 2)
	store.AddItem(context.Background(), domain.Product{ID: 2, Price: 50000}, 1)

	body := bytes.NewBufferString(`{"quantity":0}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/cart/items/"+line.ID, body))

	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeCart(t, recorder)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.TotalItems)
	assert.Equal(t, 50000.0, resp.TotalPrice)
}

func TestCartHandler_RemoveLine(t *testing.T) {
	router, store := newCartRouter(t)
	line := store.AddItem(context.Background(), domain.Product{ID: 1, Price: 100000}, 2)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/cart/items/"+line.ID, nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, store.Lines())
}

func TestCartHandler_ClearCart(t *testing.T) {
	router, store := newCartRouter(t)
	store.AddItem(context.Background(), domain.Product{ID: 1, Price: 100000}, 2)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/cart", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeCart(t, recorder)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.TotalItems)
}
