package frontend

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proyuen/toystore/internal/rpcapi"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// noLengthBody wraps a reader without exposing Len, so net/http can't infer
// Content-Length the way it would for a *bytes.Reader.
type noLengthBody struct {
	io.Reader
}

func newTestRouter(catalog *fakeCatalogClient, order *fakeOrderClient) *gin.Engine {
	election := NewElection([]*ReplicaHandle{{ID: 1, Order: order}}, discardLogger())
	svc := NewService(NewCache(), election, catalog, discardLogger())
	return NewRouter(NewHandlers(svc))
}

func TestGetProductFound(t *testing.T) {
	r := newTestRouter(&fakeCatalogClient{queryResp: &rpcapi.QueryResponse{Price: "9.99", Quantity: 5}}, &fakeOrderClient{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/teddy-bear", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetProductNotFound(t *testing.T) {
	r := newTestRouter(&fakeCatalogClient{queryResp: &rpcapi.QueryResponse{Quantity: -1}}, &fakeOrderClient{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/nonexistent", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductCatalogFailure(t *testing.T) {
	r := newTestRouter(&fakeCatalogClient{queryErr: assert.AnError}, &fakeOrderClient{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/teddy-bear", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateOrderMissingContentLength(t *testing.T) {
	r := newTestRouter(&fakeCatalogClient{}, &fakeOrderClient{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", noLengthBody{bytes.NewReader([]byte(`{"name":"teddy-bear","quantity":1}`))})
	req.ContentLength = 0
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusLengthRequired, w.Code)
}

func TestCreateOrderWrongContentType(t *testing.T) {
	r := newTestRouter(&fakeCatalogClient{}, &fakeOrderClient{})

	body := `{"name":"teddy-bear","quantity":1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "text/plain")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestCreateOrderMalformedJSON(t *testing.T) {
	r := newTestRouter(&fakeCatalogClient{}, &fakeOrderClient{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderInvalidQuantity(t *testing.T) {
	order := &fakeOrderClient{pingOK: true, buyResp: &rpcapi.BuyResponse{OrderNumber: -2}}
	r := newTestRouter(&fakeCatalogClient{}, order)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{"name":"teddy-bear","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	order := &fakeOrderClient{pingOK: true, buyResp: &rpcapi.BuyResponse{OrderNumber: -3}}
	r := newTestRouter(&fakeCatalogClient{}, order)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{"name":"nonexistent","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderSuccess(t *testing.T) {
	order := &fakeOrderClient{pingOK: true, buyResp: &rpcapi.BuyResponse{OrderNumber: 11}}
	r := newTestRouter(&fakeCatalogClient{}, order)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{"name":"teddy-bear","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			OrderNumber int32 `json:"order_number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int32(11), body.Data.OrderNumber)
}

func TestCheckOrderUnknownNumber(t *testing.T) {
	order := &fakeOrderClient{pingOK: true, checkResp: &rpcapi.CheckResponse{Quantity: -1}}
	r := newTestRouter(&fakeCatalogClient{}, order)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckOrderMalformedNumber(t *testing.T) {
	r := newTestRouter(&fakeCatalogClient{}, &fakeOrderClient{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/not-a-number", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckOrderSuccess(t *testing.T) {
	order := &fakeOrderClient{pingOK: true, checkResp: &rpcapi.CheckResponse{ProductName: "teddy-bear", Quantity: 4}}
	r := newTestRouter(&fakeCatalogClient{}, order)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
