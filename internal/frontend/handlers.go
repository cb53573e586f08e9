package frontend

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handlers is the thin HTTP-to-Service adapter: request parsing, status
// code mapping, JSON envelopes. No business logic lives here.
type Handlers struct {
	service *Service
}

// NewHandlers builds Handlers over service.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// orderRequest is the JSON body for POST /orders.
type orderRequest struct {
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
}

// GetProduct handles GET /products/:name.
func (h *Handlers) GetProduct(c *gin.Context) {
	name := c.Param("name")

	res, err := h.service.Query(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !res.Found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"name":     name,
		"price":    res.Price,
		"quantity": res.Quantity,
	}})
}

// CreateOrder handles POST /orders.
func (h *Handlers) CreateOrder(c *gin.Context) {
	if c.Request.ContentLength <= 0 {
		c.JSON(http.StatusLengthRequired, gin.H{"error": "missing content-length"})
		return
	}
	if c.ContentType() != "application/json" {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "expected application/json"})
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.service.Buy(c.Request.Context(), req.Name, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch n {
	case -2:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
	case -3:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown product"})
	default:
		// -1 (insufficient stock) is a normal reply, not an HTTP error.
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"order_number": n}})
	}
}

// CheckOrder handles POST /orders/:order_number.
func (h *Handlers) CheckOrder(c *gin.Context) {
	raw := c.Param("order_number")
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown order number"})
		return
	}

	name, qty, err := h.service.Check(c.Request.Context(), int32(n))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if qty == -1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown order number"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"number":   n,
		"name":     name,
		"quantity": qty,
	}})
}
