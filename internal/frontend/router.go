package frontend

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/proyuen/toystore/pkg/snowflake"
)

// requestIDKey is the gin.Context key the correlation-id middleware stores
// its value under.
const requestIDKey = "request_id"

// correlationID stamps every request with a snowflake id, stored in the
// gin.Context under requestIDKey and returned in the X-Request-Id response
// header. The id is not added to log lines and is not forwarded to the
// catalog or order replicas.
func correlationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := snowflake.GenID()
		c.Set(requestIDKey, id)
		c.Header("X-Request-Id", strconv.FormatUint(id, 10))
		c.Next()
	}
}

// NewRouter wires Handlers to the three public routes.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(correlationID())

	r.GET("/products/:name", h.GetProduct)
	r.POST("/orders", h.CreateOrder)
	r.POST("/orders/:order_number", h.CheckOrder)

	return r
}
