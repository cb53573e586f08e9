package frontend

import (
	"context"

	"github.com/proyuen/toystore/internal/rpcapi"
)

var _ rpcapi.FrontEndServer = (*Server)(nil)

// Server adapts Service to the rpcapi.FrontEndServer contract: the catalog
// is the only caller of Invalidate.
type Server struct {
	service *Service
}

// NewServer builds a Server over service.
func NewServer(service *Service) *Server {
	return &Server{service: service}
}

// Invalidate evicts the named product from the cache and always reports
// success.
func (s *Server) Invalidate(_ context.Context, req *rpcapi.InvalidateRequest) (*rpcapi.InvalidateResponse, error) {
	s.service.Invalidate(req.ProductName)
	return &rpcapi.InvalidateResponse{Response: 0}, nil
}
