package frontend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/proyuen/toystore/internal/rpcapi"
)

func TestQueryCacheHitSkipsCatalog(t *testing.T) {
	cache := NewCache()
	cache.Set("teddy-bear", Entry{Price: "9.99", Quantity: 5})

	catalog := &fakeCatalogClient{queryErr: errors.New("should never be called")}
	svc := NewService(cache, NewElection(nil, discardLogger()), catalog, discardLogger())

	res, err := svc.Query(context.Background(), "teddy-bear")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "9.99", res.Price)
	assert.Equal(t, int32(5), res.Quantity)
}

func TestQueryCacheMissFillsCacheFromCatalog(t *testing.T) {
	cache := NewCache()
	catalog := &fakeCatalogClient{queryResp: &rpcapi.QueryResponse{Price: "4.50", Quantity: 7}}
	svc := NewService(cache, NewElection(nil, discardLogger()), catalog, discardLogger())

	res, err := svc.Query(context.Background(), "toy-car")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "4.50", res.Price)

	e, ok := cache.Get("toy-car")
	require.True(t, ok)
	assert.Equal(t, "4.50", e.Price)
}

func TestQueryUnknownProductNotFound(t *testing.T) {
	cache := NewCache()
	catalog := &fakeCatalogClient{queryResp: &rpcapi.QueryResponse{Quantity: -1}}
	svc := NewService(cache, NewElection(nil, discardLogger()), catalog, discardLogger())

	res, err := svc.Query(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestQueryCatalogFailurePassesThrough(t *testing.T) {
	cache := NewCache()
	catalog := &fakeCatalogClient{queryErr: errors.New("boom")}
	svc := NewService(cache, NewElection(nil, discardLogger()), catalog, discardLogger())

	_, err := svc.Query(context.Background(), "toy-car")
	assert.Error(t, err)
}

func TestBuyElectsWhenNoLeaderYet(t *testing.T) {
	order := &fakeOrderClient{pingOK: true, buyResp: &rpcapi.BuyResponse{OrderNumber: 42}}
	election := NewElection([]*ReplicaHandle{{ID: 1, Order: order}}, discardLogger())

	svc := NewService(NewCache(), election, &fakeCatalogClient{}, discardLogger())

	n, err := svc.Buy(context.Background(), "teddy-bear", 2)
	require.NoError(t, err)
	assert.Equal(t, int32(42), n)
}

func TestBuyPassesThroughBusinessError(t *testing.T) {
	order := &fakeOrderClient{pingOK: true, buyErr: status.Error(codes.InvalidArgument, "bad quantity")}
	election := NewElection([]*ReplicaHandle{{ID: 1, Order: order}}, discardLogger())

	svc := NewService(NewCache(), election, &fakeCatalogClient{}, discardLogger())

	_, err := svc.Buy(context.Background(), "teddy-bear", -1)
	assert.Error(t, err)
	assert.False(t, status.Code(err) == codes.Unavailable)
}

func TestBuyGivesUpAfterRetriesExhausted(t *testing.T) {
	order := &fakeOrderClient{pingOK: true, buyErr: status.Error(codes.Unavailable, "down")}
	election := NewElection([]*ReplicaHandle{{ID: 1, Order: order}}, discardLogger())

	svc := NewService(NewCache(), election, &fakeCatalogClient{}, discardLogger())

	_, err := svc.Buy(context.Background(), "teddy-bear", 2)
	assert.ErrorIs(t, err, ErrNoReplicaReachable)
}

func TestCheckReturnsOrderDetails(t *testing.T) {
	order := &fakeOrderClient{pingOK: true, checkResp: &rpcapi.CheckResponse{ProductName: "teddy-bear", Quantity: 3}}
	election := NewElection([]*ReplicaHandle{{ID: 1, Order: order}}, discardLogger())

	svc := NewService(NewCache(), election, &fakeCatalogClient{}, discardLogger())

	name, qty, err := svc.Check(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "teddy-bear", name)
	assert.Equal(t, int32(3), qty)
}

func TestInvalidateEvictsCacheEntry(t *testing.T) {
	cache := NewCache()
	cache.Set("teddy-bear", Entry{Price: "9.99", Quantity: 5})

	svc := NewService(cache, NewElection(nil, discardLogger()), &fakeCatalogClient{}, discardLogger())
	svc.Invalidate("teddy-bear")

	_, ok := cache.Get("teddy-bear")
	assert.False(t, ok)
}
