package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Poller_DeliversUpdates(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orders":[{"orderId":"ORD-1","status":"Processing"}]}`))
	}))
	defer server.Close()

	updates := make(chan []Order, 16)
	c := New(server.URL)
	p := NewPoller(c, 20*time.Millisecond, func(orders []Order) {
		updates <- orders
	}, nil)

	p.Start(context.Background())
	defer p.Stop()

	// The first fetch happens immediately, before the first tick.
	select {
	case orders := <-updates:
		require.Len(t, orders, 1)
		assert.Equal(t, "ORD-1", orders[0].OrderID)
	case <-time.After(time.Second):
		t.Fatal("expected an immediate update")
	}

	// Subsequent updates arrive on the ticker.
	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("expected a periodic update")
	}
	assert.GreaterOrEqual(t, calls.Load(), int64(2))
}

func Test_Poller_ReportsErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Invalid or expired token"}`))
	}))
	defer server.Close()

	errs := make(chan error, 16)
	c := New(server.URL)
	p := NewPoller(c, 20*time.Millisecond, func([]Order) {
		t.Error("onUpdate must not fire on a failed fetch")
	}, func(err error) {
		errs <- err
	})

	p.Start(context.Background())
	defer p.Stop()

	select {
	case err := <-errs:
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	case <-time.After(time.Second):
		t.Fatal("expected an error callback")
	}
}

func Test_Poller_Stop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orders":[]}`))
	}))
	defer server.Close()

	var calls atomic.Int64
	c := New(server.URL)
	p := NewPoller(c, 10*time.Millisecond, func([]Order) {
		calls.Add(1)
	}, nil)

	p.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	// Stop waits for the loop, so no further callbacks may fire.
	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())

	// Stopping twice is a no-op.
	p.Stop()
}
