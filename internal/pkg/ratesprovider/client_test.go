package ratesprovider

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

func testPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:  2,
		Delay:       20 * time.Millisecond,
		TimeoutBase: time.Second,
		TimeoutStep: time.Second,
	}
}

func testPayload() Payload {
	return Payload{
		UnitTypeID: -2147483637,
		Arrival:    "2026-02-01",
		Departure:  "2026-02-05",
		Guests:     []Guest{{AgeGroup: "Adult"}},
	}
}

func TestClient_Send_FirstAttemptSuccess(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Write([]byte(`{"Total Charge": 15000}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testPolicy())

	body, err := client.Send(context.Background(), testPayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"Total Charge": 15000}`, string(body))
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_Send_RetriesUntilTerminal(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	policy := testPolicy()
	client := NewClient(server.URL, policy)

	start := time.Now()
	_, err := client.Send(context.Background(), testPayload())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider returned HTTP status 500")
	assert.Contains(t, err.Error(), "after 3 attempts")
	// maxRetries+1 attempts, with the fixed delay honored between each
	assert.EqualValues(t, 3, calls.Load())
	assert.GreaterOrEqual(t, elapsed, 2*policy.Delay)
}

func TestClient_Send_UnparsableBodyIsRetried(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testPolicy())

	_, err := client.Send(context.Background(), testPayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparsable body")
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_Send_RecoversOnLaterAttempt(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		w.Write([]byte(`{"Total Charge": 0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testPolicy())

	body, err := client.Send(context.Background(), testPayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"Total Charge": 0}`, string(body))
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_Send_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, testPolicy())

	_, err := client.Send(context.Background(), testPayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection error or timeout")
}

func TestClient_Send_DeadlineExpiry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, testPolicy())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Send(ctx, testPayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection error or timeout")
}

func TestRetryPolicy_AttemptTimeoutSchedule(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:  2,
		Delay:       500 * time.Millisecond,
		TimeoutBase: 30 * time.Second,
		TimeoutStep: 15 * time.Second,
	}

	assert.Equal(t, 30*time.Second, policy.AttemptTimeout(0))
	assert.Equal(t, 45*time.Second, policy.AttemptTimeout(1))
	assert.Equal(t, 60*time.Second, policy.AttemptTimeout(2))
}
