package addressval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAddr = Address{
	Line1:   "123 Main St",
	City:    "Austin",
	State:   "TX",
	Zip:     "78701",
	Country: "US",
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient("test-key", srv.URL, 2, time.Millisecond)
	require.NoError(t, err)
	return c, srv
}

func TestValidateWithoutKeyEchoesInput(t *testing.T) {
	c, err := NewClient("", "", 0, 0)
	require.NoError(t, err)

	result, err := c.Validate(context.Background(), testAddr)

	require.NoError(t, err)
	assert.True(t, result.AreIdentical)
	assert.Equal(t, result.UserAddress, result.NormalizedAddress)
	assert.Equal(t, "123 Main St, Austin, TX, 78701, US", result.UserAddress)
}

func TestValidateComparesNormalizedForms(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))

		var req validateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "123 Main St", req.Address.Line1)

		// Same address, different punctuation and casing.
		_ = json.NewEncoder(w).Encode(validateResponse{
			FormattedAddress: "123 MAIN ST AUSTIN TX 78701 US",
		})
	}))

	result, err := c.Validate(context.Background(), testAddr)

	require.NoError(t, err)
	assert.True(t, result.AreIdentical)
	assert.Equal(t, "123 MAIN ST AUSTIN TX 78701 US", result.NormalizedAddress)
}

func TestValidateReportsRealDifferences(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(validateResponse{
			FormattedAddress: "123 Main Street, Austin, TX 78701-4321, US",
		})
	}))

	result, err := c.Validate(context.Background(), testAddr)

	require.NoError(t, err)
	assert.False(t, result.AreIdentical)
}

func TestValidateRejectedKey(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.Validate(context.Background(), testAddr)

	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestValidateRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(validateResponse{FormattedAddress: "x"})
	}))

	_, err := c.Validate(context.Background(), testAddr)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestValidateExhaustedRetriesReturnRateLimitError(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))

	_, err := c.Validate(context.Background(), testAddr)

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Contains(t, rateErr.Message, "quota exceeded")
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
}
