package linkcheck_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simlab/internal/adapters/linkcheck"
	"simlab/internal/domain"
)

func TestCheck_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	st, err := linkcheck.New(100, time.Second).Check(ctx, ts.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, st)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestCheck_HeadNotAllowedFallsBackToGet(t *testing.T) {
	var methods []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	st, err := linkcheck.New(100, time.Second).Check(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, []string{http.MethodHead, http.MethodGet}, methods)
}

func TestCheck_NotFoundIsBroken(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	st, err := linkcheck.New(100, time.Second).Check(context.Background(), ts.URL)
	assert.Equal(t, http.StatusNotFound, st)
	assert.ErrorIs(t, err, domain.ErrBrokenLink)
}

func TestCheck_FollowsRedirects(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer final.Close()
	tracker := httptest.NewServer(http.RedirectHandler(final.URL, http.StatusFound))
	defer tracker.Close()

	st, err := linkcheck.New(100, time.Second).Check(context.Background(), tracker.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, st)
}

func TestCheck_RetryAfterIsHonouredUntilContextEnds(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := linkcheck.New(100, time.Second).Check(ctx, ts.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
