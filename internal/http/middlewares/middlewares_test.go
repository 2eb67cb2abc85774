package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-dashboard.com/task-dashboard/internal/auth"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
)

func ok(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func serve(e *echo.Echo, h echo.HandlerFunc, header http.Header) error {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	return h(e.NewContext(req, httptest.NewRecorder()))
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	e := echo.New()
	h := RateLimiter(2, time.Minute)(ok)

	require.NoError(t, serve(e, h, nil))
	require.NoError(t, serve(e, h, nil))
	assert.ErrorIs(t, serve(e, h, nil), apperrors.ErrRateLimited)
}

func TestMemoryCounter_WindowResets(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	counter := NewMemoryCounter(func() time.Time { return now })
	ctx := context.Background()

	n, _ := counter.Hit(ctx, "ip", time.Minute)
	assert.Equal(t, int64(1), n)
	n, _ = counter.Hit(ctx, "ip", time.Minute)
	assert.Equal(t, int64(2), n)
	n, _ = counter.Hit(ctx, "other", time.Minute)
	assert.Equal(t, int64(1), n)

	now = now.Add(2 * time.Minute)
	n, _ = counter.Hit(ctx, "ip", time.Minute)
	assert.Equal(t, int64(1), n)
}

type failingCounter struct{}

func (failingCounter) Hit(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("backend down")
}

func TestLimitBy_FailsOpen(t *testing.T) {
	e := echo.New()
	h := LimitBy(failingCounter{}, 1, time.Minute)(ok)

	for i := 0; i < 3; i++ {
		assert.NoError(t, serve(e, h, nil))
	}
}

// Runs only when a Redis instance is reachable at REDIS_ADDR.
func TestRedisRateLimiter_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{addr}, DisableCache: true})
	require.NoError(t, err)
	defer client.Close()

	prefix := "rl-test-" + time.Now().Format("150405.000000")
	e := echo.New()
	h := RedisRateLimiter(client, prefix, 2, 2*time.Second)(ok)

	require.NoError(t, serve(e, h, nil))
	require.NoError(t, serve(e, h, nil))
	assert.ErrorIs(t, serve(e, h, nil), apperrors.ErrRateLimited)

	// A counter left without an expiry is given one on the next hit.
	ctx := context.Background()
	stuck := prefix + ":60:10.0.0.1"
	require.NoError(t, client.Do(ctx, client.B().Set().Key(stuck).Value("5").Build()).Error())
	defer client.Do(ctx, client.B().Del().Key(stuck).Build())

	count, err := NewRedisCounter(client, prefix).Hit(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)

	ttl, err := client.Do(ctx, client.B().Ttl().Key(stuck).Build()).AsInt64()
	require.NoError(t, err)
	assert.Greater(t, ttl, int64(0))
}

func TestWindowSeconds(t *testing.T) {
	assert.Equal(t, int64(60), windowSeconds(time.Minute))
	assert.Equal(t, int64(1), windowSeconds(100*time.Millisecond))
}

func TestAuthenticate(t *testing.T) {
	e := echo.New()
	tokens := auth.NewTokenService(auth.TokenConfig{SecretKey: "secret", Issuer: "test"})
	token, _, err := tokens.Issue("user-1")
	require.NoError(t, err)

	var caller string
	h := Authenticate(tokens)(func(c echo.Context) error {
		id, err := CallerID(c)
		caller = id
		return err
	})

	assert.ErrorIs(t, serve(e, h, nil), apperrors.ErrMissingToken)
	assert.ErrorIs(t, serve(e, h, http.Header{"Authorization": {"Bearer junk"}}), apperrors.ErrInvalidToken)

	require.NoError(t, serve(e, h, http.Header{"Authorization": {"Bearer " + token}}))
	assert.Equal(t, "user-1", caller)
}

func TestCallerID_WithoutClaims(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := CallerID(c)
	assert.ErrorIs(t, err, apperrors.ErrMissingToken)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, RequestLogger()(ok)(c))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestMemoryCounter_Sweep(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	counter := NewMemoryCounter(func() time.Time { return now })
	ctx := context.Background()

	_, _ = counter.Hit(ctx, "old", time.Minute)
	now = now.Add(50 * time.Second)
	_, _ = counter.Hit(ctx, "fresh", time.Minute)
	now = now.Add(20 * time.Second)

	assert.Equal(t, 1, counter.Sweep(time.Minute))
	assert.Equal(t, 1, counter.Len())
}

func TestBucketSweeper_Shutdown(t *testing.T) {
	counter := NewMemoryCounter(time.Now)
	_, _ = counter.Hit(context.Background(), "ip", time.Nanosecond)

	sweeper := NewBucketSweeper(counter, time.Nanosecond, time.Millisecond)
	assert.Eventually(t, func() bool { return counter.Len() == 0 }, time.Second, 5*time.Millisecond)

	sweeper.Shutdown()
	sweeper.Shutdown()
}
