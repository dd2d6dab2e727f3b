package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "LuxFakia"},
		Session: config.SessionConfig{Secret: "session-test-secret-session-test-secret", CookieName: "lf", TTL: time.Hour},
	}
}

// roundTrip loads the session for a request carrying cookies and returns the new cookie, if any
func roundTrip(t *testing.T, m *Manager, cookies []*http.Cookie) (*Session, []*http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	s, err := m.Load(context.Background(), req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.WriteCookie(rec, s))
	return s, rec.Result().Cookies()
}

func TestManagerIssuesAndReadsCookie(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), testConfig())

	s, cookies := roundTrip(t, m, nil)
	require.Len(t, cookies, 1)
	assert.Equal(t, "lf", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	require.NoError(t, s.SetLang(ctx, "ar"))
	require.NoError(t, s.SaveCart(ctx, map[uint]float64{4: 0.25}))

	again, newCookies := roundTrip(t, m, cookies)
	assert.Empty(t, newCookies)
	assert.Equal(t, s.ID(), again.ID())
	assert.Equal(t, "ar", again.Lang())
	cart, err := again.LoadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint]float64{4: 0.25}, cart)
}

func TestManagerRejectsTamperedCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), testConfig())
	first, cookies := roundTrip(t, m, nil)

	forged := *cookies[0]
	forged.Value += "x"
	s, newCookies := roundTrip(t, m, []*http.Cookie{&forged})
	assert.NotEqual(t, first.ID(), s.ID())
	assert.Len(t, newCookies, 1)

	other := testConfig()
	other.Session.Secret = "another-secret-another-secret-another"
	s, _ = roundTrip(t, NewManager(m.Store(), other), cookies)
	assert.NotEqual(t, first.ID(), s.ID())
}

func TestRenewAndDestroy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, testConfig())

	s, _ := roundTrip(t, m, nil)
	require.NoError(t, s.SetLang(ctx, "ar"))
	require.NoError(t, s.SaveCart(ctx, map[uint]float64{1: 2}))
	oldID := s.ID()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Renew(ctx, rec, s))
	require.NoError(t, s.SetUser(ctx, 9))
	assert.NotEqual(t, oldID, s.ID())
	require.Len(t, rec.Result().Cookies(), 1)
	_, err := store.Load(ctx, oldID)
	assert.ErrorIs(t, err, ErrNotFound)

	renewed, _ := roundTrip(t, m, rec.Result().Cookies())
	uid, ok := renewed.UserID()
	assert.True(t, ok)
	assert.EqualValues(t, 9, uid)

	rec = httptest.NewRecorder()
	loggedInID := s.ID()
	require.NoError(t, m.Destroy(ctx, rec, s))
	_, ok = s.UserID()
	assert.False(t, ok)
	assert.Equal(t, "ar", s.Lang())
	cart, _ := s.LoadCart(ctx)
	assert.Empty(t, cart)
	_, err = store.Load(ctx, loggedInID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFlashesAndOrders(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), testConfig())
	s, cookies := roundTrip(t, m, nil)

	require.NoError(t, s.AddFlash(ctx, "success", "Article ajouté au panier"))
	require.NoError(t, s.AddOrder(ctx, 12))
	require.NoError(t, s.AddOrder(ctx, 12))

	next, _ := roundTrip(t, m, cookies)
	flashes, err := next.PopFlashes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Flash{{Category: "success", Message: "Article ajouté au panier"}}, flashes)
	assert.True(t, next.HasOrder(12))
	assert.False(t, next.HasOrder(13))

	after, _ := roundTrip(t, m, cookies)
	flashes, err = after.PopFlashes(ctx)
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestCartCopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), testConfig())
	s, _ := roundTrip(t, m, nil)

	items := map[uint]float64{1: 1}
	require.NoError(t, s.SaveCart(ctx, items))
	items[1] = 99

	loaded, err := s.LoadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, loaded[1])
	loaded[1] = 50

	again, _ := s.LoadCart(ctx)
	assert.Equal(t, 1.0, again[1])

	require.NoError(t, s.ClearCart(ctx))
	again, _ = s.LoadCart(ctx)
	assert.Empty(t, again)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "a", &Data{Lang: "fr"}, time.Minute))
	_, err := store.Load(ctx, "a")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, store.Len())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SESSION_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SESSION_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	store := NewRedisStore(client)
	require.NoError(t, store.Ping(ctx))

	uid := uint(3)
	require.NoError(t, store.Save(ctx, "test-sid", &Data{UserID: &uid, Cart: map[uint]float64{2: 0.5}}, time.Minute))
	defer store.Delete(ctx, "test-sid")

	data, err := store.Load(ctx, "test-sid")
	require.NoError(t, err)
	assert.Equal(t, uid, *data.UserID)
	assert.Equal(t, 0.5, data.Cart[2])

	ttl, err := client.TTL(ctx, "session:test-sid").Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, store.Delete(ctx, "test-sid"))
	_, err = store.Load(ctx, "test-sid")
	assert.ErrorIs(t, err, ErrNotFound)
}
