package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lokamart-be/internal/auth"
	"lokamart-be/internal/identity"
	"lokamart-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	userID uint
	err    error
}

func (s stubVerifier) Verify(string) (uint, error) { return s.userID, s.err }

type stubLookup struct {
	exists bool
	err    error
}

func (s stubLookup) ExistsByID(context.Context, uint) (bool, error) { return s.exists, s.err }

func TestCartOwnerMiddleware(t *testing.T) {
	t.Run("Guest gets session cookie", func(t *testing.T) {
		resolver := identity.NewResolver(stubVerifier{err: errors.New("no token")}, stubLookup{})

		var got identity.CartOwner
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, ok := identity.OwnerFrom(r.Context())
			assert.True(t, ok, "owner should be in context")
			got = owner
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/cart/get-carts", nil)
		w := httptest.NewRecorder()

		CartOwnerMiddleware(resolver)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, identity.OwnerGuest, got.Type)
		assert.True(t, got.IsNew)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, identity.SessionCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("Authenticated user", func(t *testing.T) {
		manager, err := auth.NewManager("test-secret")
		require.NoError(t, err)
		token, err := manager.GenerateAccessToken(7, "shopper@example.com")
		require.NoError(t, err)

		resolver := identity.NewResolver(manager, stubLookup{exists: true})

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, ok := identity.OwnerFrom(r.Context())
			assert.True(t, ok)
			assert.Equal(t, identity.OwnerUser, owner.Type)
			assert.Equal(t, uint(7), owner.UserID)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/cart/get-carts", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})
		w := httptest.NewRecorder()

		CartOwnerMiddleware(resolver)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		// No guest cookie should be minted for an authenticated user.
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Lookup failure", func(t *testing.T) {
		manager, err := auth.NewManager("test-secret")
		require.NoError(t, err)
		token, err := manager.GenerateAccessToken(7, "shopper@example.com")
		require.NoError(t, err)

		resolver := identity.NewResolver(manager, stubLookup{err: errors.New("db down")})

		req := httptest.NewRequest("GET", "/cart/get-carts", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})
		w := httptest.NewRecorder()

		CartOwnerMiddleware(resolver)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequireUser(t *testing.T) {
	manager, err := auth.NewManager("test-secret")
	require.NoError(t, err)

	t.Run("Missing Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/user/me", nil)
		w := httptest.NewRecorder()

		RequireUser(manager, stubLookup{exists: true})(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/user/me", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		RequireUser(manager, stubLookup{exists: true})(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(1, "shopper@example.com")
		require.NoError(t, err)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, uint(1), userID)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/user/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		RequireUser(manager, stubLookup{exists: true})(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Deleted User", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(1, "shopper@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/user/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		RequireUser(manager, stubLookup{exists: false})(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCors(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := NewCORS("http://localhost:3000")(nextHandler)

	t.Run("Preflight request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/cart/add-to-cart", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.True(t, w.Code == http.StatusOK || w.Code == http.StatusNoContent)
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products/get-products", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RateLimitMiddleware(next)

	t.Run("Allows within burst", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/some-path", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Device ID gets its own bucket", func(t *testing.T) {
		// Same IP, distinct device IDs: exhausting one device's strict
		// quota must not affect the other.
		for i := 0; i < burstStrict; i++ {
			req := httptest.NewRequest("GET", "/auth/google", nil)
			req.RemoteAddr = "10.0.0.3:5000"
			req.Header.Set("X-Device-ID", "device-a")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest("GET", "/auth/google", nil)
		req.RemoteAddr = "10.0.0.3:5000"
		req.Header.Set("X-Device-ID", "device-b")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Blocks after burst exhausted", func(t *testing.T) {
		var lastCode int
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("GET", "/auth/google", nil)
			req.RemoteAddr = "10.0.0.2:5000"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			lastCode = w.Code
		}

		assert.Equal(t, http.StatusTooManyRequests, lastCode)
	})
}
