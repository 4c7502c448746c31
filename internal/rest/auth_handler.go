package rest

import (
	"context"
	"net"
	"net/http"

	"lokamart-be/internal/auth"
	"lokamart-be/internal/logger"
	"lokamart-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GoogleProvider performs the OAuth dance with Google. It is an interface
// so handler tests can run without talking to Google.
type GoogleProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (user.GoogleProfile, error)
}

type AuthHandler struct {
	provider    GoogleProvider
	users       user.Service
	tokens      *auth.Manager
	frontendURL string
	secure      bool
}

func NewAuthHandler(provider GoogleProvider, users user.Service, tokens *auth.Manager, frontendURL string, secure bool) *AuthHandler {
	return &AuthHandler{
		provider:    provider,
		users:       users,
		tokens:      tokens,
		frontendURL: frontendURL,
		secure:      secure,
	}
}

const oauthStateCookie = "oauth_state"

// GoogleLogin starts the OAuth flow. The state value round-trips through a
// short-lived cookie to reject forged callbacks.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.provider.AuthURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback exchanges the authorization code, resolves the account,
// issues the token pair as cookies, and redirects back to the storefront.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.redirectWithError(w, r, "invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectWithError(w, r, "missing_code")
		return
	}

	profile, err := h.provider.Exchange(r.Context(), code)
	if err != nil {
		log.Error("google code exchange failed", zap.Error(err))
		h.redirectWithError(w, r, "exchange_failed")
		return
	}

	account, err := h.users.ResolveGoogleLogin(r.Context(), profile)
	if err != nil {
		log.Error("google login resolution failed", zap.Error(err))
		h.redirectWithError(w, r, "login_failed")
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		log.Error("access token generation failed", zap.Error(err))
		h.redirectWithError(w, r, "login_failed")
		return
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(account.ID)
	if err != nil {
		log.Error("refresh token generation failed", zap.Error(err))
		h.redirectWithError(w, r, "login_failed")
		return
	}

	ip, _, splitErr := net.SplitHostPort(r.RemoteAddr)
	if splitErr != nil {
		ip = r.RemoteAddr
	}
	err = h.users.StoreRefreshToken(r.Context(), user.RefreshToken{
		UserID:    account.ID,
		Token:     refreshToken,
		ExpiresAt: now().Add(auth.RefreshTokenTTL),
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		log.Error("refresh token persistence failed", zap.Error(err))
		h.redirectWithError(w, r, "login_failed")
		return
	}

	h.setAuthCookies(w, accessToken, refreshToken)

	// Drop the one-shot state cookie.
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Path: "/", MaxAge: -1})

	target := h.frontendURL + "/dashboard"
	if account.IsNew {
		target = h.frontendURL + "/setup-user"
	}
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(auth.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     auth.RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(auth.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, h.frontendURL+"/login?error="+reason, http.StatusTemporaryRedirect)
}
