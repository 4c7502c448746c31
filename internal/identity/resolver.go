package identity

import (
	"context"
	"net/http"
	"time"

	"lokamart-be/internal/auth"
	"lokamart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionCookie = "cart_session"
	SessionTTL    = 30 * 24 * time.Hour
)

// TokenVerifier reports the user id carried by a valid access token.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// UserLookup checks that a token's subject still exists.
type UserLookup interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

type Resolver struct {
	tokens TokenVerifier
	users  UserLookup
}

func NewResolver(tokens TokenVerifier, users UserLookup) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve turns request credentials into a CartOwner. First match wins:
// a verified token whose user still exists resolves to a user owner; any
// credential failure falls through to the guest flow instead of aborting,
// so anonymous shopping always succeeds. The returned cookie is non-nil
// only when a fresh guest session was minted and must be written to the
// response by the caller.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (CartOwner, *http.Cookie, error) {
	log := logger.FromCtx(ctx)

	if token := auth.ExtractAccessToken(req); token != "" {
		userID, err := r.tokens.Verify(token)
		if err != nil {
			log.Debug("cart owner token rejected, falling back to guest",
				zap.Error(err),
			)
		} else {
			exists, err := r.users.ExistsByID(ctx, userID)
			if err != nil {
				return CartOwner{}, nil, err
			}
			if exists {
				return CartOwner{Type: OwnerUser, UserID: userID}, nil, nil
			}
			log.Debug("cart owner token references missing user",
				zap.Uint("user_id", userID),
			)
		}
	}

	if cookie, err := req.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return CartOwner{
			Type:      OwnerGuest,
			SessionID: cookie.Value,
			IsNew:     false,
		}, nil, nil
	}

	sessionID := uuid.New().String()
	owner := CartOwner{
		Type:      OwnerGuest,
		SessionID: sessionID,
		IsNew:     true,
	}

	return owner, NewSessionCookie(sessionID), nil
}

func NewSessionCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
