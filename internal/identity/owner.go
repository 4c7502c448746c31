package identity

import "context"

type OwnerType string

const (
	OwnerUser  OwnerType = "user"
	OwnerGuest OwnerType = "guest"
)

// CartOwner is the resolved identity a cart belongs to. It is produced
// exactly once per request by the Resolver and threaded explicitly through
// every downstream call, never re-derived.
type CartOwner struct {
	Type      OwnerType
	UserID    uint
	SessionID string
	IsNew     bool
}

func (o CartOwner) IsUser() bool {
	return o.Type == OwnerUser
}

type ctxKey string

const ownerKey ctxKey = "cart_owner"

func WithOwner(ctx context.Context, owner CartOwner) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

func OwnerFrom(ctx context.Context) (CartOwner, bool) {
	owner, ok := ctx.Value(ownerKey).(CartOwner)
	return owner, ok
}
