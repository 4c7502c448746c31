package user

import "time"

type User struct {
	ID         uint    `json:"userId"`
	Name       string  `json:"userName"`
	Email      string  `json:"userEmail"`
	Phone      *string `json:"userPhone,omitempty"`
	AvatarURL  *string `json:"userAvatarUrl,omitempty"`
	GoogleID   *string `json:"-"`
	IsVerified bool    `json:"-"`

	// IsNew marks a user created during the current login exchange.
	IsNew bool `json:"-"`
}

// GoogleProfile is what the OAuth collaborator hands back after a
// successful exchange.
type GoogleProfile struct {
	GoogleID  string
	Email     string
	Name      string
	AvatarURL *string
}

type RefreshToken struct {
	UserID    uint
	Token     string
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
}
