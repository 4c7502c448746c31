package user

import (
	"context"
	"database/sql"

	"lokamart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
	GetDetailsByID(ctx context.Context, id uint) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	CreateFromGoogle(ctx context.Context, profile GoogleProfile) (*User, error)
	LinkGoogleAccount(ctx context.Context, userID uint, googleID string, avatarURL *string) (*User, error)
	InsertRefreshToken(ctx context.Context, token RefreshToken) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE id = $1 LIMIT 1",
		id,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) GetDetailsByID(ctx context.Context, id uint) (*User, error) {
	query := `
	SELECT
		id,
		name,
		email,
		phone,
		avatar_url
	FROM users
	WHERE id = $1
	LIMIT 1
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.AvatarURL,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	return r.scanOne(ctx, `
		SELECT id, name, email, phone, avatar_url, google_id, is_verified
		FROM users
		WHERE google_id = $1
		LIMIT 1
	`, googleID)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanOne(ctx, `
		SELECT id, name, email, phone, avatar_url, google_id, is_verified
		FROM users
		WHERE email = $1
		LIMIT 1
	`, email)
}

func (r *repository) CreateFromGoogle(ctx context.Context, profile GoogleProfile) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateFromGoogle"),
	)

	query := `
	INSERT INTO users (email, name, google_id, avatar_url, is_verified)
	VALUES ($1, $2, $3, $4, true)
	RETURNING id, name, email, phone, avatar_url, google_id, is_verified
	`

	var u User
	err := r.db.QueryRowContext(ctx, query,
		profile.Email,
		profile.Name,
		profile.GoogleID,
		profile.AvatarURL,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.AvatarURL, &u.GoogleID, &u.IsVerified)

	if err != nil {
		log.Error("failed to create user from google profile", zap.Error(err))
		return nil, err
	}

	log.Info("created user from google login", zap.Uint("user_id", u.ID))
	return &u, nil
}

func (r *repository) LinkGoogleAccount(ctx context.Context, userID uint, googleID string, avatarURL *string) (*User, error) {
	query := `
	UPDATE users
	SET google_id = $1,
	    avatar_url = COALESCE($2, avatar_url),
	    updated_at = NOW()
	WHERE id = $3
	RETURNING id, name, email, phone, avatar_url, google_id, is_verified
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, googleID, avatarURL, userID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.AvatarURL, &u.GoogleID, &u.IsVerified)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) InsertRefreshToken(ctx context.Context, token RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, token, expires_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)
	`,
		token.UserID,
		token.Token,
		token.ExpiresAt,
		token.IPAddress,
		token.UserAgent,
	)
	return err
}

func (r *repository) scanOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.AvatarURL,
		&u.GoogleID,
		&u.IsVerified,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}
