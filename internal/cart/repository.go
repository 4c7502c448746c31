package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lokamart-be/internal/identity"
	"lokamart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetActiveCart(ctx context.Context, owner identity.CartOwner) (*Cart, error)
	CreateCart(ctx context.Context, owner identity.CartOwner) (*Cart, error)
	AddItem(ctx context.Context, cartID, productID uint, quantity int) (*AddResult, error)
	GetCartItems(ctx context.Context, cartID uint) ([]Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActiveCart(ctx context.Context, owner identity.CartOwner) (*Cart, error) {
	var (
		query string
		arg   any
	)

	if owner.IsUser() {
		query = `
		SELECT id, user_id, session_id, total_amount, created_at, expires_at
		FROM carts
		WHERE user_id = $1
		AND deleted_at IS NULL
		ORDER BY id DESC
		LIMIT 1
		`
		arg = owner.UserID
	} else {
		query = `
		SELECT id, user_id, session_id, total_amount, created_at, expires_at
		FROM carts
		WHERE session_id = $1
		AND deleted_at IS NULL
		AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY id DESC
		LIMIT 1
		`
		arg = owner.SessionID
	}

	var c Cart
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID,
		&c.UserID,
		&c.SessionID,
		&c.TotalAmount,
		&c.CreatedAt,
		&c.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateCart inserts the owner's cart. A concurrent create for the same
// owner loses the race on the partial unique index; that is not a failure,
// the winner's row is re-fetched and returned.
func (r *repository) CreateCart(ctx context.Context, owner identity.CartOwner) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCart"),
	)

	var (
		query string
		arg   any
	)

	if owner.IsUser() {
		query = `
		INSERT INTO carts (user_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, user_id, session_id, total_amount, created_at, expires_at
		`
		arg = owner.UserID
	} else {
		query = `
		INSERT INTO carts (session_id, expires_at, created_at, updated_at)
		VALUES ($1, NOW() + INTERVAL '30 days', NOW(), NOW())
		RETURNING id, user_id, session_id, total_amount, created_at, expires_at
		`
		arg = owner.SessionID
	}

	var c Cart
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID,
		&c.UserID,
		&c.SessionID,
		&c.TotalAmount,
		&c.CreatedAt,
		&c.ExpiresAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
		log.Debug("cart already created concurrently, re-fetching")

		existing, ferr := r.GetActiveCart(ctx, owner)
		if ferr != nil {
			return nil, ferr
		}
		if existing == nil {
			return nil, err
		}
		return existing, nil
	}
	if err != nil {
		log.Error("failed to create cart", zap.Error(err))
		return nil, err
	}

	log.Info("created cart", zap.Uint("cart_id", c.ID))
	return &c, nil
}

// AddItem runs the stock gate, the ledger upsert and the total recompute
// in a single transaction, so the stock decision cannot be invalidated
// before the write commits. The upsert is one conditional statement; two
// concurrent adds for the same (cart, product) serialize on the row lock
// instead of losing an update.
func (r *repository) AddItem(ctx context.Context, cartID, productID uint, quantity int) (*AddResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddItem"),
		zap.Uint("cart_id", cartID),
		zap.Uint("product_id", productID),
	)

	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var existing int
	err = tx.QueryRowContext(ctx, `
		SELECT quantity
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2 AND deleted_at IS NULL
		FOR UPDATE
	`, cartID, productID).Scan(&existing)
	if err == sql.ErrNoRows {
		existing = 0
	} else if err != nil {
		return nil, err
	}

	var available int
	err = tx.QueryRowContext(ctx, `
		SELECT inv.available_quantity
		FROM products pr
		JOIN inventory inv ON pr.id = inv.product_id
		WHERE pr.id = $1 AND pr.is_active = true
		FOR SHARE
	`, productID).Scan(&available)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	// Stock gate: the cart's cumulative quantity after this add, not the
	// newly requested amount alone.
	if existing+quantity > available {
		log.Info("stock gate rejected add",
			zap.Int("existing", existing),
			zap.Int("requested", quantity),
			zap.Int("available", available),
		)
		return nil, ErrInsufficientStock
	}

	res := &AddResult{CartID: cartID}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id) WHERE deleted_at IS NULL
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = NOW()
		RETURNING cart_item_id, quantity
	`, cartID, productID, quantity).Scan(&res.CartItemID, &res.Quantity)
	if err != nil {
		log.Error("cart item upsert failed", zap.Error(err))
		return nil, err
	}

	// Re-check after the upsert. The pre-gate reads the existing row under
	// FOR UPDATE, but a first add has no row to lock: two concurrent first
	// adds both see existing=0, and the upsert consolidates them. The
	// returned quantity is the committed-to total, so comparing it here
	// closes that window, rolling this transaction back.
	if res.Quantity > available {
		log.Info("stock gate rejected consolidated quantity",
			zap.Int("final_quantity", res.Quantity),
			zap.Int("available", available),
		)
		return nil, ErrInsufficientStock
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE carts
		SET total_amount = (
			SELECT COALESCE(GREATEST(SUM(ci.quantity * CASE WHEN pr.sale_price > 0 THEN pr.sale_price ELSE pr.base_price END), 0), 0)
			FROM cart_items ci
			JOIN products pr ON pr.id = ci.product_id
			WHERE ci.cart_id = $1 AND ci.deleted_at IS NULL
		),
		updated_at = NOW()
		WHERE id = $1
		RETURNING total_amount
	`, cartID).Scan(&res.Total)
	if err != nil {
		log.Error("total recompute failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("cart item upserted",
		zap.Uint("cart_item_id", res.CartItemID),
		zap.Int("quantity", res.Quantity),
		zap.Duration("duration", time.Since(start)),
	)

	return res, nil
}

func (r *repository) GetCartItems(ctx context.Context, cartID uint) ([]Item, error) {
	query := `
	SELECT
		ci.cart_item_id,
		pr.id,
		pr.name,
		pr.base_price,
		pr.sale_price,
		pi.image_url,
		ci.quantity,
		inv.available_quantity >= ci.quantity
	FROM cart_items ci
	JOIN products pr ON ci.product_id = pr.id
	LEFT JOIN product_images pi ON pr.id = pi.product_id AND pi.is_primary
	JOIN inventory inv ON pr.id = inv.product_id
	WHERE ci.cart_id = $1
	AND ci.deleted_at IS NULL
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.CartItemID,
			&item.ProductID,
			&item.Name,
			&item.BasePrice,
			&item.SalePrice,
			&item.ImageURL,
			&item.Quantity,
			&item.InStock,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
