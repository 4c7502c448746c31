package product

import (
	"context"
	"database/sql"
	"time"

	"lokamart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListActive(ctx context.Context) ([]Product, error)
	GetSnapshot(ctx context.Context, productID uint) (*Snapshot, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListActive"),
	)

	start := time.Now()

	query := `
	SELECT
		pr.id,
		pr.name,
		pr.base_price,
		pr.sale_price,
		pr.description,
		pc.name,
		pi.image_url,
		pi.alt_text,
		inv.available_quantity > 0,
		CASE WHEN inv.available_quantity < 10 THEN inv.available_quantity ELSE NULL END
	FROM products pr
	JOIN product_categories pc ON pr.category_id = pc.id
	LEFT JOIN product_images pi ON pr.id = pi.product_id AND pi.is_primary
	JOIN inventory inv ON pr.id = inv.product_id
	WHERE pr.is_active = true
	ORDER BY pr.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	result := make([]Product, 0)

	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.BasePrice,
			&p.SalePrice,
			&p.Description,
			&p.Category,
			&p.ImageURL,
			&p.ImageAltText,
			&p.IsStockAvailable,
			&p.LowStockAlert,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("catalog query success",
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (r *repository) GetSnapshot(ctx context.Context, productID uint) (*Snapshot, error) {
	query := `
	SELECT
		pr.id,
		pr.base_price,
		pr.sale_price,
		inv.available_quantity
	FROM products pr
	JOIN inventory inv ON pr.id = inv.product_id
	WHERE pr.id = $1 AND pr.is_active = true
	`

	var s Snapshot
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&s.ProductID,
		&s.BasePrice,
		&s.SalePrice,
		&s.AvailableQuantity,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}
