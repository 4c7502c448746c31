package dashboard

import (
	"context"
	"database/sql"

	"lokamart-be/internal/logger"
	"lokamart-be/internal/product"

	"go.uber.org/zap"
)

type Repository interface {
	GetImages(ctx context.Context) ([]Image, error)
	GetFastSellingProducts(ctx context.Context) ([]product.Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetImages(ctx context.Context) ([]Image, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT image_name, image_url
		FROM dashboard_images
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]Image, 0)
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Name, &img.URL); err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

func (r *repository) GetFastSellingProducts(ctx context.Context) ([]product.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetFastSellingProducts"),
	)

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
		inv.available_quantity
	FROM products pr
	JOIN product_categories pc ON pr.category_id = pc.id
	LEFT JOIN product_images pi ON pr.id = pi.product_id AND pi.is_primary
	JOIN inventory inv ON pr.id = inv.product_id
	WHERE pr.is_active = true
	AND inv.available_quantity < 10
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]product.Product, 0)
	for rows.Next() {
		var p product.Product
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

	return result, rows.Err()
}
