package cart

import (
	"context"

	"lokamart-be/internal/identity"
	"lokamart-be/internal/logger"
	"lokamart-be/internal/metrics"
	"lokamart-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddToCartParams) (*AddResult, error)
	GetCartDetails(ctx context.Context, owner identity.CartOwner) (*View, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
	stats       *metrics.Stats
}

func NewService(repo Repository, productRepo product.Repository, stats *metrics.Stats) Service {
	return &service{repo: repo, productRepo: productRepo, stats: stats}
}

// AddToCart resolves the owner's cart (creating it on first write) and
// upserts the line item. Insufficient stock and unknown products are
// domain outcomes returned as sentinel errors; the cart is untouched in
// both cases.
func (s *service) AddToCart(ctx context.Context, params AddToCartParams) (*AddResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.Uint("product_id", params.ProductID),
		zap.Int("quantity", params.Quantity),
	)

	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if params.ProductID == 0 {
		return nil, ErrInvalidProduct
	}

	// Fast existence check before touching cart state, so an unknown
	// product never causes a first cart row to be created. The
	// authoritative stock decision happens inside the write transaction.
	snapshot, err := s.productRepo.GetSnapshot(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.getOrCreateCart(ctx, params.Owner)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.AddItem(ctx, cart.ID, params.ProductID, params.Quantity)
	if err == ErrInsufficientStock {
		if s.stats != nil {
			s.stats.StockRejections.Inc()
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.CartAdds.Inc()
	}

	log.Info("added item to cart",
		zap.Uint("cart_id", res.CartID),
		zap.Int("final_quantity", res.Quantity),
	)

	return res, nil
}

// getOrCreateCart maps the owner to their single active cart. CreateCart
// absorbs the create/create race at the storage layer, so two concurrent
// calls for the same owner always converge on one row.
func (s *service) getOrCreateCart(ctx context.Context, owner identity.CartOwner) (*Cart, error) {
	cart, err := s.repo.GetActiveCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	return s.repo.CreateCart(ctx, owner)
}

// GetCartDetails assembles the cart view. Reads never create carts: an
// absent cart renders as the empty view. The subtotal is recomputed from
// the ledger rows rather than read from the stored total, so it cannot
// diverge from the item set.
func (s *service) GetCartDetails(ctx context.Context, owner identity.CartOwner) (*View, error) {
	cart, err := s.repo.GetActiveCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return EmptyView(owner.Type), nil
	}

	items, err := s.repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	return NewView(cart.ID, items, owner.Type), nil
}
