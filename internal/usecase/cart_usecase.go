package usecase

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"picklestore/internal/domain/model"
	repo "picklestore/internal/repository"
)

// CartUsecase owns the server-side cart of an authenticated user.
// Guest carts live entirely on the client; they only reach the server
// through Merge at login or through the items of a checkout request.
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	pickleRepo   repo.PickleRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	pickleRepo repo.PickleRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		pickleRepo:   pickleRepo,
	}
}

type CartItemResponse struct {
	PickleID int64           `json:"pickle_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int64              `json:"item_count"`
}

type CartItemInput struct {
	PickleID int64 `json:"pickle_id"`
	Quantity int64 `json:"quantity"`
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// AddItem adds a pickle to the cart; the same pickle adds up. The price
// snapshot is taken from the catalog at first add.
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in CartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if in.PickleID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid pickle_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.pickleRepo.FindByID(ctx, in.PickleID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "Pickle not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if err := u.cartItemRepo.UpsertAdd(ctx, cart.ID, in.PickleID, in.Quantity, p.Price); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// SetQuantity updates one line. A quantity of zero or less removes the
// line instead of keeping an empty entry.
func (u *CartUsecase) SetQuantity(ctx context.Context, userID int64, pickleID int64, qty int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if pickleID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid pickle_id")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if qty <= 0 {
		err = u.cartItemRepo.DeleteByPickle(ctx, cart.ID, pickleID)
	} else {
		err = u.cartItemRepo.SetQuantity(ctx, cart.ID, pickleID, qty)
	}
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return u.buildCartResponse(ctx, cart.ID)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, pickleID int64) (CartResponse, error) {
	return u.SetQuantity(ctx, userID, pickleID, 0)
}

// Replace swaps the whole server cart for the given list (last write
// wins, no diffing). Prices are re-snapshotted from the catalog; client
// prices are never trusted. Unknown pickles are dropped.
func (u *CartUsecase) Replace(ctx context.Context, userID int64, items []CartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	newItems := make([]model.CartItem, 0, len(items))
	seen := make(map[int64]int)
	for _, in := range items {
		if in.PickleID <= 0 || in.Quantity <= 0 {
			continue
		}
		if idx, ok := seen[in.PickleID]; ok {
			newItems[idx].Quantity += in.Quantity
			continue
		}

		p, err := u.pickleRepo.FindByID(ctx, in.PickleID)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
		}

		seen[in.PickleID] = len(newItems)
		newItems = append(newItems, model.CartItem{
			PickleID:          in.PickleID,
			Quantity:          in.Quantity,
			UnitPriceSnapshot: p.Price,
		})
	}

	if err := u.cartItemRepo.ReplaceAll(ctx, cart.ID, newItems); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// Merge folds a guest cart into the server cart at login. Quantities are
// summed for matching pickles; when both carts carry the same pickle the
// entry already on the server keeps its price snapshot (first-seen wins).
func (u *CartUsecase) Merge(ctx context.Context, userID int64, guestItems []CartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	for _, in := range guestItems {
		if in.PickleID <= 0 || in.Quantity <= 0 {
			continue
		}

		p, err := u.pickleRepo.FindByID(ctx, in.PickleID)
		if err == repo.ErrNotFound {
			// Guest carts can reference pickles removed since.
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
		}

		// UpsertAdd sums quantities and only applies the price snapshot
		// to brand-new lines, which is exactly first-seen-wins.
		if err := u.cartItemRepo.UpsertAdd(ctx, cart.ID, in.PickleID, in.Quantity, p.Price); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
		}
	}
	return u.buildCartResponse(ctx, cart.ID)
}

func (u *CartUsecase) Clear(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartResponse{Items: []CartItemResponse{}, Total: decimal.Zero}, nil
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return CartResponse{Items: []CartItemResponse{}, Total: decimal.Zero}, nil
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero
	var count int64

	for _, it := range items {
		p, err := u.pickleRepo.FindByID(ctx, it.PickleID)
		if err != nil {
			// A pickle soft-deleted after it entered the cart is skipped.
			continue
		}

		respItems = append(respItems, CartItemResponse{
			PickleID: it.PickleID,
			Name:     p.Name,
			Price:    it.UnitPriceSnapshot,
			Quantity: it.Quantity,
		})

		total = total.Add(it.UnitPriceSnapshot.Mul(decimal.NewFromInt(it.Quantity)))
		count += it.Quantity
	}

	return CartResponse{Items: respItems, Total: total, ItemCount: count}, nil
}
