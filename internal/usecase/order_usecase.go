package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"picklestore/internal/delivery"
	"picklestore/internal/domain/model"
	"picklestore/internal/payment"
	repo "picklestore/internal/repository"
)

type OrderUsecase struct {
	tx       repo.TransactionManager
	fees     *delivery.Calculator
	gateway  payment.Gateway
	allowCOD bool
}

func NewOrderUsecase(tx repo.TransactionManager, fees *delivery.Calculator, gateway payment.Gateway, allowCOD bool) *OrderUsecase {
	return &OrderUsecase{
		tx:       tx,
		fees:     fees,
		gateway:  gateway,
		allowCOD: allowCOD,
	}
}

type OrderItemInput struct {
	PickleID int64 `json:"pickle_id"`
	Quantity int64 `json:"quantity"`
}

type RazorpayRefs struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type PlaceOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress string
	DeliveryRegion  string
	PaymentType     string
	CouponCode      string
	Razorpay        RazorpayRefs
}

type PlaceOrderOutput struct {
	OrderID     int64           `json:"order_id"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type OrderItemOutput struct {
	PickleID int64           `json:"pickle_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	Status          string            `json:"status"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	DeliveryFee     decimal.Decimal   `json:"delivery_fee"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	PaymentType     string            `json:"payment_type"`
	ShippingAddress string            `json:"shipping_address"`
	ItemCount       int64             `json:"item_count"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items,omitempty"`
}

// PlaceOrder runs the whole checkout inside one database transaction:
// item validation, stock decrement, fee computation, order + item
// persistence and cart clearing all commit or roll back together. Prices
// always come from the catalog row, never from the client.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if userID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if len(in.Items) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Order items are required")
	}
	for _, it := range in.Items {
		if it.PickleID <= 0 || it.Quantity <= 0 {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid item data")
		}
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Shipping address is required")
	}

	paymentType := model.PaymentType(strings.ToLower(strings.TrimSpace(in.PaymentType)))
	if paymentType == "" {
		paymentType = model.PaymentTypeCOD
	}
	switch paymentType {
	case model.PaymentTypeCOD:
		if !u.allowCOD {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Cash on delivery is not available")
		}
	case model.PaymentTypeRazorpay:
		// Verify the gateway signature before writing anything.
		if !u.gateway.VerifySignature(in.Razorpay.OrderID, in.Razorpay.PaymentID, in.Razorpay.Signature) {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Payment verification failed")
		}
	default:
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid payment type")
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		subtotal := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(in.Items))

		for _, it := range in.Items {
			p, err := r.Pickles().FindByID(ctx, it.PickleID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Pickle with id %d not found", it.PickleID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Database error")
			}

			// Conditional decrement; returns false instead of overselling
			// when a concurrent order got there first.
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.PickleID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Database error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s", p.Name))
			}

			orderItems = append(orderItems, model.OrderItem{
				PickleID:          it.PickleID,
				PickleName:        p.Name,
				Quantity:          it.Quantity,
				UnitPriceSnapshot: p.Price,
			})
			subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
		}

		quote := u.fees.Quote(subtotal, in.DeliveryRegion, in.CouponCode)

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:            userID,
			Subtotal:          quote.Subtotal,
			DeliveryFee:       quote.Fee,
			TotalAmount:       quote.Total,
			Status:            model.OrderStatusPending,
			PaymentType:       paymentType,
			ShippingAddress:   strings.TrimSpace(in.ShippingAddress),
			DeliveryRegion:    strings.TrimSpace(in.DeliveryRegion),
			CouponCode:        strings.TrimSpace(in.CouponCode),
			RazorpayOrderID:   in.Razorpay.OrderID,
			RazorpayPaymentID: in.Razorpay.PaymentID,
			RazorpaySignature: in.Razorpay.Signature,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to create order")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Failed to add order items")
		}

		// The server cart ends its life at checkout.
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == nil {
			if err := r.Carts().Clear(ctx, cart.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Database error")
			}
		} else if err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "Database error")
		}

		out = PlaceOrderOutput{
			OrderID:     orderID,
			Subtotal:    quote.Subtotal,
			DeliveryFee: quote.Fee,
			TotalAmount: quote.Total,
		}
		return nil
	})

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

type DeliveryFeeInput struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Region     string          `json:"region"`
	CouponCode string          `json:"coupon_code"`
}

// DeliveryFeePreview quotes the fee for the storefront before checkout.
// The same calculator runs again server-side inside PlaceOrder, so a
// stale or tampered preview can never change what an order costs.
func (u *OrderUsecase) DeliveryFeePreview(in DeliveryFeeInput) (delivery.Quote, error) {
	if in.Subtotal.IsNegative() {
		return delivery.Quote{}, NewHTTPError(http.StatusBadRequest, "Invalid subtotal amount")
	}
	return u.fees.Quote(in.Subtotal, in.Region, in.CouponCode), nil
}

type PaymentIntentInput struct {
	Items      []OrderItemInput
	Region     string
	CouponCode string
	Currency   string
}

type PaymentIntentOutput struct {
	GatewayOrderID string          `json:"gateway_order_id"`
	Amount         int64           `json:"amount"`
	Currency       string          `json:"currency"`
	KeyID          string          `json:"key_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// CreatePaymentIntent recomputes the order total from live catalog prices
// and registers it with the gateway. Client-reported totals are ignored.
func (u *OrderUsecase) CreatePaymentIntent(ctx context.Context, userID int64, in PaymentIntentInput) (PaymentIntentOutput, error) {
	if userID <= 0 {
		return PaymentIntentOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if len(in.Items) == 0 {
		return PaymentIntentOutput{}, NewHTTPError(http.StatusBadRequest, "Order items are required")
	}

	subtotal := decimal.Zero
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, it := range in.Items {
			if it.PickleID <= 0 || it.Quantity <= 0 {
				return NewHTTPError(http.StatusBadRequest, "Invalid item data")
			}
			p, err := r.Pickles().FindByID(ctx, it.PickleID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Pickle with id %d not found", it.PickleID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Database error")
			}
			subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
		}
		return nil
	})
	if err != nil {
		return PaymentIntentOutput{}, err
	}

	quote := u.fees.Quote(subtotal, in.Region, in.CouponCode)

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "INR"
	}

	// The gateway takes minor currency units (paise).
	amountMinor := quote.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	receipt := "rcpt_" + uuid.NewString()

	gwOrder, err := u.gateway.CreateOrder(ctx, amountMinor, currency, receipt)
	if err != nil {
		return PaymentIntentOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to create payment order")
	}

	return PaymentIntentOutput{
		GatewayOrderID: gwOrder.ID,
		Amount:         amountMinor,
		Currency:       currency,
		KeyID:          u.gateway.KeyID(),
		TotalAmount:    quote.Total,
	}, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var outs []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rows, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Database error")
		}

		outs = make([]OrderOutput, 0, len(rows))
		for _, row := range rows {
			outs = append(outs, toOrderOutput(row.Order, row.ItemCount, nil))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Database error")
		}
		// Other users' orders look like they don't exist.
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Database error")
		}

		out = toOrderOutput(o, int64(len(items)), items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, itemCount int64, items []model.OrderItem) OrderOutput {
	var outItems []OrderItemOutput
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			PickleID: it.PickleID,
			Name:     it.PickleName,
			Price:    it.UnitPriceSnapshot,
			Quantity: it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		TotalAmount:     o.TotalAmount,
		PaymentType:     string(o.PaymentType),
		ShippingAddress: o.ShippingAddress,
		ItemCount:       itemCount,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
