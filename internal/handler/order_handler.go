package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"picklestore/internal/config"
	"picklestore/internal/middleware"
	"picklestore/internal/usecase"
)

type OrderHandler struct {
	orderUsecase *usecase.OrderUsecase
}

func NewOrderHandler(orderUsecase *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// Fee preview is public so the storefront can show it pre-login.
	e.POST("/api/orders/delivery-fee", h.DeliveryFee)

	g := e.Group("/api/orders", middleware.AuthJWT(cfg))
	g.POST("", h.Place)
	g.POST("/payment-intent", h.PaymentIntent)
	g.GET("", h.ListMine)
	g.GET("/:id", h.DetailMine)
}

type placeOrderRequest struct {
	Items           []usecase.OrderItemInput `json:"items"`
	ShippingAddress string                   `json:"shipping_address"`
	DeliveryRegion  string                   `json:"delivery_region"`
	PaymentType     string                   `json:"payment_type"`
	CouponCode      string                   `json:"coupon_code"`

	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	out, err := h.orderUsecase.PlaceOrder(c.Request().Context(), getUserIDFromContext(c), usecase.PlaceOrderInput{
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		DeliveryRegion:  req.DeliveryRegion,
		PaymentType:     req.PaymentType,
		CouponCode:      req.CouponCode,
		Razorpay: usecase.RazorpayRefs{
			OrderID:   req.RazorpayOrderID,
			PaymentID: req.RazorpayPaymentID,
			Signature: req.RazorpaySignature,
		},
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

type deliveryFeeRequest struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Region     string          `json:"region"`
	CouponCode string          `json:"coupon_code"`
}

func (h *OrderHandler) DeliveryFee(c echo.Context) error {
	var req deliveryFeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	quote, err := h.orderUsecase.DeliveryFeePreview(usecase.DeliveryFeeInput{
		Subtotal:   req.Subtotal,
		Region:     req.Region,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

type paymentIntentRequest struct {
	Items      []usecase.OrderItemInput `json:"items"`
	Region     string                   `json:"region"`
	CouponCode string                   `json:"coupon_code"`
	Currency   string                   `json:"currency"`
}

func (h *OrderHandler) PaymentIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	out, err := h.orderUsecase.CreatePaymentIntent(c.Request().Context(), getUserIDFromContext(c), usecase.PaymentIntentInput{
		Items:      req.Items,
		Region:     req.Region,
		CouponCode: req.CouponCode,
		Currency:   req.Currency,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	outs, err := h.orderUsecase.ListMyOrders(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"orders": outs})
}

func (h *OrderHandler) DetailMine(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.orderUsecase.GetMyOrderDetail(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
