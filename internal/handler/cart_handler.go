package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"picklestore/internal/config"
	"picklestore/internal/middleware"
	"picklestore/internal/usecase"
)

type CartHandler struct {
	cartUsecase *usecase.CartUsecase
}

func NewCartHandler(cartUsecase *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/cart", middleware.AuthJWT(cfg))
	g.GET("", h.Get)
	g.POST("/items", h.AddItem)
	g.PATCH("/items/:pickleID", h.SetQuantity)
	g.DELETE("/items/:pickleID", h.RemoveItem)
	g.PUT("", h.Replace)
	g.POST("/merge", h.Merge)
	g.DELETE("", h.Clear)
}

func (h *CartHandler) Get(c echo.Context) error {
	out, err := h.cartUsecase.GetCart(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req usecase.CartItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	out, err := h.cartUsecase.AddItem(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type setQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) SetQuantity(c echo.Context) error {
	pickleID, err := pathID(c, "pickleID")
	if err != nil {
		return writeError(c, err)
	}

	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	out, err := h.cartUsecase.SetQuantity(c.Request().Context(), getUserIDFromContext(c), pickleID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	pickleID, err := pathID(c, "pickleID")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.cartUsecase.RemoveItem(c.Request().Context(), getUserIDFromContext(c), pickleID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type cartItemsRequest struct {
	Items []usecase.CartItemInput `json:"items"`
}

func (h *CartHandler) Replace(c echo.Context) error {
	var req cartItemsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	out, err := h.cartUsecase.Replace(c.Request().Context(), getUserIDFromContext(c), req.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Merge folds a guest cart into the server cart after login.
func (h *CartHandler) Merge(c echo.Context) error {
	var req cartItemsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	out, err := h.cartUsecase.Merge(c.Request().Context(), getUserIDFromContext(c), req.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) Clear(c echo.Context) error {
	out, err := h.cartUsecase.Clear(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
